package dingapi

import (
	"encoding/json"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
)

// callRequest is the body of every call to the json api
type callRequest struct {
	Params []interface{} `json:"params"`
}

// callResponse carries either a result or an error raised by the ci server
type callResponse struct {
	Result json.RawMessage       `json:"result"`
	Error  *api.ApplicationError `json:"error"`
}
