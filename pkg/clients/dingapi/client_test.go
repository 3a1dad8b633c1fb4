package dingapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

func getConfig(baseURL string) *api.APIConfig {
	config := &api.APIConfig{
		Server: &api.ServerConfig{
			BaseURL:        baseURL,
			RequestTimeout: 5 * time.Second,
			MaxRetries:     1,
		},
	}
	config.SetDefaults()
	return config
}

type recordedCall struct {
	Path   string
	Params []interface{}
}

func getServer(t *testing.T, status int, response string, calls *[]recordedCall) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.Nil(t, err)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var request callRequest
		assert.Nil(t, json.Unmarshal(body, &request))
		if calls != nil {
			*calls = append(*calls, recordedCall{Path: r.URL.Path, Params: request.Params})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

func TestRepoBuilds(t *testing.T) {

	t.Run("ReturnsRepositoriesWithBuilds", func(t *testing.T) {

		var calls []recordedCall
		server := getServer(t, http.StatusOK, `{"result":[{"repo":{"id":1,"name":"ding"},"builds":[{"id":3,"branch":"main","status":"success","finish":"2020-01-02T03:04:05Z"}]}]}`, &calls)
		defer server.Close()
		client := NewClient(getConfig(server.URL))

		// act
		repoBuilds, err := client.RepoBuilds(context.Background())

		assert.Nil(t, err)
		if assert.Equal(t, 1, len(repoBuilds)) {
			assert.Equal(t, "ding", repoBuilds[0].Repo.Name)
			assert.Equal(t, 3, repoBuilds[0].Builds[0].ID)
			assert.Equal(t, contracts.BuildStatusSuccess, repoBuilds[0].Builds[0].Status)
			assert.NotNil(t, repoBuilds[0].Builds[0].Finish)
		}
		if assert.Equal(t, 1, len(calls)) {
			assert.Equal(t, "/ding/RepoBuilds", calls[0].Path)
			assert.Equal(t, []interface{}{}, calls[0].Params)
		}
	})

	t.Run("ReturnsEmptySliceForNullResult", func(t *testing.T) {

		server := getServer(t, http.StatusOK, `{"result":null}`, nil)
		defer server.Close()
		client := NewClient(getConfig(server.URL))

		// act
		repoBuilds, err := client.RepoBuilds(context.Background())

		assert.Nil(t, err)
		assert.NotNil(t, repoBuilds)
		assert.Equal(t, 0, len(repoBuilds))
	})
}

func TestBuildResult(t *testing.T) {

	t.Run("SendsRepoNameAndBuildIDAsParams", func(t *testing.T) {

		var calls []recordedCall
		server := getServer(t, http.StatusOK, `{"result":{"build":{"id":7},"build_script":"make","steps":[{"name":"build","output":"ok\n","nsec":100}]}}`, &calls)
		defer server.Close()
		client := NewClient(getConfig(server.URL))

		// act
		buildResult, err := client.BuildResult(context.Background(), "ding", 7)

		assert.Nil(t, err)
		assert.Equal(t, 7, buildResult.Build.ID)
		assert.Equal(t, "ok\n", buildResult.Steps[0].Output)
		if assert.Equal(t, 1, len(calls)) {
			assert.Equal(t, "/ding/BuildResult", calls[0].Path)
			assert.Equal(t, []interface{}{"ding", float64(7)}, calls[0].Params)
		}
	})
}

func TestCreateBuild(t *testing.T) {

	t.Run("ReturnsCreatedBuild", func(t *testing.T) {

		var calls []recordedCall
		server := getServer(t, http.StatusOK, `{"result":{"id":12,"branch":"main","commit_hash":"abc","status":"new"}}`, &calls)
		defer server.Close()
		client := NewClient(getConfig(server.URL))

		// act
		build, err := client.CreateBuild(context.Background(), "ding", "main", "abc")

		assert.Nil(t, err)
		assert.Equal(t, 12, build.ID)
		assert.Equal(t, contracts.BuildStatusNew, build.Status)
		if assert.Equal(t, 1, len(calls)) {
			assert.Equal(t, []interface{}{"ding", "main", "abc"}, calls[0].Params)
		}
	})

	t.Run("DoesNotRetryOnServerError", func(t *testing.T) {

		var count int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&count, 1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()
		config := getConfig(server.URL)
		config.Server.MaxRetries = 3
		client := NewClient(config)

		// act
		_, err := client.CreateBuild(context.Background(), "ding", "main", "abc")

		assert.True(t, errors.Is(err, api.ErrTransport))
		assert.Equal(t, int32(1), atomic.LoadInt32(&count))
	})
}

func TestCall(t *testing.T) {

	t.Run("ReturnsApplicationErrorRaisedByServer", func(t *testing.T) {

		server := getServer(t, http.StatusOK, `{"error":{"code":"user:notFound","message":"repo not found"}}`, nil)
		defer server.Close()
		client := NewClient(getConfig(server.URL))

		// act
		_, err := client.Repo(context.Background(), "unknown")

		appErr, ok := api.AsApplicationError(err)
		if assert.True(t, ok) {
			assert.Equal(t, "user:notFound", appErr.Code)
			assert.Equal(t, "repo not found", appErr.Message)
			assert.True(t, appErr.IsNotFound())
		}
	})

	t.Run("ReturnsApplicationErrorForServerError", func(t *testing.T) {

		server := getServer(t, http.StatusOK, `{"error":{"code":"serverError","message":"database down"}}`, nil)
		defer server.Close()
		client := NewClient(getConfig(server.URL))

		// act
		err := client.RemoveRepo(context.Background(), "ding")

		appErr, ok := api.AsApplicationError(err)
		if assert.True(t, ok) {
			assert.Equal(t, "serverError", appErr.Code)
			assert.False(t, appErr.IsUserError())
		}
	})

	t.Run("ReturnsTransportErrorForInvalidResponse", func(t *testing.T) {

		server := getServer(t, http.StatusOK, `<html>`, nil)
		defer server.Close()
		client := NewClient(getConfig(server.URL))

		// act
		_, err := client.Builds(context.Background(), "ding")

		assert.True(t, errors.Is(err, api.ErrTransport))
		_, ok := api.AsApplicationError(err)
		assert.False(t, ok)
	})

	t.Run("ReturnsTransportErrorForUnreachableServer", func(t *testing.T) {

		server := getServer(t, http.StatusOK, `{}`, nil)
		server.Close()
		client := NewClient(getConfig(server.URL))

		// act
		err := client.Status(context.Background())

		assert.True(t, errors.Is(err, api.ErrTransport))
	})
}
