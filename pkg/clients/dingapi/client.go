package dingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
)

// Client is the interface for querying and mutating repositories and builds on the ci server
//
//go:generate mockgen -package=dingapi -destination ./mock.go -source=client.go
type Client interface {
	Status(ctx context.Context) (err error)
	RepoBuilds(ctx context.Context) (repoBuilds []contracts.RepoBuilds, err error)
	Repo(ctx context.Context, repoName string) (repo contracts.Repo, err error)
	Builds(ctx context.Context, repoName string) (builds []contracts.Build, err error)
	BuildResult(ctx context.Context, repoName string, buildID int) (buildResult contracts.BuildResult, err error)
	Release(ctx context.Context, repoName string, buildID int) (buildResult contracts.BuildResult, err error)
	CreateRepo(ctx context.Context, repo contracts.Repo) (created contracts.Repo, err error)
	SaveRepo(ctx context.Context, repo contracts.Repo) (saved contracts.Repo, err error)
	RemoveRepo(ctx context.Context, repoName string) (err error)
	CreateBuild(ctx context.Context, repoName, branch, commit string) (build contracts.Build, err error)
	CreateRelease(ctx context.Context, repoName string, buildID int) (build contracts.Build, err error)
	RemoveBuild(ctx context.Context, buildID int) (err error)
	CleanupBuilddir(ctx context.Context, repoName string, buildID int) (build contracts.Build, err error)
}

// NewClient returns a dingapi.Client to communicate with the json api of the ci server
func NewClient(config *api.APIConfig) Client {
	return &client{
		config:         config,
		queryClient:    newHTTPClient(config, config.Server.MaxRetries),
		mutationClient: newHTTPClient(config, 1),
	}
}

type client struct {
	config         *api.APIConfig
	queryClient    *pester.Client
	mutationClient *pester.Client
}

func newHTTPClient(config *api.APIConfig, maxRetries int) *pester.Client {
	client := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	client.MaxRetries = maxRetries
	client.Backoff = pester.ExponentialJitterBackoff
	client.KeepLog = true
	client.Timeout = config.Server.RequestTimeout
	return client
}

func (c *client) Status(ctx context.Context) (err error) {
	return c.call(ctx, c.queryClient, "Status", nil)
}

func (c *client) RepoBuilds(ctx context.Context) (repoBuilds []contracts.RepoBuilds, err error) {
	err = c.call(ctx, c.queryClient, "RepoBuilds", &repoBuilds)
	if err != nil {
		return nil, err
	}
	if repoBuilds == nil {
		repoBuilds = []contracts.RepoBuilds{}
	}
	return
}

func (c *client) Repo(ctx context.Context, repoName string) (repo contracts.Repo, err error) {
	err = c.call(ctx, c.queryClient, "Repo", &repo, repoName)
	return
}

func (c *client) Builds(ctx context.Context, repoName string) (builds []contracts.Build, err error) {
	err = c.call(ctx, c.queryClient, "Builds", &builds, repoName)
	if err != nil {
		return nil, err
	}
	if builds == nil {
		builds = []contracts.Build{}
	}
	return
}

func (c *client) BuildResult(ctx context.Context, repoName string, buildID int) (buildResult contracts.BuildResult, err error) {
	err = c.call(ctx, c.queryClient, "BuildResult", &buildResult, repoName, buildID)
	return
}

func (c *client) Release(ctx context.Context, repoName string, buildID int) (buildResult contracts.BuildResult, err error) {
	err = c.call(ctx, c.queryClient, "Release", &buildResult, repoName, buildID)
	return
}

func (c *client) CreateRepo(ctx context.Context, repo contracts.Repo) (created contracts.Repo, err error) {
	err = c.call(ctx, c.mutationClient, "CreateRepo", &created, repo)
	return
}

func (c *client) SaveRepo(ctx context.Context, repo contracts.Repo) (saved contracts.Repo, err error) {
	err = c.call(ctx, c.mutationClient, "SaveRepo", &saved, repo)
	return
}

func (c *client) RemoveRepo(ctx context.Context, repoName string) (err error) {
	return c.call(ctx, c.mutationClient, "RemoveRepo", nil, repoName)
}

func (c *client) CreateBuild(ctx context.Context, repoName, branch, commit string) (build contracts.Build, err error) {
	err = c.call(ctx, c.mutationClient, "CreateBuild", &build, repoName, branch, commit)
	return
}

func (c *client) CreateRelease(ctx context.Context, repoName string, buildID int) (build contracts.Build, err error) {
	err = c.call(ctx, c.mutationClient, "CreateRelease", &build, repoName, buildID)
	return
}

func (c *client) RemoveBuild(ctx context.Context, buildID int) (err error) {
	return c.call(ctx, c.mutationClient, "RemoveBuild", nil, buildID)
}

func (c *client) CleanupBuilddir(ctx context.Context, repoName string, buildID int) (build contracts.Build, err error) {
	err = c.call(ctx, c.mutationClient, "CleanupBuilddir", &build, repoName, buildID)
	return
}

// call posts params to method and unmarshals the result into result unless it is nil; errors raised by the
// ci server are returned as *api.ApplicationError, all other failures wrap api.ErrTransport
func (c *client) call(ctx context.Context, httpClient *pester.Client, method string, result interface{}, params ...interface{}) (err error) {

	if params == nil {
		params = []interface{}{}
	}
	requestBody, err := json.Marshal(callRequest{Params: params})
	if err != nil {
		return errors.Wrapf(err, "marshalling params for %v", method)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Server.APIURL(method), bytes.NewReader(requestBody))
	if err != nil {
		return errors.Wrapf(api.ErrTransport, "creating request for %v: %v", method, err)
	}

	span := opentracing.SpanFromContext(ctx)
	var ht *nethttp.Tracer
	if span != nil {
		// collect additional information on setting up connections
		request, ht = nethttp.TraceRequest(span.Tracer(), request)
	}

	// add headers
	request.Header.Set("Content-Type", "application/json")

	// perform actual request
	response, err := httpClient.Do(request)
	if err != nil {
		return errors.Wrapf(api.ErrTransport, "calling %v: %v", method, err)
	}
	if response == nil {
		return errors.Wrapf(api.ErrTransport, "calling %v: no response", method)
	}
	defer response.Body.Close()
	if ht != nil {
		ht.Finish()
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return errors.Wrapf(api.ErrTransport, "reading response of %v: %v", method, err)
	}

	var callResponse callResponse

	// unmarshal json body
	err = json.Unmarshal(body, &callResponse)
	if err != nil {
		if response.StatusCode < 200 || response.StatusCode > 299 {
			return errors.Wrapf(api.ErrTransport, "%v responded with status code %v", method, response.StatusCode)
		}
		return errors.Wrapf(api.ErrTransport, "unmarshalling response of %v: %v", method, err)
	}

	if callResponse.Error != nil {
		return callResponse.Error
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return errors.Wrapf(api.ErrTransport, "%v responded with status code %v", method, response.StatusCode)
	}

	if result != nil && len(callResponse.Result) > 0 {
		err = json.Unmarshal(callResponse.Result, result)
		if err != nil {
			return errors.Wrapf(api.ErrTransport, "unmarshalling result of %v: %v", method, err)
		}
	}

	return nil
}
