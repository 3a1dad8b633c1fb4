package dingapi

import (
	"context"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "dingapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) Status(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Status"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Status(ctx)
}

func (c *tracingClient) RepoBuilds(ctx context.Context) (repoBuilds []contracts.RepoBuilds, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "RepoBuilds"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.RepoBuilds(ctx)
}

func (c *tracingClient) Repo(ctx context.Context, repoName string) (repo contracts.Repo, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Repo"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Repo(ctx, repoName)
}

func (c *tracingClient) Builds(ctx context.Context, repoName string) (builds []contracts.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Builds"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Builds(ctx, repoName)
}

func (c *tracingClient) BuildResult(ctx context.Context, repoName string, buildID int) (buildResult contracts.BuildResult, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "BuildResult"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.BuildResult(ctx, repoName, buildID)
}

func (c *tracingClient) Release(ctx context.Context, repoName string, buildID int) (buildResult contracts.BuildResult, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Release"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Release(ctx, repoName, buildID)
}

func (c *tracingClient) CreateRepo(ctx context.Context, repo contracts.Repo) (created contracts.Repo, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "CreateRepo"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.CreateRepo(ctx, repo)
}

func (c *tracingClient) SaveRepo(ctx context.Context, repo contracts.Repo) (saved contracts.Repo, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "SaveRepo"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.SaveRepo(ctx, repo)
}

func (c *tracingClient) RemoveRepo(ctx context.Context, repoName string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "RemoveRepo"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.RemoveRepo(ctx, repoName)
}

func (c *tracingClient) CreateBuild(ctx context.Context, repoName, branch, commit string) (build contracts.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "CreateBuild"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.CreateBuild(ctx, repoName, branch, commit)
}

func (c *tracingClient) CreateRelease(ctx context.Context, repoName string, buildID int) (build contracts.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "CreateRelease"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.CreateRelease(ctx, repoName, buildID)
}

func (c *tracingClient) RemoveBuild(ctx context.Context, buildID int) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "RemoveBuild"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.RemoveBuild(ctx, buildID)
}

func (c *tracingClient) CleanupBuilddir(ctx context.Context, repoName string, buildID int) (build contracts.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "CleanupBuilddir"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.CleanupBuilddir(ctx, repoName, buildID)
}
