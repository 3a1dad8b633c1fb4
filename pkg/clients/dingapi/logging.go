package dingapi

import (
	"context"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "dingapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) Status(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Status", err) }()

	return c.Client.Status(ctx)
}

func (c *loggingClient) RepoBuilds(ctx context.Context) (repoBuilds []contracts.RepoBuilds, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "RepoBuilds", err) }()

	return c.Client.RepoBuilds(ctx)
}

func (c *loggingClient) Repo(ctx context.Context, repoName string) (repo contracts.Repo, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Repo", err) }()

	return c.Client.Repo(ctx, repoName)
}

func (c *loggingClient) Builds(ctx context.Context, repoName string) (builds []contracts.Build, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Builds", err) }()

	return c.Client.Builds(ctx, repoName)
}

func (c *loggingClient) BuildResult(ctx context.Context, repoName string, buildID int) (buildResult contracts.BuildResult, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "BuildResult", err) }()

	return c.Client.BuildResult(ctx, repoName, buildID)
}

func (c *loggingClient) Release(ctx context.Context, repoName string, buildID int) (buildResult contracts.BuildResult, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Release", err) }()

	return c.Client.Release(ctx, repoName, buildID)
}

func (c *loggingClient) CreateRepo(ctx context.Context, repo contracts.Repo) (created contracts.Repo, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "CreateRepo", err) }()

	return c.Client.CreateRepo(ctx, repo)
}

func (c *loggingClient) SaveRepo(ctx context.Context, repo contracts.Repo) (saved contracts.Repo, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "SaveRepo", err) }()

	return c.Client.SaveRepo(ctx, repo)
}

func (c *loggingClient) RemoveRepo(ctx context.Context, repoName string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "RemoveRepo", err) }()

	return c.Client.RemoveRepo(ctx, repoName)
}

func (c *loggingClient) CreateBuild(ctx context.Context, repoName, branch, commit string) (build contracts.Build, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "CreateBuild", err) }()

	return c.Client.CreateBuild(ctx, repoName, branch, commit)
}

func (c *loggingClient) CreateRelease(ctx context.Context, repoName string, buildID int) (build contracts.Build, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "CreateRelease", err) }()

	return c.Client.CreateRelease(ctx, repoName, buildID)
}

func (c *loggingClient) RemoveBuild(ctx context.Context, buildID int) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "RemoveBuild", err) }()

	return c.Client.RemoveBuild(ctx, buildID)
}

func (c *loggingClient) CleanupBuilddir(ctx context.Context, repoName string, buildID int) (build contracts.Build, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "CleanupBuilddir", err) }()

	return c.Client.CleanupBuilddir(ctx, repoName, buildID)
}
