package dingapi

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsClient returns a new instance of a metrics Client.
func NewMetricsClient(c Client, requestCount metrics.Counter, requestLatency metrics.Histogram) Client {
	return &metricsClient{c, requestCount, requestLatency}
}

type metricsClient struct {
	Client         Client
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (c *metricsClient) Status(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "Status", begin)
	}(time.Now())

	return c.Client.Status(ctx)
}

func (c *metricsClient) RepoBuilds(ctx context.Context) (repoBuilds []contracts.RepoBuilds, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "RepoBuilds", begin)
	}(time.Now())

	return c.Client.RepoBuilds(ctx)
}

func (c *metricsClient) Repo(ctx context.Context, repoName string) (repo contracts.Repo, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "Repo", begin)
	}(time.Now())

	return c.Client.Repo(ctx, repoName)
}

func (c *metricsClient) Builds(ctx context.Context, repoName string) (builds []contracts.Build, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "Builds", begin)
	}(time.Now())

	return c.Client.Builds(ctx, repoName)
}

func (c *metricsClient) BuildResult(ctx context.Context, repoName string, buildID int) (buildResult contracts.BuildResult, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "BuildResult", begin)
	}(time.Now())

	return c.Client.BuildResult(ctx, repoName, buildID)
}

func (c *metricsClient) Release(ctx context.Context, repoName string, buildID int) (buildResult contracts.BuildResult, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "Release", begin)
	}(time.Now())

	return c.Client.Release(ctx, repoName, buildID)
}

func (c *metricsClient) CreateRepo(ctx context.Context, repo contracts.Repo) (created contracts.Repo, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "CreateRepo", begin)
	}(time.Now())

	return c.Client.CreateRepo(ctx, repo)
}

func (c *metricsClient) SaveRepo(ctx context.Context, repo contracts.Repo) (saved contracts.Repo, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "SaveRepo", begin)
	}(time.Now())

	return c.Client.SaveRepo(ctx, repo)
}

func (c *metricsClient) RemoveRepo(ctx context.Context, repoName string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "RemoveRepo", begin)
	}(time.Now())

	return c.Client.RemoveRepo(ctx, repoName)
}

func (c *metricsClient) CreateBuild(ctx context.Context, repoName, branch, commit string) (build contracts.Build, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "CreateBuild", begin)
	}(time.Now())

	return c.Client.CreateBuild(ctx, repoName, branch, commit)
}

func (c *metricsClient) CreateRelease(ctx context.Context, repoName string, buildID int) (build contracts.Build, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "CreateRelease", begin)
	}(time.Now())

	return c.Client.CreateRelease(ctx, repoName, buildID)
}

func (c *metricsClient) RemoveBuild(ctx context.Context, buildID int) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "RemoveBuild", begin)
	}(time.Now())

	return c.Client.RemoveBuild(ctx, buildID)
}

func (c *metricsClient) CleanupBuilddir(ctx context.Context, repoName string, buildID int) (build contracts.Build, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "CleanupBuilddir", begin)
	}(time.Now())

	return c.Client.CleanupBuilddir(ctx, repoName, buildID)
}
