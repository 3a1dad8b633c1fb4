package dashboard

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/estafette/estafette-ci-dashboard/pkg/livestate"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsService returns a new instance of a metrics Service.
func NewMetricsService(s Service, requestCount metrics.Counter, requestLatency metrics.Histogram) Service {
	return &metricsService{s, requestCount, requestLatency}
}

type metricsService struct {
	Service        Service
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (s *metricsService) OpenRepoList(ctx context.Context, session *livestate.Session) (repoBuilds []contracts.RepoBuilds, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "OpenRepoList", begin)
	}(time.Now())

	return s.Service.OpenRepoList(ctx, session)
}

func (s *metricsService) OpenRepo(ctx context.Context, session *livestate.Session, repoName string) (repoBuilds contracts.RepoBuilds, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "OpenRepo", begin)
	}(time.Now())

	return s.Service.OpenRepo(ctx, session, repoName)
}

func (s *metricsService) OpenBuild(ctx context.Context, session *livestate.Session, repoName string, buildID int) (buildResult *contracts.BuildResult, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "OpenBuild", begin)
	}(time.Now())

	return s.Service.OpenBuild(ctx, session, repoName, buildID)
}

func (s *metricsService) OpenRelease(ctx context.Context, session *livestate.Session, repoName string, buildID int) (buildResult *contracts.BuildResult, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "OpenRelease", begin)
	}(time.Now())

	return s.Service.OpenRelease(ctx, session, repoName, buildID)
}

func (s *metricsService) CloseView(ctx context.Context, session *livestate.Session) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "CloseView", begin)
	}(time.Now())

	s.Service.CloseView(ctx, session)
}

func (s *metricsService) CreateRepo(ctx context.Context, session *livestate.Session, repo contracts.Repo) (created contracts.Repo, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "CreateRepo", begin)
	}(time.Now())

	return s.Service.CreateRepo(ctx, session, repo)
}

func (s *metricsService) SaveRepo(ctx context.Context, session *livestate.Session, repo contracts.Repo) (saved contracts.Repo, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "SaveRepo", begin)
	}(time.Now())

	return s.Service.SaveRepo(ctx, session, repo)
}

func (s *metricsService) RemoveRepo(ctx context.Context, session *livestate.Session, repoName string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "RemoveRepo", begin)
	}(time.Now())

	return s.Service.RemoveRepo(ctx, session, repoName)
}

func (s *metricsService) CreateBuild(ctx context.Context, session *livestate.Session, repoName, branch, commit string) (build contracts.Build, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "CreateBuild", begin)
	}(time.Now())

	return s.Service.CreateBuild(ctx, session, repoName, branch, commit)
}

func (s *metricsService) CreateRelease(ctx context.Context, session *livestate.Session, repoName string, buildID int) (build contracts.Build, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "CreateRelease", begin)
	}(time.Now())

	return s.Service.CreateRelease(ctx, session, repoName, buildID)
}

func (s *metricsService) RemoveBuild(ctx context.Context, session *livestate.Session, buildID int) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "RemoveBuild", begin)
	}(time.Now())

	return s.Service.RemoveBuild(ctx, session, buildID)
}

func (s *metricsService) CleanupBuilddir(ctx context.Context, session *livestate.Session, repoName string, buildID int) (build contracts.Build, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "CleanupBuilddir", begin)
	}(time.Now())

	return s.Service.CleanupBuilddir(ctx, session, repoName, buildID)
}
