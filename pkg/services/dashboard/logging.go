package dashboard

import (
	"context"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/estafette/estafette-ci-dashboard/pkg/livestate"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "dashboard"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) OpenRepoList(ctx context.Context, session *livestate.Session) (repoBuilds []contracts.RepoBuilds, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "OpenRepoList", err) }()

	return s.Service.OpenRepoList(ctx, session)
}

func (s *loggingService) OpenRepo(ctx context.Context, session *livestate.Session, repoName string) (repoBuilds contracts.RepoBuilds, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "OpenRepo", err) }()

	return s.Service.OpenRepo(ctx, session, repoName)
}

func (s *loggingService) OpenBuild(ctx context.Context, session *livestate.Session, repoName string, buildID int) (buildResult *contracts.BuildResult, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "OpenBuild", err) }()

	return s.Service.OpenBuild(ctx, session, repoName, buildID)
}

func (s *loggingService) OpenRelease(ctx context.Context, session *livestate.Session, repoName string, buildID int) (buildResult *contracts.BuildResult, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "OpenRelease", err) }()

	return s.Service.OpenRelease(ctx, session, repoName, buildID)
}

func (s *loggingService) CloseView(ctx context.Context, session *livestate.Session) {
	s.Service.CloseView(ctx, session)
}

func (s *loggingService) CreateRepo(ctx context.Context, session *livestate.Session, repo contracts.Repo) (created contracts.Repo, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "CreateRepo", err) }()

	return s.Service.CreateRepo(ctx, session, repo)
}

func (s *loggingService) SaveRepo(ctx context.Context, session *livestate.Session, repo contracts.Repo) (saved contracts.Repo, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "SaveRepo", err) }()

	return s.Service.SaveRepo(ctx, session, repo)
}

func (s *loggingService) RemoveRepo(ctx context.Context, session *livestate.Session, repoName string) (err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "RemoveRepo", err) }()

	return s.Service.RemoveRepo(ctx, session, repoName)
}

func (s *loggingService) CreateBuild(ctx context.Context, session *livestate.Session, repoName, branch, commit string) (build contracts.Build, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "CreateBuild", err) }()

	return s.Service.CreateBuild(ctx, session, repoName, branch, commit)
}

func (s *loggingService) CreateRelease(ctx context.Context, session *livestate.Session, repoName string, buildID int) (build contracts.Build, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "CreateRelease", err) }()

	return s.Service.CreateRelease(ctx, session, repoName, buildID)
}

func (s *loggingService) RemoveBuild(ctx context.Context, session *livestate.Session, buildID int) (err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "RemoveBuild", err) }()

	return s.Service.RemoveBuild(ctx, session, buildID)
}

func (s *loggingService) CleanupBuilddir(ctx context.Context, session *livestate.Session, repoName string, buildID int) (build contracts.Build, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "CleanupBuilddir", err) }()

	return s.Service.CleanupBuilddir(ctx, session, repoName, buildID)
}
