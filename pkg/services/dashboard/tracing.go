package dashboard

import (
	"context"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/estafette/estafette-ci-dashboard/pkg/livestate"
	"github.com/opentracing/opentracing-go"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "dashboard"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) OpenRepoList(ctx context.Context, session *livestate.Session) (repoBuilds []contracts.RepoBuilds, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "OpenRepoList"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.OpenRepoList(ctx, session)
}

func (s *tracingService) OpenRepo(ctx context.Context, session *livestate.Session, repoName string) (repoBuilds contracts.RepoBuilds, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "OpenRepo"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.OpenRepo(ctx, session, repoName)
}

func (s *tracingService) OpenBuild(ctx context.Context, session *livestate.Session, repoName string, buildID int) (buildResult *contracts.BuildResult, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "OpenBuild"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.OpenBuild(ctx, session, repoName, buildID)
}

func (s *tracingService) OpenRelease(ctx context.Context, session *livestate.Session, repoName string, buildID int) (buildResult *contracts.BuildResult, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "OpenRelease"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.OpenRelease(ctx, session, repoName, buildID)
}

func (s *tracingService) CloseView(ctx context.Context, session *livestate.Session) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "CloseView"))
	defer func() { api.FinishSpan(span) }()

	s.Service.CloseView(ctx, session)
}

func (s *tracingService) CreateRepo(ctx context.Context, session *livestate.Session, repo contracts.Repo) (created contracts.Repo, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "CreateRepo"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.CreateRepo(ctx, session, repo)
}

func (s *tracingService) SaveRepo(ctx context.Context, session *livestate.Session, repo contracts.Repo) (saved contracts.Repo, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "SaveRepo"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.SaveRepo(ctx, session, repo)
}

func (s *tracingService) RemoveRepo(ctx context.Context, session *livestate.Session, repoName string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "RemoveRepo"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.RemoveRepo(ctx, session, repoName)
}

func (s *tracingService) CreateBuild(ctx context.Context, session *livestate.Session, repoName, branch, commit string) (build contracts.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "CreateBuild"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.CreateBuild(ctx, session, repoName, branch, commit)
}

func (s *tracingService) CreateRelease(ctx context.Context, session *livestate.Session, repoName string, buildID int) (build contracts.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "CreateRelease"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.CreateRelease(ctx, session, repoName, buildID)
}

func (s *tracingService) RemoveBuild(ctx context.Context, session *livestate.Session, buildID int) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "RemoveBuild"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.RemoveBuild(ctx, session, buildID)
}

func (s *tracingService) CleanupBuilddir(ctx context.Context, session *livestate.Session, repoName string, buildID int) (build contracts.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "CleanupBuilddir"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.CleanupBuilddir(ctx, session, repoName, buildID)
}
