package dashboard

import (
	"context"
	"sync/atomic"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/clients/dingapi"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/estafette/estafette-ci-dashboard/pkg/livestate"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	repoRemovedReason  = "Repository has been removed."
	buildRemovedReason = "Build has been removed."
)

// Service opens views for a session by seeding its caches from the ci server, and performs mutations
// whose results are spliced into the caches right away
//
//go:generate mockgen -package=dashboard -destination ./mock.go -source=service.go
type Service interface {
	OpenRepoList(ctx context.Context, session *livestate.Session) (repoBuilds []contracts.RepoBuilds, err error)
	OpenRepo(ctx context.Context, session *livestate.Session, repoName string) (repoBuilds contracts.RepoBuilds, err error)
	OpenBuild(ctx context.Context, session *livestate.Session, repoName string, buildID int) (buildResult *contracts.BuildResult, err error)
	OpenRelease(ctx context.Context, session *livestate.Session, repoName string, buildID int) (buildResult *contracts.BuildResult, err error)
	CloseView(ctx context.Context, session *livestate.Session)
	CreateRepo(ctx context.Context, session *livestate.Session, repo contracts.Repo) (created contracts.Repo, err error)
	SaveRepo(ctx context.Context, session *livestate.Session, repo contracts.Repo) (saved contracts.Repo, err error)
	RemoveRepo(ctx context.Context, session *livestate.Session, repoName string) (err error)
	CreateBuild(ctx context.Context, session *livestate.Session, repoName, branch, commit string) (build contracts.Build, err error)
	CreateRelease(ctx context.Context, session *livestate.Session, repoName string, buildID int) (build contracts.Build, err error)
	RemoveBuild(ctx context.Context, session *livestate.Session, buildID int) (err error)
	CleanupBuilddir(ctx context.Context, session *livestate.Session, repoName string, buildID int) (build contracts.Build, err error)
}

// NewService returns a new dashboard.Service
func NewService(config *api.APIConfig, dingapiClient dingapi.Client) Service {
	return &service{
		config:        config,
		dingapiClient: dingapiClient,
	}
}

type service struct {
	config        *api.APIConfig
	dingapiClient dingapi.Client
}

func (s *service) OpenRepoList(ctx context.Context, session *livestate.Session) (repoBuilds []contracts.RepoBuilds, err error) {
	session.SetLoading(true)
	defer session.SetLoading(false)

	repoBuilds, err = s.dingapiClient.RepoBuilds(ctx)
	if err != nil {
		return nil, err
	}

	s.switchView(session, livestate.View{Kind: livestate.ViewRepoList})
	session.RepoBuilds.Initialize(repoBuilds)

	return session.RepoBuilds.Snapshot(), nil
}

func (s *service) OpenRepo(ctx context.Context, session *livestate.Session, repoName string) (repoBuilds contracts.RepoBuilds, err error) {
	session.SetLoading(true)
	defer session.SetLoading(false)

	var repo contracts.Repo
	var builds []contracts.Build

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		repo, err = s.dingapiClient.Repo(gctx, repoName)
		return
	})
	g.Go(func() (err error) {
		builds, err = s.dingapiClient.Builds(gctx, repoName)
		return
	})
	if err = g.Wait(); err != nil {
		return repoBuilds, err
	}

	opening := &openingView{session: session}
	s.switchView(session, livestate.View{Kind: livestate.ViewRepo, RepoName: repo.Name}, func() {
		s.closeOnRepoRemoval(opening, repo.Name)
	})

	// the repository view shows the full history, not just the current build per branch
	session.RepoBuilds.InitializeHistory(contracts.RepoBuilds{Repo: repo, Builds: builds})
	if err = opening.check(); err != nil {
		return repoBuilds, err
	}

	repoBuilds, _ = session.RepoBuilds.Entry(repo.Name)

	return repoBuilds, nil
}

func (s *service) OpenBuild(ctx context.Context, session *livestate.Session, repoName string, buildID int) (buildResult *contracts.BuildResult, err error) {
	return s.openDetail(ctx, session, livestate.ViewBuild, repoName, buildID, s.dingapiClient.BuildResult)
}

func (s *service) OpenRelease(ctx context.Context, session *livestate.Session, repoName string, buildID int) (buildResult *contracts.BuildResult, err error) {
	return s.openDetail(ctx, session, livestate.ViewRelease, repoName, buildID, s.dingapiClient.Release)
}

func (s *service) openDetail(ctx context.Context, session *livestate.Session, kind livestate.ViewKind, repoName string, buildID int, fetch func(ctx context.Context, repoName string, buildID int) (contracts.BuildResult, error)) (buildResult *contracts.BuildResult, err error) {
	session.SetLoading(true)
	defer session.SetLoading(false)

	var repo contracts.Repo
	var result contracts.BuildResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		repo, err = s.dingapiClient.Repo(gctx, repoName)
		return
	})
	g.Go(func() (err error) {
		result, err = fetch(gctx, repoName, buildID)
		return
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	opening := &openingView{session: session}
	s.switchView(session, livestate.View{Kind: kind, RepoName: repo.Name, BuildID: result.Build.ID}, func() {
		s.closeOnRepoRemoval(opening, repo.Name)
		session.Registry.Subscribe(livestate.KindRemoveBuild, livestate.BuildScope(result.Build.ID), func(ev livestate.Event) {
			log.Debug().Str("session", session.ID).Int("build", result.Build.ID).Msg("Open build removed, closing view")
			opening.close(buildRemovedReason)
		})
	})

	session.Detail.Initialize(result)
	if err = opening.check(); err != nil {
		return nil, err
	}

	return session.Detail.Snapshot(), nil
}

func (s *service) CloseView(ctx context.Context, session *livestate.Session) {
	session.CloseView("")
}

func (s *service) CreateRepo(ctx context.Context, session *livestate.Session, repo contracts.Repo) (created contracts.Repo, err error) {
	created, err = s.dingapiClient.CreateRepo(ctx, repo)
	if err != nil {
		return
	}

	session.Dispatch(livestate.RepoEvent{Repo: created})

	return created, nil
}

func (s *service) SaveRepo(ctx context.Context, session *livestate.Session, repo contracts.Repo) (saved contracts.Repo, err error) {
	saved, err = s.dingapiClient.SaveRepo(ctx, repo)
	if err != nil {
		return
	}

	session.Dispatch(livestate.RepoEvent{Repo: saved})

	return saved, nil
}

func (s *service) RemoveRepo(ctx context.Context, session *livestate.Session, repoName string) (err error) {
	err = s.dingapiClient.RemoveRepo(ctx, repoName)
	if err != nil {
		return
	}

	session.Dispatch(livestate.RemoveRepoEvent{RepoName: repoName})

	return nil
}

func (s *service) CreateBuild(ctx context.Context, session *livestate.Session, repoName, branch, commit string) (build contracts.Build, err error) {
	build, err = s.dingapiClient.CreateBuild(ctx, repoName, branch, commit)
	if err != nil {
		return
	}

	session.Dispatch(livestate.BuildEvent{RepoName: repoName, Build: build})

	return build, nil
}

func (s *service) CreateRelease(ctx context.Context, session *livestate.Session, repoName string, buildID int) (build contracts.Build, err error) {
	build, err = s.dingapiClient.CreateRelease(ctx, repoName, buildID)
	if err != nil {
		return
	}

	session.Dispatch(livestate.BuildEvent{RepoName: repoName, Build: build})

	return build, nil
}

func (s *service) RemoveBuild(ctx context.Context, session *livestate.Session, buildID int) (err error) {
	err = s.dingapiClient.RemoveBuild(ctx, buildID)
	if err != nil {
		return
	}

	session.Dispatch(livestate.RemoveBuildEvent{BuildID: buildID})

	return nil
}

func (s *service) CleanupBuilddir(ctx context.Context, session *livestate.Session, repoName string, buildID int) (build contracts.Build, err error) {
	build, err = s.dingapiClient.CleanupBuilddir(ctx, repoName, buildID)
	if err != nil {
		return
	}

	session.Dispatch(livestate.BuildEvent{RepoName: repoName, Build: build})

	return build, nil
}

// switchView tears down the subscriptions and caches of the previous view, then registers the
// subscriptions of the new view before it is recorded and seeded
func (s *service) switchView(session *livestate.Session, view livestate.View, subscribe ...func()) {
	session.Registry.UnsubscribeAll()
	session.RepoBuilds.Reset()
	session.Detail.Close()
	session.ResetMissed()
	for _, sub := range subscribe {
		sub()
	}
	session.SetView(view)
}

func (s *service) closeOnRepoRemoval(opening *openingView, repoName string) {
	opening.session.Registry.Subscribe(livestate.KindRemoveRepo, livestate.RepoScope(repoName), func(ev livestate.Event) {
		log.Debug().Str("session", opening.session.ID).Str("repo", repoName).Msg("Open repository removed, closing view")
		opening.close(repoRemovedReason)
	})
}

// openingView remembers that the view was closed by a removal, which may arrive while its cache is
// still being seeded and would otherwise be undone by the seeding
type openingView struct {
	session      *livestate.Session
	closedReason atomic.Value
}

func (v *openingView) close(reason string) {
	v.closedReason.Store(reason)
	v.session.CloseView(reason)
}

// check closes the view again if it was closed while being opened
func (v *openingView) check() error {
	reason, ok := v.closedReason.Load().(string)
	if !ok {
		return nil
	}
	v.session.CloseView(reason)
	return errors.Wrap(api.ErrNoViewOpen, reason)
}
