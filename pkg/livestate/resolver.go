package livestate

import (
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/pkg/errors"
)

// The functions in this file never modify their input; they return a new collection sharing
// unchanged records with the old one.

// ApplyRepo replaces the repository with the same name, keeping its builds, or appends it
func ApplyRepo(entries []contracts.RepoBuilds, e RepoEvent) []contracts.RepoBuilds {
	next := cloneEntries(entries, 1)
	if i := indexOfRepo(next, e.Repo.Name); i >= 0 {
		next[i].Repo = e.Repo
		return next
	}
	return append(next, contracts.RepoBuilds{Repo: e.Repo, Builds: []contracts.Build{}})
}

// ApplyRemoveRepo removes the entry for the repository, if present
func ApplyRemoveRepo(entries []contracts.RepoBuilds, e RemoveRepoEvent) []contracts.RepoBuilds {
	next := make([]contracts.RepoBuilds, 0, len(entries))
	for _, rb := range entries {
		if rb.Repo.Name != e.RepoName {
			next = append(next, rb)
		}
	}
	return next
}

// ApplyBuild replaces the build with the same id, else the build for the same branch, else inserts it
// at the front. Builds for a repository that is not present are rejected with api.ErrUnknownScope.
func ApplyBuild(entries []contracts.RepoBuilds, e BuildEvent) ([]contracts.RepoBuilds, error) {
	return applyBuild(entries, e, true)
}

// ApplyBuildByID replaces the build with the same id, else inserts it at the front, keeping earlier
// builds of the same branch. Builds for a repository that is not present are rejected with
// api.ErrUnknownScope.
func ApplyBuildByID(entries []contracts.RepoBuilds, e BuildEvent) ([]contracts.RepoBuilds, error) {
	return applyBuild(entries, e, false)
}

func applyBuild(entries []contracts.RepoBuilds, e BuildEvent, matchBranch bool) ([]contracts.RepoBuilds, error) {
	i := indexOfRepo(entries, e.RepoName)
	if i < 0 {
		return entries, errors.Wrapf(api.ErrUnknownScope, "build %v for repository %q", e.Build.ID, e.RepoName)
	}

	next := cloneEntries(entries, 0)
	current := next[i].Builds

	pos := next[i].BuildByID(e.Build.ID)
	if pos < 0 && matchBranch {
		pos = next[i].BuildByBranch(e.Build.Branch)
	}

	builds := make([]contracts.Build, 0, len(current)+1)
	if pos >= 0 {
		builds = append(builds, current...)
		builds[pos] = e.Build
	} else {
		builds = append(builds, e.Build)
		builds = append(builds, current...)
	}
	next[i].Builds = builds

	return next, nil
}

// ApplyRemoveBuild removes the build from every entry that holds it
func ApplyRemoveBuild(entries []contracts.RepoBuilds, e RemoveBuildEvent) []contracts.RepoBuilds {
	next := cloneEntries(entries, 0)
	for i := range next {
		if next[i].BuildByID(e.BuildID) < 0 {
			continue
		}
		builds := make([]contracts.Build, 0, len(next[i].Builds))
		for _, b := range next[i].Builds {
			if b.ID != e.BuildID {
				builds = append(builds, b)
			}
		}
		next[i].Builds = builds
	}
	return next
}

// ApplyOutput appends output text to the named step of the open build, creating the step when it is
// first seen. It returns api.ErrUnknownScope if no detail is open or it is for another build.
func ApplyOutput(detail *contracts.BuildResult, e OutputEvent, now time.Time) (*contracts.BuildResult, error) {
	if detail == nil || detail.Build.ID != e.BuildID {
		return detail, errors.Wrapf(api.ErrUnknownScope, "output for build %v", e.BuildID)
	}

	next := *detail
	next.Steps = make([]contracts.Step, len(detail.Steps), len(detail.Steps)+1)
	copy(next.Steps, detail.Steps)

	i := next.StepByName(e.Step)
	if i < 0 {
		start := now
		next.Steps = append(next.Steps, contracts.Step{Name: e.Step, Output: "", Start: &start})
		i = len(next.Steps) - 1
	}
	next.Steps[i].Output += e.Text

	return &next, nil
}

// ApplyBuildToDetail replaces the build record of the open detail with the one from the event
func ApplyBuildToDetail(detail *contracts.BuildResult, e BuildEvent) (*contracts.BuildResult, error) {
	if detail == nil || detail.Build.ID != e.Build.ID {
		return detail, errors.Wrapf(api.ErrUnknownScope, "build %v", e.Build.ID)
	}

	next := *detail
	next.Build = e.Build
	return &next, nil
}

// ApplyRemoveBuildToDetail returns nil when the open detail is for the removed build
func ApplyRemoveBuildToDetail(detail *contracts.BuildResult, e RemoveBuildEvent) (*contracts.BuildResult, bool) {
	if detail == nil || detail.Build.ID != e.BuildID {
		return detail, false
	}
	return nil, true
}

func indexOfRepo(entries []contracts.RepoBuilds, name string) int {
	for i := range entries {
		if entries[i].Repo.Name == name {
			return i
		}
	}
	return -1
}

func cloneEntries(entries []contracts.RepoBuilds, extra int) []contracts.RepoBuilds {
	next := make([]contracts.RepoBuilds, len(entries), len(entries)+extra)
	copy(next, entries)
	return next
}
