// Package livestate keeps an in-memory model of repositories, builds and build output consistent with
// the change notifications pushed by the ci server over its event stream.
package livestate

import (
	"encoding/json"
	"strconv"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/pkg/errors"
)

// Kind is the discriminator of an event on the stream
type Kind string

const (
	KindRepo        Kind = "repo"
	KindRemoveRepo  Kind = "removeRepo"
	KindBuild       Kind = "build"
	KindRemoveBuild Kind = "removeBuild"
	KindOutput      Kind = "output"
)

// Event is a decoded event; the set of implementations is closed
type Event interface {
	Kind() Kind
	// Scopes lists the repository and build scopes the event concerns, see RepoScope and BuildScope
	Scopes() []string
	sealed()
}

// RepoScope returns the scope identifier for a repository
func RepoScope(repoName string) string {
	return "repo/" + repoName
}

// BuildScope returns the scope identifier for a build
func BuildScope(buildID int) string {
	return "build/" + strconv.Itoa(buildID)
}

// RepoEvent announces a created or updated repository
type RepoEvent struct {
	Repo contracts.Repo `json:"repo"`
}

// RemoveRepoEvent announces a removed repository
type RemoveRepoEvent struct {
	RepoName string `json:"repo_name"`
}

// BuildEvent announces a created or updated build, always carrying the full build record
type BuildEvent struct {
	RepoName string          `json:"repo_name"`
	Build    contracts.Build `json:"build"`
}

// RemoveBuildEvent announces a removed build
type RemoveBuildEvent struct {
	BuildID int `json:"build_id"`
}

// OutputEvent carries new output of a step of a running build
type OutputEvent struct {
	BuildID int    `json:"build_id"`
	Step    string `json:"step"`
	Where   string `json:"where"`
	Text    string `json:"text"`
}

func (RepoEvent) Kind() Kind        { return KindRepo }
func (RemoveRepoEvent) Kind() Kind  { return KindRemoveRepo }
func (BuildEvent) Kind() Kind       { return KindBuild }
func (RemoveBuildEvent) Kind() Kind { return KindRemoveBuild }
func (OutputEvent) Kind() Kind      { return KindOutput }

func (e RepoEvent) Scopes() []string       { return []string{RepoScope(e.Repo.Name)} }
func (e RemoveRepoEvent) Scopes() []string { return []string{RepoScope(e.RepoName)} }
func (e BuildEvent) Scopes() []string {
	return []string{RepoScope(e.RepoName), BuildScope(e.Build.ID)}
}
func (e RemoveBuildEvent) Scopes() []string { return []string{BuildScope(e.BuildID)} }
func (e OutputEvent) Scopes() []string      { return []string{BuildScope(e.BuildID)} }

func (RepoEvent) sealed()        {}
func (RemoveRepoEvent) sealed()  {}
func (BuildEvent) sealed()       {}
func (RemoveBuildEvent) sealed() {}
func (OutputEvent) sealed()      {}

// Decode parses one message of the event stream. It returns an error wrapping api.ErrDecode for
// malformed payloads and api.ErrUnknownKind for kinds introduced after this client was built.
func Decode(data []byte) (Event, error) {
	var envelope struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errors.Wrapf(api.ErrDecode, "reading envelope: %v", err)
	}

	switch envelope.Kind {
	case KindRepo:
		return decodeAs(data, func(e RepoEvent) error {
			if e.Repo.Name == "" {
				return errors.New("repo without name")
			}
			return nil
		})
	case KindRemoveRepo:
		return decodeAs(data, func(e RemoveRepoEvent) error {
			if e.RepoName == "" {
				return errors.New("missing repo_name")
			}
			return nil
		})
	case KindBuild:
		return decodeAs(data, func(e BuildEvent) error {
			if e.RepoName == "" {
				return errors.New("missing repo_name")
			}
			// ids are assigned by the server from 1, a zero id means the build is absent
			if e.Build.ID <= 0 {
				return errors.New("missing build")
			}
			return nil
		})
	case KindRemoveBuild:
		return decodeAs(data, func(e RemoveBuildEvent) error {
			if e.BuildID <= 0 {
				return errors.New("missing build_id")
			}
			return nil
		})
	case KindOutput:
		return decodeAs(data, func(e OutputEvent) error {
			if e.BuildID <= 0 {
				return errors.New("missing build_id")
			}
			if e.Step == "" {
				return errors.New("missing step")
			}
			return nil
		})
	case "":
		return nil, errors.Wrap(api.ErrDecode, "missing kind")
	}

	return nil, errors.Wrapf(api.ErrUnknownKind, "kind %q", envelope.Kind)
}

func decodeAs[T Event](data []byte, validate func(T) error) (Event, error) {
	var e T
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrapf(api.ErrDecode, "reading %v event: %v", e.Kind(), err)
	}
	if err := validate(e); err != nil {
		return nil, errors.Wrapf(api.ErrDecode, "%v event: %v", e.Kind(), err)
	}
	return e, nil
}
