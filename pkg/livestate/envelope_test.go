package livestate

import (
	"errors"
	"testing"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {

	t.Run("ReturnsRepoEvent", func(t *testing.T) {

		data := []byte(`{"kind":"repo","repo":{"id":1,"name":"ding","vcs":"git","origin":"https://github.com/mjl-/ding"}}`)

		// act
		ev, err := Decode(data)

		assert.Nil(t, err)
		e, ok := ev.(RepoEvent)
		if assert.True(t, ok) {
			assert.Equal(t, "ding", e.Repo.Name)
			assert.Equal(t, "git", e.Repo.VCS)
			assert.Equal(t, []string{"repo/ding"}, e.Scopes())
		}
	})

	t.Run("ReturnsRemoveRepoEvent", func(t *testing.T) {

		// act
		ev, err := Decode([]byte(`{"kind":"removeRepo","repo_name":"ding"}`))

		assert.Nil(t, err)
		assert.Equal(t, RemoveRepoEvent{RepoName: "ding"}, ev)
	})

	t.Run("ReturnsBuildEventWithRepoAndBuildScopes", func(t *testing.T) {

		data := []byte(`{"kind":"build","repo_name":"ding","build":{"id":12,"branch":"main","status":"build","start":"2020-01-02T03:04:05Z","finish":null}}`)

		// act
		ev, err := Decode(data)

		assert.Nil(t, err)
		e, ok := ev.(BuildEvent)
		if assert.True(t, ok) {
			assert.Equal(t, 12, e.Build.ID)
			assert.Equal(t, "main", e.Build.Branch)
			assert.Nil(t, e.Build.Finish)
			assert.Equal(t, KindBuild, e.Kind())
			assert.Equal(t, []string{"repo/ding", "build/12"}, e.Scopes())
		}
	})

	t.Run("ReturnsRemoveBuildEvent", func(t *testing.T) {

		// act
		ev, err := Decode([]byte(`{"kind":"removeBuild","build_id":7}`))

		assert.Nil(t, err)
		assert.Equal(t, RemoveBuildEvent{BuildID: 7}, ev)
	})

	t.Run("ReturnsOutputEvent", func(t *testing.T) {

		// act
		ev, err := Decode([]byte(`{"kind":"output","build_id":7,"step":"build","where":"stdout","text":"ok\n"}`))

		assert.Nil(t, err)
		assert.Equal(t, OutputEvent{BuildID: 7, Step: "build", Where: "stdout", Text: "ok\n"}, ev)
	})

	t.Run("ReturnsUnknownKindErrorForNewKinds", func(t *testing.T) {

		// act
		ev, err := Decode([]byte(`{"kind":"release","build_id":7}`))

		assert.Nil(t, ev)
		assert.True(t, errors.Is(err, api.ErrUnknownKind))
	})

	t.Run("ReturnsDecodeErrorForInvalidJSON", func(t *testing.T) {

		// act
		_, err := Decode([]byte(`{"kind":`))

		assert.True(t, errors.Is(err, api.ErrDecode))
	})

	t.Run("ReturnsDecodeErrorForMissingKind", func(t *testing.T) {

		// act
		_, err := Decode([]byte(`{"repo_name":"ding"}`))

		assert.True(t, errors.Is(err, api.ErrDecode))
	})

	t.Run("ReturnsDecodeErrorForMistypedField", func(t *testing.T) {

		// act
		_, err := Decode([]byte(`{"kind":"removeBuild","build_id":"seven"}`))

		assert.True(t, errors.Is(err, api.ErrDecode))
	})

	t.Run("ReturnsDecodeErrorForBuildWithoutRepoName", func(t *testing.T) {

		// act
		_, err := Decode([]byte(`{"kind":"build","build":{"id":1}}`))

		assert.True(t, errors.Is(err, api.ErrDecode))
	})

	decodeErrorCases := []struct {
		name string
		data string
	}{
		{"ReturnsDecodeErrorForBuildWithoutBuild", `{"kind":"build","repo_name":"ding"}`},
		{"ReturnsDecodeErrorForBuildWithoutBuildID", `{"kind":"build","repo_name":"ding","build":{"branch":"main"}}`},
		{"ReturnsDecodeErrorForRemoveBuildWithoutBuildID", `{"kind":"removeBuild"}`},
		{"ReturnsDecodeErrorForOutputWithoutBuildID", `{"kind":"output","step":"build","where":"stdout","text":"ok"}`},
	}

	for _, dc := range decodeErrorCases {
		dc := dc
		t.Run(dc.name, func(t *testing.T) {

			// act
			ev, err := Decode([]byte(dc.data))

			assert.Nil(t, ev)
			assert.True(t, errors.Is(err, api.ErrDecode))
		})
	}

	t.Run("DropsBuildWithoutBuildInsteadOfAddingItToTheList", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize(getEntries())

		// act
		ev, err := Decode([]byte(`{"kind":"build","repo_name":"ding"}`))
		if err == nil {
			_ = cache.Apply(ev)
		}

		assert.True(t, errors.Is(err, api.ErrDecode))
		entry, ok := cache.Entry("ding")
		if assert.True(t, ok) {
			assert.Equal(t, []int{1, 2}, buildIDs(entry.Builds))
		}
	})
}
