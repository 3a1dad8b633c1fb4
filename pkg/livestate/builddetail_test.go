package livestate

import (
	"testing"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

func getOpenDetailCache() (*BuildDetailCache, time.Time) {
	now := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	cache := NewBuildDetailCache(func() time.Time { return now })
	cache.Initialize(contracts.BuildResult{
		Build:       contracts.Build{ID: 7, Branch: "main", Status: contracts.BuildStatusBuild},
		BuildScript: "#!/bin/sh\nmake\n",
		Steps:       []contracts.Step{{Name: "clone", Output: "cloned\n"}},
	})
	return cache, now
}

func TestBuildDetailCacheApply(t *testing.T) {

	t.Run("AppendsOutputOfOpenBuild", func(t *testing.T) {

		cache, now := getOpenDetailCache()

		// act
		assert.Nil(t, cache.Apply(OutputEvent{BuildID: 7, Step: "build", Where: "stdout", Text: "a"}))
		assert.Nil(t, cache.Apply(OutputEvent{BuildID: 7, Step: "build", Where: "stdout", Text: "b"}))

		detail := cache.Snapshot()
		if assert.Equal(t, 2, len(detail.Steps)) {
			assert.Equal(t, "ab", detail.Steps[1].Output)
			if assert.NotNil(t, detail.Steps[1].Start) {
				assert.True(t, now.Equal(*detail.Steps[1].Start))
			}
		}
	})

	t.Run("IgnoresOutputOfOtherBuild", func(t *testing.T) {

		cache, _ := getOpenDetailCache()
		notified := 0
		cache.Subscribe("view", func(detail *contracts.BuildResult) { notified++ })

		// act
		err := cache.Apply(OutputEvent{BuildID: 8, Step: "build", Text: "x"})

		assert.Nil(t, err)
		assert.Equal(t, 0, notified)
		assert.Equal(t, 1, len(cache.Snapshot().Steps))
	})

	t.Run("ReplacesBuildOnStatusChange", func(t *testing.T) {

		cache, _ := getOpenDetailCache()
		var received *contracts.BuildResult
		cache.Subscribe("view", func(detail *contracts.BuildResult) { received = detail })

		// act
		err := cache.Apply(BuildEvent{RepoName: "ding", Build: contracts.Build{ID: 7, Branch: "main", Status: contracts.BuildStatusSuccess}})

		assert.Nil(t, err)
		if assert.NotNil(t, received) {
			assert.Equal(t, contracts.BuildStatusSuccess, received.Build.Status)
			assert.Equal(t, "#!/bin/sh\nmake\n", received.BuildScript)
		}
	})

	t.Run("ClosesOnRemovalOfOpenBuild", func(t *testing.T) {

		cache, _ := getOpenDetailCache()
		notifications := 0
		var received *contracts.BuildResult
		cache.Subscribe("view", func(detail *contracts.BuildResult) {
			notifications++
			received = detail
		})

		// act
		err := cache.Apply(RemoveBuildEvent{BuildID: 7})

		assert.Nil(t, err)
		assert.False(t, cache.IsOpen())
		assert.Equal(t, 1, notifications)
		assert.Nil(t, received)
	})

	t.Run("IgnoresEventsWhileClosed", func(t *testing.T) {

		cache := NewBuildDetailCache(nil)

		// act
		err := cache.Apply(OutputEvent{BuildID: 7, Step: "build", Text: "x"})

		assert.Nil(t, err)
		assert.False(t, cache.IsOpen())
		assert.Nil(t, cache.Snapshot())
	})
}

func TestBuildDetailCacheInitialize(t *testing.T) {

	t.Run("DiscardsAccumulatedOutput", func(t *testing.T) {

		cache, _ := getOpenDetailCache()
		assert.Nil(t, cache.Apply(OutputEvent{BuildID: 7, Step: "build", Text: "x"}))

		// act
		cache.Initialize(contracts.BuildResult{Build: contracts.Build{ID: 9}})

		id, ok := cache.BuildID()
		assert.True(t, ok)
		assert.Equal(t, 9, id)
		assert.Equal(t, 0, len(cache.Snapshot().Steps))
	})
}

func TestBuildDetailCacheClose(t *testing.T) {

	t.Run("DiscardsOpenBuild", func(t *testing.T) {

		cache, _ := getOpenDetailCache()

		// act
		cache.Close()

		_, ok := cache.BuildID()
		assert.False(t, ok)
		assert.False(t, cache.IsOpen())
	})
}

func TestBuildDetailCacheListeners(t *testing.T) {

	t.Run("ListenerMayCloseSameCache", func(t *testing.T) {

		cache, _ := getOpenDetailCache()
		received := []*contracts.BuildResult{}
		cache.Subscribe("view", func(detail *contracts.BuildResult) {
			received = append(received, detail)
			if detail != nil && detail.Build.Status == contracts.BuildStatusSuccess {
				cache.Close()
			}
		})

		done := make(chan error, 1)
		go func() {
			done <- cache.Apply(BuildEvent{RepoName: "ding", Build: contracts.Build{ID: 7, Branch: "main", Status: contracts.BuildStatusSuccess}})
		}()

		// act
		select {
		case err := <-done:
			assert.Nil(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("close from within a listener did not return")
		}

		if assert.Equal(t, 2, len(received)) {
			assert.Equal(t, contracts.BuildStatusSuccess, received[0].Build.Status)
			assert.Nil(t, received[1])
		}
		assert.False(t, cache.IsOpen())
	})
}
