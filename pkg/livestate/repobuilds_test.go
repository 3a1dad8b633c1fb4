package livestate

import (
	"errors"
	"testing"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

func TestRepoBuildsCacheInitialize(t *testing.T) {

	t.Run("NotifiesListenersWithSnapshot", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		var received [][]contracts.RepoBuilds
		cache.Subscribe("list", func(entries []contracts.RepoBuilds) {
			received = append(received, entries)
		})

		// act
		cache.Initialize(getEntries())

		if assert.Equal(t, 1, len(received)) {
			assert.Equal(t, []string{"ding", "sherpa"}, repoNames(received[0]))
		}
		assert.True(t, cache.IsInitialized())
	})

	t.Run("DiscardsPriorEventAppliedState", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize(getEntries())
		err := cache.Apply(RepoEvent{Repo: contracts.Repo{Name: "gobuild"}})
		assert.Nil(t, err)

		// act
		cache.Initialize([]contracts.RepoBuilds{{Repo: contracts.Repo{Name: "other"}}})

		assert.Equal(t, []string{"other"}, repoNames(cache.Snapshot()))
	})

	t.Run("DoesNotAliasSnapshotArgument", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		entries := getEntries()
		cache.Initialize(entries)

		// act
		entries[0].Builds[0].Branch = "changed"

		snapshot := cache.Snapshot()
		assert.Equal(t, "main", snapshot[0].Builds[0].Branch)
	})
}

func TestRepoBuildsCacheApply(t *testing.T) {

	t.Run("IgnoresEventsBeforeInitialize", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		notified := 0
		cache.Subscribe("list", func(entries []contracts.RepoBuilds) { notified++ })

		// act
		err := cache.Apply(RepoEvent{Repo: contracts.Repo{Name: "ding"}})

		assert.Nil(t, err)
		assert.Equal(t, 0, notified)
		assert.Equal(t, 0, len(cache.Snapshot()))
	})

	t.Run("AppliesBranchFallbackAndNotifies", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize([]contracts.RepoBuilds{
			{Repo: contracts.Repo{Name: "r"}, Builds: []contracts.Build{{ID: 10, Branch: "main"}, {ID: 11, Branch: "dev"}}},
		})
		var received []contracts.RepoBuilds
		cache.Subscribe("list", func(entries []contracts.RepoBuilds) { received = entries })

		// act
		err := cache.Apply(BuildEvent{RepoName: "r", Build: contracts.Build{ID: 12, Branch: "main"}})

		assert.Nil(t, err)
		assert.Equal(t, []int{12, 11}, buildIDs(received[0].Builds))
		assert.Equal(t, []int{12, 11}, buildIDs(cache.Snapshot()[0].Builds))
	})

	t.Run("ReturnsUnknownScopeErrorWithoutNotifying", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize(getEntries())
		notified := 0
		cache.Subscribe("list", func(entries []contracts.RepoBuilds) { notified++ })

		// act
		err := cache.Apply(BuildEvent{RepoName: "unknown", Build: contracts.Build{ID: 3}})

		assert.True(t, errors.Is(err, api.ErrUnknownScope))
		assert.Equal(t, 0, notified)
	})

	t.Run("IgnoresOutputEvents", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize(getEntries())
		notified := 0
		cache.Subscribe("list", func(entries []contracts.RepoBuilds) { notified++ })

		// act
		err := cache.Apply(OutputEvent{BuildID: 1, Step: "build", Text: "x"})

		assert.Nil(t, err)
		assert.Equal(t, 0, notified)
	})

	t.Run("ListenerCopiesAreIndependent", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize(getEntries())
		var first, second []contracts.RepoBuilds
		cache.Subscribe("first", func(entries []contracts.RepoBuilds) { first = entries })
		cache.Subscribe("second", func(entries []contracts.RepoBuilds) { second = entries })

		// act
		err := cache.Apply(RemoveBuildEvent{BuildID: 2})

		assert.Nil(t, err)
		first[0].Builds[0].Branch = "changed"
		assert.Equal(t, "main", second[0].Builds[0].Branch)
		assert.Equal(t, "main", cache.Snapshot()[0].Builds[0].Branch)
	})

	t.Run("KeepsNotifyingAfterListenerPanics", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize(getEntries())
		notified := 0
		cache.Subscribe("broken", func(entries []contracts.RepoBuilds) { panic("broken view") })
		cache.Subscribe("working", func(entries []contracts.RepoBuilds) { notified++ })

		// act
		err := cache.Apply(RemoveRepoEvent{RepoName: "sherpa"})

		assert.Nil(t, err)
		assert.Equal(t, 1, notified)
	})
}

func TestRepoBuildsCacheInitializeHistory(t *testing.T) {

	getHistory := func() contracts.RepoBuilds {
		return contracts.RepoBuilds{
			Repo: contracts.Repo{ID: 1, Name: "ding"},
			Builds: []contracts.Build{
				{ID: 3, Branch: "main"},
				{ID: 2, Branch: "main"},
				{ID: 1, Branch: "dev"},
			},
		}
	}

	t.Run("KeepsEarlierBuildsOfSameBranch", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.InitializeHistory(getHistory())

		// act
		err := cache.Apply(BuildEvent{RepoName: "ding", Build: contracts.Build{ID: 4, Branch: "main"}})

		assert.Nil(t, err)
		entry, ok := cache.Entry("ding")
		if assert.True(t, ok) {
			assert.Equal(t, []int{4, 3, 2, 1}, buildIDs(entry.Builds))
		}
	})

	t.Run("IgnoresRepoEventsForOtherRepos", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.InitializeHistory(getHistory())
		notified := 0
		cache.Subscribe("repo", func(entries []contracts.RepoBuilds) { notified++ })

		// act
		err := cache.Apply(RepoEvent{Repo: contracts.Repo{ID: 2, Name: "sherpa"}})

		assert.Nil(t, err)
		assert.Equal(t, []string{"ding"}, repoNames(cache.Snapshot()))
		assert.Equal(t, 0, notified)
	})

	t.Run("AppliesRepoEventForOwnRepo", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.InitializeHistory(getHistory())

		// act
		err := cache.Apply(RepoEvent{Repo: contracts.Repo{ID: 1, Name: "ding", Origin: "https://example.com/ding"}})

		assert.Nil(t, err)
		entry, _ := cache.Entry("ding")
		assert.Equal(t, "https://example.com/ding", entry.Repo.Origin)
		assert.Equal(t, 3, len(entry.Builds))
	})

	t.Run("InitializeRestoresBranchFallback", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.InitializeHistory(getHistory())
		cache.Initialize(getEntries())

		// act
		err := cache.Apply(BuildEvent{RepoName: "ding", Build: contracts.Build{ID: 5, Branch: "main"}})

		assert.Nil(t, err)
		entry, _ := cache.Entry("ding")
		assert.Equal(t, []int{5, 2}, buildIDs(entry.Builds))
	})
}

func TestRepoBuildsCacheListeners(t *testing.T) {

	t.Run("ListenerMayApplyToSameCache", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize(getEntries())
		seen := [][]int{}
		cache.Subscribe("list", func(entries []contracts.RepoBuilds) {
			seen = append(seen, buildIDs(entries[0].Builds))
			if len(seen) == 1 {
				_ = cache.Apply(RemoveBuildEvent{BuildID: 1})
			}
		})

		done := make(chan error, 1)
		go func() {
			done <- cache.Apply(RemoveBuildEvent{BuildID: 2})
		}()

		// act
		select {
		case err := <-done:
			assert.Nil(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("apply from within a listener did not return")
		}

		assert.Equal(t, [][]int{{1}, {}}, seen)
		entry, _ := cache.Entry("ding")
		assert.Equal(t, 0, len(entry.Builds))
	})
}

func TestRepoBuildsCacheUnsubscribe(t *testing.T) {

	t.Run("StopsNotifications", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize(getEntries())
		notified := 0
		cache.Subscribe("list", func(entries []contracts.RepoBuilds) { notified++ })

		// act
		cache.Unsubscribe("list")

		err := cache.Apply(RemoveRepoEvent{RepoName: "sherpa"})
		assert.Nil(t, err)
		assert.Equal(t, 0, notified)
	})
}

func TestRepoBuildsCacheEntry(t *testing.T) {

	t.Run("ReturnsEntryForRepo", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize(getEntries())

		// act
		entry, ok := cache.Entry("ding")

		assert.True(t, ok)
		assert.Equal(t, []int{1, 2}, buildIDs(entry.Builds))
	})

	t.Run("ReturnsFalseForUnknownRepo", func(t *testing.T) {

		cache := NewRepoBuildsCache()
		cache.Initialize(getEntries())

		// act
		_, ok := cache.Entry("unknown")

		assert.False(t, ok)
	})
}
