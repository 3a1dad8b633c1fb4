package livestate

import (
	"sync"

	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// RepoBuildsListener receives a copy of the repository list after every change. Listeners run after
// the change has been applied and may call back into the cache.
type RepoBuildsListener func(entries []contracts.RepoBuilds)

// buildMerge selects how build events are merged into the list
type buildMerge int

const (
	// mergeCurrent keeps one build per branch, as shown by the repository list
	mergeCurrent buildMerge = iota
	// mergeHistory keeps every build of a single repository, as shown by the repository view
	mergeHistory
)

// RepoBuildsCache holds the ordered list of repositories with their builds, either the current build
// per branch of every repository or the full build history of one repository
type RepoBuildsCache struct {
	// applyMutex orders changes and the queueing of their notifications
	applyMutex sync.Mutex
	mutex      sync.RWMutex

	entries     []contracts.RepoBuilds
	initialized bool
	merge       buildMerge
	listeners   listenerSet[[]contracts.RepoBuilds]
}

// NewRepoBuildsCache returns an empty cache; events are ignored until it is initialized
func NewRepoBuildsCache() *RepoBuildsCache {
	return &RepoBuildsCache{}
}

// Initialize replaces all state with the repository list fetched from the ci server
func (c *RepoBuildsCache) Initialize(snapshot []contracts.RepoBuilds) {
	c.initialize(copyEntries(snapshot), mergeCurrent)
}

// InitializeHistory replaces all state with the build history of a single repository. Builds are
// matched by id only, and repository events for other repositories are ignored.
func (c *RepoBuildsCache) InitializeHistory(snapshot contracts.RepoBuilds) {
	c.initialize(copyEntries([]contracts.RepoBuilds{snapshot}), mergeHistory)
}

func (c *RepoBuildsCache) initialize(entries []contracts.RepoBuilds, merge buildMerge) {
	c.applyMutex.Lock()
	c.mutex.Lock()
	c.entries = entries
	c.initialized = true
	c.merge = merge
	c.mutex.Unlock()
	c.listeners.enqueue(snapshotOf(entries))
	c.applyMutex.Unlock()

	c.listeners.drain()
}

// Reset discards all state, after which events are ignored until the next Initialize
func (c *RepoBuildsCache) Reset() {
	c.applyMutex.Lock()
	defer c.applyMutex.Unlock()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = nil
	c.initialized = false
	c.merge = mergeCurrent
}

// IsInitialized returns true while the cache holds a seeded list
func (c *RepoBuildsCache) IsInitialized() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.initialized
}

// Apply merges an event into the list. Output events are not relevant to this cache and are ignored.
func (c *RepoBuildsCache) Apply(ev Event) (err error) {
	c.applyMutex.Lock()

	changed, err := c.apply(ev)
	if changed != nil {
		c.listeners.enqueue(snapshotOf(changed))
	}
	c.applyMutex.Unlock()

	if changed != nil {
		c.listeners.drain()
	}

	return err
}

// apply returns the new entries, or nil when the event left the list unchanged
func (c *RepoBuildsCache) apply(ev Event) (changed []contracts.RepoBuilds, err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.initialized {
		return nil, nil
	}

	next := c.entries
	switch e := ev.(type) {
	case RepoEvent:
		if c.merge == mergeHistory && indexOfRepo(c.entries, e.Repo.Name) < 0 {
			return nil, nil
		}
		next = ApplyRepo(c.entries, e)
	case RemoveRepoEvent:
		next = ApplyRemoveRepo(c.entries, e)
	case BuildEvent:
		if c.merge == mergeHistory {
			next, err = ApplyBuildByID(c.entries, e)
		} else {
			next, err = ApplyBuild(c.entries, e)
		}
	case RemoveBuildEvent:
		next = ApplyRemoveBuild(c.entries, e)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.entries = next

	return next, nil
}

// Snapshot returns a deep copy of the current list
func (c *RepoBuildsCache) Snapshot() []contracts.RepoBuilds {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return copyEntries(c.entries)
}

// Entry returns a deep copy of the entry for a repository
func (c *RepoBuildsCache) Entry(repoName string) (contracts.RepoBuilds, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	i := indexOfRepo(c.entries, repoName)
	if i < 0 {
		return contracts.RepoBuilds{}, false
	}
	entries := copyEntries(c.entries[i : i+1])
	return entries[0], true
}

// Subscribe registers a listener under name, replacing a listener with the same name
func (c *RepoBuildsCache) Subscribe(name string, listener RepoBuildsListener) {
	c.listeners.subscribe(name, listener)
}

// Unsubscribe removes the listener registered under name
func (c *RepoBuildsCache) Unsubscribe(name string) {
	c.listeners.unsubscribe(name)
}

// snapshotOf copies entries for each listener; merge functions never modify their input, so entries
// still holds the state of the change being notified
func snapshotOf(entries []contracts.RepoBuilds) func() []contracts.RepoBuilds {
	return func() []contracts.RepoBuilds {
		return copyEntries(entries)
	}
}

func copyEntries(entries []contracts.RepoBuilds) []contracts.RepoBuilds {
	snapshot := make([]contracts.RepoBuilds, 0, len(entries))
	if len(entries) == 0 {
		return snapshot
	}
	err := copier.CopyWithOption(&snapshot, entries, copier.Option{DeepCopy: true})
	if err != nil {
		log.Warn().Err(err).Msg("Failed deep copying repository list, falling back to shallow copy")
		return cloneEntries(entries, 0)
	}
	return snapshot
}
