package livestate

import (
	"sync"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// BuildDetailListener receives a copy of the open build after every change, or nil once it is closed.
// Listeners run after the change has been applied and may call back into the cache.
type BuildDetailListener func(detail *contracts.BuildResult)

// BuildDetailCache holds the build or release open in a build view, with its steps and live output
type BuildDetailCache struct {
	applyMutex sync.Mutex
	mutex      sync.RWMutex

	detail    *contracts.BuildResult
	now       func() time.Time
	listeners listenerSet[*contracts.BuildResult]
}

// NewBuildDetailCache returns a closed cache; now stamps the start of steps first seen in output events
func NewBuildDetailCache(now func() time.Time) *BuildDetailCache {
	if now == nil {
		now = time.Now
	}
	return &BuildDetailCache{now: now}
}

// Initialize opens the cache on the build result fetched from the ci server, discarding prior state
func (c *BuildDetailCache) Initialize(snapshot contracts.BuildResult) {
	c.applyMutex.Lock()
	detail := copyDetail(&snapshot)
	c.mutex.Lock()
	c.detail = detail
	c.mutex.Unlock()
	c.listeners.enqueue(detailSnapshotOf(detail))
	c.applyMutex.Unlock()

	c.listeners.drain()
}

// Close discards the open build
func (c *BuildDetailCache) Close() {
	c.applyMutex.Lock()
	c.mutex.Lock()
	wasOpen := c.detail != nil
	c.detail = nil
	c.mutex.Unlock()
	if wasOpen {
		c.listeners.enqueue(detailSnapshotOf(nil))
	}
	c.applyMutex.Unlock()

	if wasOpen {
		c.listeners.drain()
	}
}

// IsOpen returns true while a build is open
func (c *BuildDetailCache) IsOpen() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.detail != nil
}

// BuildID returns the id of the open build
func (c *BuildDetailCache) BuildID() (int, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.detail == nil {
		return 0, false
	}
	return c.detail.Build.ID, true
}

// Apply merges an event concerning the open build; events for other builds, or while closed, are ignored.
// Removal of the open build closes the cache.
func (c *BuildDetailCache) Apply(ev Event) error {
	c.applyMutex.Lock()

	next, changed := c.apply(ev)
	if changed {
		c.listeners.enqueue(detailSnapshotOf(next))
	}
	c.applyMutex.Unlock()

	if changed {
		c.listeners.drain()
	}

	return nil
}

func (c *BuildDetailCache) apply(ev Event) (next *contracts.BuildResult, changed bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.detail == nil {
		return nil, false
	}

	var err error
	switch e := ev.(type) {
	case BuildEvent:
		next, err = ApplyBuildToDetail(c.detail, e)
	case OutputEvent:
		next, err = ApplyOutput(c.detail, e, c.now())
	case RemoveBuildEvent:
		var removed bool
		next, removed = ApplyRemoveBuildToDetail(c.detail, e)
		if !removed {
			return nil, false
		}
	default:
		return nil, false
	}
	if err != nil {
		// out of scope for the open build
		return nil, false
	}
	c.detail = next

	return next, true
}

// Snapshot returns a deep copy of the open build, or nil
func (c *BuildDetailCache) Snapshot() *contracts.BuildResult {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return copyDetail(c.detail)
}

// Subscribe registers a listener under name, replacing a listener with the same name
func (c *BuildDetailCache) Subscribe(name string, listener BuildDetailListener) {
	c.listeners.subscribe(name, listener)
}

// Unsubscribe removes the listener registered under name
func (c *BuildDetailCache) Unsubscribe(name string) {
	c.listeners.unsubscribe(name)
}

// detailSnapshotOf copies detail for each listener; merge functions never modify their input
func detailSnapshotOf(detail *contracts.BuildResult) func() *contracts.BuildResult {
	return func() *contracts.BuildResult {
		return copyDetail(detail)
	}
}

func copyDetail(detail *contracts.BuildResult) *contracts.BuildResult {
	if detail == nil {
		return nil
	}
	snapshot := &contracts.BuildResult{}
	err := copier.CopyWithOption(snapshot, detail, copier.Option{DeepCopy: true})
	if err != nil {
		log.Warn().Err(err).Int("build", detail.Build.ID).Msg("Failed deep copying build detail, falling back to shallow copy")
		shallow := *detail
		shallow.Steps = append([]contracts.Step(nil), detail.Steps...)
		return &shallow
	}
	return snapshot
}
