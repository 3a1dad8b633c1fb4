package livestate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/rs/zerolog/log"
)

// StatusListener receives the live status of a session whenever it changes
type StatusListener func(status LiveStatus)

// ViewKind names the page a dashboard client is showing
type ViewKind string

const (
	ViewNone     ViewKind = ""
	ViewRepoList ViewKind = "repoList"
	ViewRepo     ViewKind = "repo"
	ViewBuild    ViewKind = "build"
	ViewRelease  ViewKind = "release"
)

// View is the page a dashboard client has open; ClosedReason is set when a server event closed it
type View struct {
	Kind         ViewKind `json:"kind"`
	RepoName     string   `json:"repo_name,omitempty"`
	BuildID      int      `json:"build_id,omitempty"`
	ClosedReason string   `json:"closed_reason,omitempty"`
}

// ViewListener receives the open view of a session whenever it changes
type ViewListener func(view View)

// Session is the state of one dashboard client: its caches, its view subscriptions, the live
// updates indicator and whether a view is loading
type Session struct {
	ID         string
	RepoBuilds *RepoBuildsCache
	Detail     *BuildDetailCache
	Registry   *Registry

	mutex      sync.RWMutex
	live       LiveStatus
	missed     int
	loading    bool
	view       View
	lastActive time.Time
	now        func() time.Time

	statusListeners listenerSet[LiveStatus]
	viewListeners   listenerSet[View]
}

// NewSession returns a session with empty caches
func NewSession(id string, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		ID:         id,
		RepoBuilds: NewRepoBuildsCache(),
		Detail:     NewBuildDetailCache(now),
		Registry:   NewRegistry(),
		live:       Disconnected(now().UTC()),
		lastActive: now(),
		now:        now,
	}
}

// Run applies the messages of the event topic in delivery order until the channel is closed or ctx is done
func (s *Session) Run(ctx context.Context, messages <-chan EventTopicMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case message, ok := <-messages:
			if !ok {
				return
			}
			s.handle(message)
		}
	}
}

func (s *Session) handle(message EventTopicMessage) {
	if message.Dropped > 0 {
		log.Warn().Str("session", s.ID).Int("dropped", message.Dropped).Msg("Session missed live updates")
		s.mutex.Lock()
		s.missed += message.Dropped
		s.mutex.Unlock()
		s.notifyStatus()
	}
	if message.Status != nil {
		s.SetLiveStatus(*message.Status)
	}
	if message.Event != nil {
		s.Dispatch(message.Event)
	}
}

// Dispatch applies an event to both caches and then calls the matching view subscriptions
func (s *Session) Dispatch(ev Event) {
	s.apply("repoBuilds", ev, s.RepoBuilds.Apply)
	s.apply("detail", ev, s.Detail.Apply)
	s.Registry.Publish(ev)
}

func (s *Session) apply(cache string, ev Event, apply func(Event) error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("session", s.ID).Str("cache", cache).Str("kind", string(ev.Kind())).Msg("Applying event panicked")
		}
	}()

	err := apply(ev)
	switch {
	case err == nil:
	case errors.Is(err, api.ErrUnknownScope):
		log.Debug().Err(err).Str("session", s.ID).Str("cache", cache).Msg("Ignoring event for unknown scope")
	default:
		log.Warn().Err(err).Str("session", s.ID).Str("cache", cache).Str("kind", string(ev.Kind())).Msg("Failed applying event")
	}
}

// LiveStatus returns whether live updates are flowing to this session
func (s *Session) LiveStatus() LiveStatus {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.live.Available && s.missed > 0 {
		return LiveStatus{Available: false, Message: missedUpdatesMessage, Since: s.live.Since}
	}
	return s.live
}

// SetLiveStatus records the state of the event stream
func (s *Session) SetLiveStatus(status LiveStatus) {
	s.mutex.Lock()
	s.live = status
	s.mutex.Unlock()

	s.notifyStatus()
}

// ResetMissed forgets missed updates; called once a view has been seeded again
func (s *Session) ResetMissed() {
	s.mutex.Lock()
	changed := s.missed > 0
	s.missed = 0
	s.mutex.Unlock()

	if changed {
		s.notifyStatus()
	}
}

// SetLoading marks whether a view is being fetched
func (s *Session) SetLoading(loading bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.loading = loading
}

// IsLoading returns true while a view is being fetched
func (s *Session) IsLoading() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.loading
}

// View returns the open view
func (s *Session) View() View {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.view
}

// SetView records the open view and notifies view listeners
func (s *Session) SetView(view View) {
	s.mutex.Lock()
	s.view = view
	s.mutex.Unlock()

	s.viewListeners.notify(func() View { return view })
}

// SubscribeView registers a listener for view changes
func (s *Session) SubscribeView(name string, listener ViewListener) {
	s.viewListeners.subscribe(name, listener)
}

// UnsubscribeView removes a view listener
func (s *Session) UnsubscribeView(name string) {
	s.viewListeners.unsubscribe(name)
}

// Touch records activity by the client
func (s *Session) Touch() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lastActive = s.now()
}

// IdleSince returns how long the client has been inactive
func (s *Session) IdleSince() time.Duration {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.now().Sub(s.lastActive)
}

// SubscribeStatus registers a listener for live status changes
func (s *Session) SubscribeStatus(name string, listener StatusListener) {
	s.statusListeners.subscribe(name, listener)
}

// UnsubscribeStatus removes a live status listener
func (s *Session) UnsubscribeStatus(name string) {
	s.statusListeners.unsubscribe(name)
}

// CloseView drops all view state and subscriptions; reason is empty when the client closed the view
func (s *Session) CloseView(reason string) {
	s.Registry.UnsubscribeAll()
	s.RepoBuilds.Reset()
	s.Detail.Close()

	if reason == "" {
		s.SetView(View{})
		return
	}
	view := s.View()
	view.ClosedReason = reason
	s.SetView(view)
}

func (s *Session) notifyStatus() {
	status := s.LiveStatus()
	s.statusListeners.notify(func() LiveStatus { return status })
}
