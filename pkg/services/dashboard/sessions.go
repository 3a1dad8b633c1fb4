package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/livestate"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	session *livestate.Session
	cancel  context.CancelFunc
	done    chan struct{}
}

// SessionStore holds the sessions of all connected dashboard clients, each fed by the event topic
type SessionStore struct {
	config *api.APIConfig
	topic  *livestate.EventTopic
	now    func() time.Time

	mutex    sync.RWMutex
	sessions map[string]*sessionEntry
}

// NewSessionStore returns an empty store subscribing new sessions to topic
func NewSessionStore(config *api.APIConfig, topic *livestate.EventTopic) *SessionStore {
	return &SessionStore{
		config:   config,
		topic:    topic,
		now:      time.Now,
		sessions: map[string]*sessionEntry{},
	}
}

// Create starts a new session applying events from the topic until it is removed
func (s *SessionStore) Create() (*livestate.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.sessions) >= s.config.Sessions.MaxSessions {
		return nil, errors.Wrapf(api.ErrTooManySessions, "maximum of %v reached", s.config.Sessions.MaxSessions)
	}

	session := livestate.NewSession(uuid.New().String(), s.now)
	messages := s.topic.Subscribe(session.ID, s.config.Events.SessionBufferSize)

	ctx, cancel := context.WithCancel(context.Background())
	entry := &sessionEntry{
		session: session,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go func() {
		defer close(entry.done)
		session.Run(ctx, messages)
	}()

	s.sessions[session.ID] = entry

	log.Info().Str("session", session.ID).Int("sessions", len(s.sessions)).Msg("Created session")

	return session, nil
}

// Get returns a session and records activity on it
func (s *SessionStore) Get(id string) (*livestate.Session, error) {
	s.mutex.RLock()
	entry, ok := s.sessions[id]
	s.mutex.RUnlock()

	if !ok {
		return nil, errors.Wrapf(api.ErrSessionNotFound, "session %v", id)
	}
	entry.session.Touch()

	return entry.session, nil
}

// Remove stops a session and drops its state
func (s *SessionStore) Remove(id string) error {
	s.mutex.Lock()
	entry, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mutex.Unlock()

	if !ok {
		return errors.Wrapf(api.ErrSessionNotFound, "session %v", id)
	}

	s.stop(entry)

	log.Info().Str("session", id).Msg("Removed session")

	return nil
}

// Sweep removes sessions that have been idle for longer than the configured idle timeout
func (s *SessionStore) Sweep() (removed int) {
	s.mutex.Lock()
	expired := []*sessionEntry{}
	for id, entry := range s.sessions {
		if entry.session.IdleSince() > s.config.Sessions.IdleTimeout {
			expired = append(expired, entry)
			delete(s.sessions, id)
		}
	}
	s.mutex.Unlock()

	for _, entry := range expired {
		log.Info().Str("session", entry.session.ID).Msg("Expiring idle session")
		s.stop(entry)
	}

	return len(expired)
}

// RunSweeper sweeps idle sessions every sweep interval until ctx is done
func (s *SessionStore) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.config.Sessions.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Debug().Int("removed", removed).Msg("Swept idle sessions")
			}
		}
	}
}

// Len returns the number of sessions
func (s *SessionStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.sessions)
}

// CloseAll stops every session
func (s *SessionStore) CloseAll() {
	s.mutex.Lock()
	entries := s.sessions
	s.sessions = map[string]*sessionEntry{}
	s.mutex.Unlock()

	for _, entry := range entries {
		s.stop(entry)
	}
}

func (s *SessionStore) stop(entry *sessionEntry) {
	s.topic.Unsubscribe(entry.session.ID)
	entry.cancel()
	<-entry.done
	entry.session.CloseView("")
}
