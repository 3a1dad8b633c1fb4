package livestate

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handler is called for each event matching a subscription
type Handler func(ev Event)

// Subscription is an interest in one event kind, optionally limited to a scope
type Subscription struct {
	ID    string
	Kind  Kind
	Scope string

	handler Handler
}

func (s *Subscription) matches(ev Event) bool {
	if s.Kind != ev.Kind() {
		return false
	}
	if s.Scope == "" {
		return true
	}
	for _, scope := range ev.Scopes() {
		if scope == s.Scope {
			return true
		}
	}
	return false
}

// Registry lets views register interest in events of a kind for a repository or build scope
type Registry struct {
	mutex         sync.RWMutex
	subscriptions []*Subscription
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Subscribe registers handler for events of kind concerning scope; an empty scope matches all events of the kind
func (r *Registry) Subscribe(kind Kind, scope string, handler Handler) *Subscription {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sub := &Subscription{
		ID:      uuid.New().String(),
		Kind:    kind,
		Scope:   scope,
		handler: handler,
	}
	r.subscriptions = append(r.subscriptions, sub)

	return sub
}

// Unsubscribe removes a subscription; unknown subscriptions are ignored
func (r *Registry) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, s := range r.subscriptions {
		if s.ID == sub.ID {
			r.subscriptions = append(r.subscriptions[:i:i], r.subscriptions[i+1:]...)
			return
		}
	}
}

// UnsubscribeAll removes every subscription
func (r *Registry) UnsubscribeAll() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.subscriptions = nil
}

// Len returns the number of active subscriptions
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.subscriptions)
}

// Publish calls the handlers of all matching subscriptions in subscription order. Handlers may
// unsubscribe; a panicking handler does not prevent the others from being called.
func (r *Registry) Publish(ev Event) {
	r.mutex.RLock()
	matching := make([]*Subscription, 0, len(r.subscriptions))
	for _, s := range r.subscriptions {
		if s.matches(ev) {
			matching = append(matching, s)
		}
	}
	r.mutex.RUnlock()

	for _, s := range matching {
		callHandler(s, ev)
	}
}

func callHandler(s *Subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("kind", string(s.Kind)).Str("scope", s.Scope).Msg("Event handler panicked")
		}
	}()
	s.handler(ev)
}
