package livestate

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// listenerSet holds named listeners, called in subscription order. Notifications are queued and
// delivered by a single drain at a time, so a listener may change the state it listens to; the
// resulting notification is delivered after the current one.
type listenerSet[T any] struct {
	mutex  sync.RWMutex
	names  []string
	byName map[string]func(T)

	queueMutex sync.Mutex
	pending    []func() T
	draining   bool
}

func (l *listenerSet[T]) subscribe(name string, listener func(T)) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.byName == nil {
		l.byName = map[string]func(T){}
	}
	if _, ok := l.byName[name]; !ok {
		l.names = append(l.names, name)
	}
	l.byName[name] = listener
}

func (l *listenerSet[T]) unsubscribe(name string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if _, ok := l.byName[name]; !ok {
		return
	}
	delete(l.byName, name)
	for i, n := range l.names {
		if n == name {
			l.names = append(l.names[:i:i], l.names[i+1:]...)
			break
		}
	}
}

func (l *listenerSet[T]) len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return len(l.names)
}

// notify queues a notification and delivers everything pending
func (l *listenerSet[T]) notify(snapshot func() T) {
	l.enqueue(snapshot)
	l.drain()
}

// enqueue records a notification without delivering it; callers enqueue in change order
func (l *listenerSet[T]) enqueue(snapshot func() T) {
	l.queueMutex.Lock()
	defer l.queueMutex.Unlock()

	l.pending = append(l.pending, snapshot)
}

// drain delivers pending notifications in order, unless a drain is already running, in which case
// that drain delivers them
func (l *listenerSet[T]) drain() {
	l.queueMutex.Lock()
	if l.draining {
		l.queueMutex.Unlock()
		return
	}
	l.draining = true

	for len(l.pending) > 0 {
		snapshot := l.pending[0]
		l.pending = l.pending[1:]
		l.queueMutex.Unlock()

		l.deliver(snapshot)

		l.queueMutex.Lock()
	}

	l.draining = false
	l.queueMutex.Unlock()
}

// deliver calls every listener with its own value produced by snapshot
func (l *listenerSet[T]) deliver(snapshot func() T) {
	l.mutex.RLock()
	names := make([]string, len(l.names))
	copy(names, l.names)
	listeners := make([]func(T), len(names))
	for i, name := range names {
		listeners[i] = l.byName[name]
	}
	l.mutex.RUnlock()

	for i, listener := range listeners {
		callListener(names[i], listener, snapshot())
	}
}

func callListener[T any](name string, listener func(T), value T) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("listener", name).Msg("Listener panicked")
		}
	}()
	listener(value)
}
