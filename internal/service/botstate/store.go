package botstate

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"amersur-crm/internal/domain"
)

// Listener receives a state snapshot on every mutation. Implementations must
// not block: the store invokes listeners synchronously while holding its
// lock, so a slow listener would stall every other subscriber. The SSE
// adapter satisfies this with a buffered, non-blocking channel send.
type Listener func(state domain.BotState)

// Store holds the WhatsApp bot's connection state and fans every mutation
// out to its subscribers. There is exactly one Store per process, built in
// main and injected into the handlers that need it.
//
// Mutation and fan-out share one critical section, so a subscriber never
// observes a half-applied update (e.g. connected=true with a stale QR), and
// once Update returns every currently-registered listener has been invoked.
type Store struct {
	mu        sync.Mutex
	state     domain.BotState
	listeners map[uint64]Listener
	nextID    uint64
}

func NewStore() *Store {
	return &Store{
		state:     domain.BotState{LastUpdate: time.Now()},
		listeners: make(map[uint64]Listener),
	}
}

// Get returns a copy of the current state. Callers can mutate the returned
// value freely without affecting the store.
func (s *Store) Get() domain.BotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Update merges the partial update over the current state, stamps
// LastUpdate, and notifies every subscriber with the fresh snapshot.
// Unset fields keep their previous value. Listener failures are isolated:
// a panicking listener is logged and skipped, the mutation itself always
// succeeds from the caller's perspective.
func (s *Store) Update(partial domain.BotStateUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if partial.Connected != nil {
		s.state.Connected = *partial.Connected
	}
	if partial.QR.Set {
		s.state.QR = partial.QR.Value
	}
	if partial.PhoneNumber.Set {
		s.state.PhoneNumber = partial.PhoneNumber.Value
	}
	if partial.Error.Set {
		s.state.Error = partial.Error.Value
	}
	s.state.LastUpdate = time.Now()

	s.broadcastLocked()
}

// ClearQR drops a pending pairing code, typically after the bot reports a
// successful connection.
func (s *Store) ClearQR() {
	s.Update(domain.BotStateUpdate{QR: domain.NullableString{Set: true}})
}

// Subscribe registers a listener and returns its handle for Unsubscribe.
func (s *Store) Subscribe(l Listener) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = l
	return id
}

// Unsubscribe removes a listener. Removing an unknown handle is a no-op.
func (s *Store) Unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// SubscriberCount reports the number of registered listeners.
func (s *Store) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *Store) broadcastLocked() {
	for id, l := range s.listeners {
		// Each listener gets its own clone so one cannot corrupt what
		// another observes.
		s.invoke(id, l, cloneState(s.state))
	}
}

// cloneState copies the pointer fields so no caller or listener can write
// through a shared pointee back into the store.
func cloneState(state domain.BotState) domain.BotState {
	clone := state
	clone.QR = clonePtr(state.QR)
	clone.PhoneNumber = clonePtr(state.PhoneNumber)
	clone.Error = clonePtr(state.Error)
	return clone
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func (s *Store) invoke(id uint64, l Listener, snapshot domain.BotState) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Uint64("listener_id", id).
				Interface("panic", r).
				Msg("bot state listener panicked")
		}
	}()
	l(snapshot)
}
