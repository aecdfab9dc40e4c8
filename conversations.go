package picgen

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Conversation is a live multi-turn editing session. The provider binding
// is fixed for the session's lifetime; the store entry is the sole owner
// of the provider-side handle.
type Conversation struct {
	// ID is the opaque session token handed to callers.
	ID string

	// Provider the session is bound to.
	Provider ProviderID

	// TurnCount is the number of successful generations on this session.
	TurnCount int

	// CreatedAt is when the session was opened.
	CreatedAt time.Time

	// Options is the option snapshot fixed at creation.
	Options SessionOptions

	handle SessionHandle
	busy   bool
}

// Handle returns the provider-side session handle.
func (c *Conversation) Handle() SessionHandle { return c.handle }

// ConversationStore is a process-wide, in-memory registry of active
// sessions keyed by id. Contents do not survive process restart: sessions
// are scratch state for an in-progress editing task, not durable records.
type ConversationStore struct {
	mu       sync.Mutex
	sessions map[string]*Conversation
}

// NewConversationStore creates an empty store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		sessions: make(map[string]*Conversation),
	}
}

// Create inserts a new session bound to provider and returns it.
func (s *ConversationStore) Create(provider ProviderID, opts SessionOptions, handle SessionHandle) *Conversation {
	conv := &Conversation{
		ID:        uuid.NewString(),
		Provider:  provider,
		CreatedAt: time.Now(),
		Options:   opts,
		handle:    handle,
	}

	s.mu.Lock()
	s.sessions[conv.ID] = conv
	s.mu.Unlock()

	return conv
}

// Get returns a snapshot of the session with the given id.
func (s *ConversationStore) Get(id string) (Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[id]
	if !ok {
		return Conversation{}, &ConversationNotFoundError{ID: id}
	}
	return *conv, nil
}

// acquire marks the session busy for the duration of one generate call.
// A session with a call already in flight fails fast rather than letting
// two calls interleave and corrupt turn order.
func (s *ConversationStore) acquire(id string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[id]
	if !ok {
		return nil, &ConversationNotFoundError{ID: id}
	}
	if conv.busy {
		return nil, &ConversationBusyError{ID: id}
	}
	conv.busy = true
	return conv, nil
}

// release clears the busy mark set by acquire.
func (s *ConversationStore) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok := s.sessions[id]; ok {
		conv.busy = false
	}
}

// AppendTurn increments the turn count for a session. Atomic with respect
// to concurrent callers on the same id.
func (s *ConversationStore) AppendTurn(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[id]
	if !ok {
		return &ConversationNotFoundError{ID: id}
	}
	conv.TurnCount++
	return nil
}

// Remove deletes a session. Removing an absent id is a no-op.
func (s *ConversationStore) Remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
