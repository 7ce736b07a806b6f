package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go-pos-ledger/internal/service"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Mode is the screen the operator is working in.
type Mode string

const (
	ModeSale    Mode = "sale"
	ModeReceive Mode = "receive"
	ModeHistory Mode = "history"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeSale, ModeReceive, ModeHistory:
		return true
	}
	return false
}

// Session is the state of one operator terminal: the open cart and the barcode
// waiting for a registration form, if any.
type Session struct {
	ID             string        `json:"id"`
	Mode           Mode          `json:"mode"`
	PendingBarcode string        `json:"pending_barcode,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	LastSeen       time.Time     `json:"last_seen"`
	Cart           *service.Cart `json:"-"`
}

// SwitchMode changes screens, discarding the cart and any pending registration.
func (s *Session) SwitchMode(mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", service.ErrInvalidInput, mode)
	}
	s.Mode = mode
	s.Cart.Clear()
	s.PendingBarcode = ""
	return nil
}

// Registry tracks the open sessions of this process. Sessions left idle longer
// than the TTL are dropped together with their carts.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
}

// NewRegistry builds an empty registry. An idleTTL of zero keeps sessions until closed.
func NewRegistry(idleTTL time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

func (r *Registry) Create() *Session {
	now := r.now()
	s := &Session{
		ID:        uuid.NewString(),
		Mode:      ModeSale,
		CreatedAt: now,
		LastSeen:  now,
		Cart:      service.NewCart(),
	}
	r.mu.Lock()
	r.evictIdle(now)
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns an open session and marks it as seen.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if r.expired(s, now) {
		delete(r.sessions, id)
		return nil, ErrSessionNotFound
	}
	s.LastSeen = now
	return s, nil
}

// Close discards the session and its cart.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictIdle(r.now())
	return len(r.sessions)
}

func (r *Registry) expired(s *Session, now time.Time) bool {
	return r.idleTTL > 0 && now.Sub(s.LastSeen) > r.idleTTL
}

// evictIdle must be called with mu held.
func (r *Registry) evictIdle(now time.Time) {
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
		}
	}
}
