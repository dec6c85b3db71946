package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/lookbusy1344/gekko-interpreter/debugger"
	"github.com/lookbusy1344/gekko-interpreter/gekko"
)

var (
	// ErrSessionNotFound is returned when a session ID has no matching core.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionAlreadyExists is returned on a session ID collision.
	ErrSessionAlreadyExists = errors.New("session already exists")
)

const defaultSessionRAMSize = 24 * 1024 * 1024

// Session is one core instance plus the mutex that serializes HTTP
// handlers driving it. A Debugger is embedded so the session reuses its
// breakpoint bookkeeping rather than duplicating it.
type Session struct {
	ID        string
	Debugger  *debugger.Debugger
	CreatedAt time.Time
	mu        sync.Mutex
}

// SessionManager owns the set of active sessions, each an independent core
// (spec's "no shared state across cores" rule — the manager only
// serializes access within one session, never across them).
type SessionManager struct {
	sessions    map[string]*Session
	broadcaster *Broadcaster
	mu          sync.RWMutex
}

// NewSessionManager creates an empty session manager broadcasting through b.
func NewSessionManager(b *Broadcaster) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		broadcaster: b,
	}
}

// CreateSession allocates a new core and registers it under a fresh ID.
func (sm *SessionManager) CreateSession(req SessionCreateRequest) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	ramSize := int(req.RAMSize)
	if ramSize <= 0 {
		ramSize = defaultSessionRAMSize
	}

	var cpu *gekko.CPU
	if req.BaseAddress != 0 {
		cpu = gekko.NewCPUAt(req.BaseAddress, ramSize)
	} else {
		cpu = gekko.NewCPU(ramSize)
	}

	session := &Session{
		ID:        id,
		Debugger:  debugger.NewDebugger(cpu),
		CreatedAt: time.Now(),
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[id]; exists {
		return nil, ErrSessionAlreadyExists
	}
	sm.sessions[id] = session
	debugLog("session %s created: ram=%d base=0x%08X", id, ramSize, cpu.Mem.Base())
	return session, nil
}

// GetSession looks up a session by ID.
func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// DestroySession removes a session, freeing its core.
func (sm *SessionManager) DestroySession(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[id]; !exists {
		return ErrSessionNotFound
	}
	delete(sm.sessions, id)
	return nil
}

// ListSessions returns all active session IDs.
func (sm *SessionManager) ListSessions() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ids := make([]string, 0, len(sm.sessions))
	for id := range sm.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of active sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

func generateSessionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
