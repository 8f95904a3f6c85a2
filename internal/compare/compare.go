package compare

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/gmartbd/storefront-api/internal/session"
)

// MaxItems is the size of the side-by-side comparison.
const MaxItems = 2

// Change notifies subscribers that a session's selection moved.
type Change struct {
	SessionID string
	Slugs     []string
}

// Manager owns the compare selection: an ordered set of at most two
// product slugs per session with last-two-wins eviction.
type Manager struct {
	store  session.Store
	logger *zap.Logger

	mu   sync.Mutex
	subs map[int]chan Change
	next int
}

func NewManager(store session.Store, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
		subs:   make(map[int]chan Change),
	}
}

// Add puts slug at the most-recent position. A slug already present is
// moved, not duplicated; a third distinct slug evicts the oldest. The
// resulting list is returned in order, oldest first.
func (m *Manager) Add(ctx context.Context, sessionID, slug string) ([]string, error) {
	slugs, err := m.store.CompareList(ctx, sessionID)
	if err != nil {
		// Missing or unreadable state starts a fresh selection.
		m.logger.Warn("Failed to load compare list, starting empty",
			zap.String("session", sessionID),
			zap.Error(err),
		)
		slugs = nil
	}

	filtered := slugs[:0:0]
	for _, s := range slugs {
		if s != slug {
			filtered = append(filtered, s)
		}
	}
	filtered = append(filtered, slug)

	if len(filtered) > MaxItems {
		filtered = filtered[len(filtered)-MaxItems:]
	}

	if err := m.store.SaveCompareList(ctx, sessionID, filtered); err != nil {
		return nil, err
	}

	m.broadcast(Change{SessionID: sessionID, Slugs: filtered})
	return filtered, nil
}

// List returns the session's current selection, oldest first.
func (m *Manager) List(ctx context.Context, sessionID string) ([]string, error) {
	return m.store.CompareList(ctx, sessionID)
}

// Subscribe registers for change notifications. The returned cancel func
// must be called to release the subscription.
func (m *Manager) Subscribe() (<-chan Change, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	ch := make(chan Change, 8)
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// broadcast never blocks a mutation on a slow subscriber.
func (m *Manager) broadcast(change Change) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- change:
		default:
		}
	}
}
