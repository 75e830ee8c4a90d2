// Package alerts owns the alert read/unread lifecycle: ordered, filtered
// views of a user's alerts plus single and bulk unread-to-read transitions.
package alerts

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/errs"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

// Store is the persistence surface the manager consumes. ListByUser returns
// a user's alerts in creation order (ascending Seq); an unknown user yields
// an empty slice, not an error. MarkAllRead flips every unread alert of the
// user in one atomic statement and reports how many rows changed.
type Store interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Alert, error)
	MarkRead(ctx context.Context, alertID string) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

const (
	// DefaultLimit applies when the caller does not ask for one.
	DefaultLimit = 50
	// MaxLimit is the hard cap; larger requests are clamped, not rejected.
	MaxLimit = 100

	snapshotSize = 5
)

// ListOptions narrows and bounds a List call.
type ListOptions struct {
	UnreadOnly bool
	Limit      int
}

// Snapshot is the pre-update view reported alongside a bulk transition.
type Snapshot struct {
	TotalAlerts        int            `json:"totalAlerts"`
	UnreadAlerts       int            `json:"unreadAlerts"`
	LatestUnreadAlerts []models.Alert `json:"latestUnreadAlerts"`
}

// BulkReadResult is what MarkAllRead returns to the caller, letting it
// report "what changed" without a second query.
type BulkReadResult struct {
	UpdatedCount int64    `json:"updatedCount"`
	BeforeUpdate Snapshot `json:"beforeUpdate"`
}

// Manager serializes bulk transitions per user while leaving reads and
// operations on different users fully concurrent.
type Manager struct {
	store Store
	log   *zap.Logger

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewManager(store Store, log *zap.Logger) *Manager {
	return &Manager{
		store: store,
		log:   log,
		locks: make(map[uint]*sync.Mutex),
	}
}

func (m *Manager) userLock(userID uint) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[userID] = l
	}
	return l
}

// List returns the user's alerts sorted by createdAt descending, truncated
// to the (clamped) limit. Alerts created at the identical timestamp keep
// their creation order.
func (m *Manager) List(ctx context.Context, userID uint, opts ListOptions) ([]models.Alert, error) {
	all, err := m.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Alert, 0, len(all))
	for _, a := range all {
		if opts.UnreadOnly && a.IsRead {
			continue
		}
		out = append(out, a)
	}
	sortNewestFirst(out)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MarkRead transitions a single alert owned by userID to read. A second
// call for the same alert is a no-op; an alert owned by someone else is
// reported as not found.
func (m *Manager) MarkRead(ctx context.Context, userID uint, alertID string) error {
	all, err := m.store.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, a := range all {
		if a.ID != alertID {
			continue
		}
		if a.IsRead {
			return nil
		}
		return m.store.MarkRead(ctx, alertID)
	}
	return errs.NotFound("alert not found")
}

// MarkAllRead snapshots the user's alert set, then transitions every unread
// alert to read in one atomic step. Concurrent calls for the same user are
// serialized so two callers can never both claim the same transitions; a
// user with nothing unread gets updatedCount 0, never an error.
func (m *Manager) MarkAllRead(ctx context.Context, userID uint) (*BulkReadResult, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	all, err := m.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	unread := make([]models.Alert, 0, len(all))
	for _, a := range all {
		if !a.IsRead {
			unread = append(unread, a)
		}
	}
	sortNewestFirst(unread)

	latest := unread
	if len(latest) > snapshotSize {
		latest = latest[:snapshotSize]
	}
	snapshot := Snapshot{
		TotalAlerts:        len(all),
		UnreadAlerts:       len(unread),
		LatestUnreadAlerts: latest,
	}

	var updated int64
	if len(unread) > 0 {
		updated, err = m.store.MarkAllRead(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	if updated > 0 {
		m.log.Debug("Bulk alert transition",
			zap.Uint("userID", userID),
			zap.Int64("updated", updated),
		)
	}
	return &BulkReadResult{UpdatedCount: updated, BeforeUpdate: snapshot}, nil
}

// sortNewestFirst orders by createdAt descending. The sort is stable and
// the input arrives in creation order, so identical timestamps keep their
// original relative order.
func sortNewestFirst(alerts []models.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
}
