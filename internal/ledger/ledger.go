package ledger

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// defaultRetentionRuns is the RetentionRuns value Open sets. A
// RetentionRuns of 0 or less disables retention enforcement. Grounded on
// internal/db/api.go's EnforceRetentionPolicy ("0 means disabled").
const defaultRetentionRuns = 200

// ulidEntropy is shared by every BeginRun call so that public ULIDs minted
// within the same millisecond still increase; the mutex guards it because
// MonotonicEntropy is not safe for concurrent use.
var (
	ulidMu      sync.Mutex
	ulidEntropy = ulid.Monotonic(rand.Reader, 0)
)

// Ledger wraps a *gorm.DB with the run-lifecycle operations ARMOR's CLI
// calls around each invocation.
type Ledger struct {
	db            *gorm.DB
	RetentionRuns int
}

// Open returns a Ledger backed by the database at dsn.
func Open(dsn string, debug bool) (*Ledger, error) {
	db, err := Connect(dsn, debug)
	if err != nil {
		return nil, err
	}
	return &Ledger{db: db, RetentionRuns: defaultRetentionRuns}, nil
}

// BeginRun enforces the retention policy, then inserts a new Run row with
// a UUID primary key and a monotonic ULID public identifier, returning
// the run's ID for later FinishRun calls.
func (l *Ledger) BeginRun(baseHeader, headHeader string) (string, error) {
	if err := l.pruneIfNeeded(); err != nil {
		return "", fmt.Errorf("ledger: BeginRun: enforce retention: %w", err)
	}

	ulidMu.Lock()
	publicULID := ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
	ulidMu.Unlock()

	run := Run{
		ID:         uuid.NewString(),
		PublicULID: publicULID,
		BaseHeader: baseHeader,
		HeadHeader: headHeader,
		Status:     "started",
	}
	if err := l.db.Create(&run).Error; err != nil {
		return "", fmt.Errorf("ledger: BeginRun insert: %w", err)
	}
	return run.ID, nil
}

// FinishRun records the outcome of a previously begun run.
func (l *Ledger) FinishRun(runID string, added, removed, modified int, reportKind string, runErr error) error {
	now := time.Now()
	updates := map[string]any{
		"status":         "completed",
		"report_kind":    reportKind,
		"added_count":    added,
		"removed_count":  removed,
		"modified_count": modified,
		"finished_at":    now,
	}
	if runErr != nil {
		updates["status"] = "failed"
		updates["error_detail"] = runErr.Error()
	}
	return l.db.Model(&Run{}).Where("id = ?", runID).Updates(updates).Error
}

// pruneIfNeeded deletes the oldest runs (by StartedAt, whatever their
// status) so that at most RetentionRuns remain before BeginRun inserts a
// new one.
func (l *Ledger) pruneIfNeeded() error {
	if l.RetentionRuns <= 0 {
		return nil
	}

	var count int64
	if err := l.db.Model(&Run{}).Count(&count).Error; err != nil {
		return err
	}
	if count <= int64(l.RetentionRuns) {
		return nil
	}

	var stale []string
	excess := count - int64(l.RetentionRuns)
	if err := l.db.Model(&Run{}).
		Order("started_at ASC").
		Limit(int(excess)).
		Pluck("id", &stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}
	return l.db.Where("id IN ?", stale).Delete(&Run{}).Error
}

// Close releases the underlying database connection.
func (l *Ledger) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
