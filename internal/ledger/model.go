// Package ledger implements C12: a SQLite-backed audit trail of ARMOR
// invocations. Grounded on internal/db/api.go's BeginRun/retention-policy
// pattern (UUID run id, monotonic ULID public id, status lifecycle) and
// db/sqlite.go's gorm + local/libsql dual-dialector Connect.
package ledger

import "time"

// Run is one invocation of the diff tool: one base/head header-pair
// comparison, from start to either completion or failure.
type Run struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	PublicULID  string `gorm:"type:varchar(26);uniqueIndex"`
	BaseHeader  string `gorm:"type:text;not null"`
	HeadHeader  string `gorm:"type:text;not null"`
	Status      string `gorm:"type:varchar(20);not null;default:'started'"` // started, completed, failed
	ReportKind  string `gorm:"type:varchar(10)"`                            // html, json

	AddedCount    int `gorm:"default:0"`
	RemovedCount  int `gorm:"default:0"`
	ModifiedCount int `gorm:"default:0"`

	StartedAt   time.Time `gorm:"autoCreateTime"`
	FinishedAt  *time.Time
	ErrorDetail string `gorm:"type:text"`
}

// TableName pins the table name so renaming the Go type never migrates a
// new table out from under an existing database file.
func (Run) TableName() string { return "runs" }
