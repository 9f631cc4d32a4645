package pipeline

import (
	"context"
	"time"
)

// PlanRecord is the persisted trace of one plan run.
type PlanRecord struct {
	ID          string
	CreatedAt   time.Time
	Seed        int64
	TotalMargin float64
	Delivered   int
	Rolled      int
	Denied      int
	EventCount  int
	AlertCount  int
	SummaryJSON string
}

// HistoryRepository stores plan-run records. A nil repository disables
// history entirely.
type HistoryRepository interface {
	Save(ctx context.Context, record *PlanRecord) error
	FindByID(ctx context.Context, id string) (*PlanRecord, error)
	FindRecent(ctx context.Context, limit int) ([]*PlanRecord, error)
}
