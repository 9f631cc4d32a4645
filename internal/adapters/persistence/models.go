package persistence

import (
	"time"
)

// PlanRunModel represents the plan_runs table
type PlanRunModel struct {
	ID          string    `gorm:"column:id;primaryKey;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	Seed        int64     `gorm:"column:seed;not null"`
	TotalMargin float64   `gorm:"column:total_margin;not null"`
	Delivered   int       `gorm:"column:delivered;not null"`
	Rolled      int       `gorm:"column:rolled;not null"`
	Denied      int       `gorm:"column:denied;not null"`
	EventCount  int       `gorm:"column:event_count;not null;default:0"`
	AlertCount  int       `gorm:"column:alert_count;not null;default:0"`
	Summary     string    `gorm:"column:summary;type:text"` // summary JSON as text
}

func (PlanRunModel) TableName() string {
	return "plan_runs"
}
