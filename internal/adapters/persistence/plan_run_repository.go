package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
)

// GormPlanRunRepository implements pipeline.HistoryRepository using GORM
type GormPlanRunRepository struct {
	db *gorm.DB
}

// NewGormPlanRunRepository creates a new GORM plan-run repository
func NewGormPlanRunRepository(db *gorm.DB) *GormPlanRunRepository {
	return &GormPlanRunRepository{db: db}
}

// Save persists one plan-run record (upsert by run id)
func (r *GormPlanRunRepository) Save(ctx context.Context, record *pipeline.PlanRecord) error {
	result := r.db.WithContext(ctx).Save(r.entityToModel(record))
	if result.Error != nil {
		return fmt.Errorf("failed to save plan run: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a plan run by its run id
func (r *GormPlanRunRepository) FindByID(ctx context.Context, id string) (*pipeline.PlanRecord, error) {
	var model PlanRunModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("plan run not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find plan run: %w", result.Error)
	}
	return r.modelToEntity(&model), nil
}

// FindRecent retrieves the most recent plan runs, newest first
func (r *GormPlanRunRepository) FindRecent(ctx context.Context, limit int) ([]*pipeline.PlanRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var models []PlanRunModel
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list plan runs: %w", result.Error)
	}

	records := make([]*pipeline.PlanRecord, 0, len(models))
	for i := range models {
		records = append(records, r.modelToEntity(&models[i]))
	}
	return records, nil
}

// entityToModel converts a pipeline record to the database model
func (r *GormPlanRunRepository) entityToModel(record *pipeline.PlanRecord) *PlanRunModel {
	return &PlanRunModel{
		ID:          record.ID,
		CreatedAt:   record.CreatedAt,
		Seed:        record.Seed,
		TotalMargin: record.TotalMargin,
		Delivered:   record.Delivered,
		Rolled:      record.Rolled,
		Denied:      record.Denied,
		EventCount:  record.EventCount,
		AlertCount:  record.AlertCount,
		Summary:     record.SummaryJSON,
	}
}

// modelToEntity converts a database model to the pipeline record
func (r *GormPlanRunRepository) modelToEntity(model *PlanRunModel) *pipeline.PlanRecord {
	return &pipeline.PlanRecord{
		ID:          model.ID,
		CreatedAt:   model.CreatedAt,
		Seed:        model.Seed,
		TotalMargin: model.TotalMargin,
		Delivered:   model.Delivered,
		Rolled:      model.Rolled,
		Denied:      model.Denied,
		EventCount:  model.EventCount,
		AlertCount:  model.AlertCount,
		SummaryJSON: model.Summary,
	}
}
