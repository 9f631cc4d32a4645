package persistence_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivmehta/cargoplan-go/internal/adapters/persistence"
	"github.com/rajivmehta/cargoplan-go/internal/application/pipeline"
	"github.com/rajivmehta/cargoplan-go/test/helpers"
)

func sampleRecord(id string, createdAt time.Time) *pipeline.PlanRecord {
	return &pipeline.PlanRecord{
		ID:          id,
		CreatedAt:   createdAt,
		Seed:        42,
		TotalMargin: 125000.50,
		Delivered:   6,
		Rolled:      1,
		Denied:      1,
		EventCount:  2,
		AlertCount:  5,
		SummaryJSON: `{"total_margin":125000.5}`,
	}
}

func TestGormPlanRunRepository_SaveAndFindByID(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRunRepository(db)
	record := sampleRecord("plan-20251110T0800-deadbeef", time.Now().UTC().Truncate(time.Second))

	// Act
	err := repo.Save(context.Background(), record)
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), record.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, record.ID, found.ID)
	assert.Equal(t, record.Seed, found.Seed)
	assert.InDelta(t, record.TotalMargin, found.TotalMargin, 1e-9)
	assert.Equal(t, record.Delivered, found.Delivered)
	assert.Equal(t, record.SummaryJSON, found.SummaryJSON)
}

func TestGormPlanRunRepository_SaveIsUpsert(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRunRepository(db)
	record := sampleRecord("plan-20251110T0800-deadbeef", time.Now().UTC())
	require.NoError(t, repo.Save(context.Background(), record))

	record.TotalMargin = 99000
	record.AlertCount = 7
	require.NoError(t, repo.Save(context.Background(), record))

	found, err := repo.FindByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.InDelta(t, 99000.0, found.TotalMargin, 1e-9)
	assert.Equal(t, 7, found.AlertCount)

	records, err := repo.FindRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGormPlanRunRepository_FindByIDNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRunRepository(db)

	found, err := repo.FindByID(context.Background(), "plan-nope")

	require.Error(t, err)
	assert.Nil(t, found)
	assert.Contains(t, err.Error(), "not found")
}

func TestGormPlanRunRepository_FindRecentOrdersNewestFirst(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRunRepository(db)
	base := time.Date(2025, 11, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		record := sampleRecord(fmt.Sprintf("plan-%d", i), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Save(context.Background(), record))
	}

	records, err := repo.FindRecent(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "plan-4", records[0].ID)
	assert.Equal(t, "plan-3", records[1].ID)
	assert.Equal(t, "plan-2", records[2].ID)
}
