package store

import (
	"context"
	"testing"
	"time"

	"labtrack-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemLog(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	operatorID := seedOperator(t, db)
	item := createTestItem(t, db, "Incubator", operatorID)

	entry, err := CreateItemLog(ctx, db, item.ID, "Cleaned and recalibrated.", nil, operatorID)
	require.NoError(t, err)
	assert.Equal(t, "Cleaned and recalibrated.", entry.Message)
	require.NotNil(t, entry.ItemID)
	assert.Equal(t, item.ID, *entry.ItemID)
	require.NotNil(t, entry.OperatorName)
	assert.Equal(t, "Test Operator", *entry.OperatorName)
	assert.WithinDuration(t, time.Now().UTC(), entry.Date, time.Minute)
}

func TestCreateItemLog_ExplicitDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	operatorID := seedOperator(t, db)
	item := createTestItem(t, db, "Incubator", operatorID)

	when := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	entry, err := CreateItemLog(ctx, db, item.ID, "Backdated maintenance note.", &when, operatorID)
	require.NoError(t, err)
	assert.True(t, entry.Date.Equal(when))
}

func TestCreateItemLog_ItemNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	operatorID := seedOperator(t, db)

	_, err := CreateItemLog(context.Background(), db, uuid.New(), "orphan", nil, operatorID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListItemLogs_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	operatorID := seedOperator(t, db)
	item := createTestItem(t, db, "Incubator", operatorID)

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := CreateItemLog(ctx, db, item.ID, "older entry", &older, operatorID)
	require.NoError(t, err)
	_, err = CreateItemLog(ctx, db, item.ID, "newer entry", &newer, operatorID)
	require.NoError(t, err)

	logs, err := ListItemLogs(ctx, db, item.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "newer entry", logs[1].Message)
	assert.Equal(t, "older entry", logs[2].Message)
	// The creation log carries the current time, so it sorts first.
	assert.Equal(t, "Item created via API.", logs[0].Message)
}

func TestListItemLogs_ItemNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)

	_, err := ListItemLogs(context.Background(), db, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListItemLogs_UnnamedOperator(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	anonID := testutil.SeedUser(t, db, "anon@example.com", "password123", nil, false)
	item := createTestItem(t, db, "Incubator", anonID)

	logs, err := ListItemLogs(ctx, db, item.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].OperatorName)
}
