package store

import (
	"context"
	"testing"

	"labtrack-api/internal/models"
	"labtrack-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLocations(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	locations, err := ListLocations(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, locations)

	fridge := createTestLocation(t, db, "Fridge A")
	shelf := createTestLocation(t, db, "Shelf 3")

	locations, err = ListLocations(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{
		fridge.ID: "Fridge A",
		shelf.ID:  "Shelf 3",
	}, locations)
}

func TestGetLocation(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	desc := "walk-in cold room"
	req := models.CreateLocationRequest{Name: "Cold Room", Description: &desc}
	loc := req.Location()
	require.NoError(t, CreateLocation(ctx, db, &loc))

	got, err := GetLocation(ctx, db, loc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Cold Room", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
}

func TestGetLocation_AbsentIsNilNotError(t *testing.T) {
	db := testutil.NewTestDB(t)

	got, err := GetLocation(context.Background(), db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateLocation_DuplicateName(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	createTestLocation(t, db, "Fridge A")

	req := models.CreateLocationRequest{Name: "Fridge A"}
	dup := req.Location()
	err := CreateLocation(ctx, db, &dup)
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), `"Fridge A"`)
}
