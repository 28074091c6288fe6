package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateItemRequest
		wantErr bool
	}{
		{"minimal", CreateItemRequest{Title: "Flask"}, false},
		{"full", CreateItemRequest{Title: "Flask", Type: ItemTypeFlask, Status: ItemStatusInUse}, false},
		{"missing title", CreateItemRequest{}, true},
		{"title too long", CreateItemRequest{Title: strings.Repeat("x", TitleMaxLen+1)}, true},
		{"bad type", CreateItemRequest{Title: "Flask", Type: "gadget"}, true},
		{"bad status", CreateItemRequest{Title: "Flask", Status: "broken"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateItemRequest_Defaults(t *testing.T) {
	req := CreateItemRequest{Title: "Flask"}
	item := req.Item()
	assert.Equal(t, ItemTypeOther, item.Type)
	assert.Equal(t, ItemStatusAvailable, item.Status)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", item.ID.String())

	// Explicit values survive.
	req = CreateItemRequest{Title: "Flask", Type: ItemTypeFlask, Status: ItemStatusLost}
	item = req.Item()
	assert.Equal(t, ItemTypeFlask, item.Type)
	assert.Equal(t, ItemStatusLost, item.Status)
}

func TestUpdateItemRequest_AbsentVsNull(t *testing.T) {
	// Absent field: not set.
	var absent UpdateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New"}`), &absent))
	assert.True(t, absent.Title.Set)
	assert.Equal(t, "New", absent.Title.Value)
	assert.False(t, absent.Description.Set)

	// Explicit null: set, with a nil value.
	var nulled UpdateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &nulled))
	assert.True(t, nulled.Description.Set)
	assert.Nil(t, nulled.Description.Value)
	assert.False(t, nulled.Title.Set)
}

func TestUpdateItemRequest_Validate(t *testing.T) {
	t.Run("empty title rejected", func(t *testing.T) {
		var req UpdateItemRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":""}`), &req))
		assert.Error(t, req.Validate())
	})

	t.Run("bad enum rejected", func(t *testing.T) {
		var req UpdateItemRequest
		require.NoError(t, json.Unmarshal([]byte(`{"type":"gadget"}`), &req))
		assert.Error(t, req.Validate())
	})

	t.Run("empty patch is valid and Empty", func(t *testing.T) {
		var req UpdateItemRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
		assert.NoError(t, req.Validate())
		assert.True(t, req.Empty())
	})
}

func TestCreateLogRequest_Validate(t *testing.T) {
	// Empty messages are fine; only overlong ones are rejected.
	assert.NoError(t, (&CreateLogRequest{}).Validate())
	assert.NoError(t, (&CreateLogRequest{Message: "routine check"}).Validate())
	assert.Error(t, (&CreateLogRequest{Message: strings.Repeat("x", MessageMaxLen+1)}).Validate())
}

func TestCreateLocationRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreateLocationRequest{Name: "Fridge A"}).Validate())
	assert.Error(t, (&CreateLocationRequest{}).Validate())
	assert.Error(t, (&CreateLocationRequest{Name: strings.Repeat("x", LocationNameMaxLen+1)}).Validate())
}
