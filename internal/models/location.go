package models

import (
	"fmt"

	"github.com/google/uuid"
)

// LocationNameMaxLen bounds location names; the column carries the same
// limit plus a unique index.
const LocationNameMaxLen = 63

// Location is a place an item can reside.
type Location struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
}

// CreateLocationRequest is the request body for location creation.
type CreateLocationRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateLocationRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(r.Name) > LocationNameMaxLen {
		return fmt.Errorf("name must be at most %d characters", LocationNameMaxLen)
	}
	if r.Description != nil && len(*r.Description) > DescriptionMaxLen {
		return fmt.Errorf("description must be at most %d characters", DescriptionMaxLen)
	}
	return nil
}

// Location builds the location to persist.
func (r *CreateLocationRequest) Location() Location {
	return Location{
		ID:          uuid.New(),
		Name:        r.Name,
		Description: r.Description,
	}
}

// LocationsResponse collapses all locations into an id -> name mapping.
// Descriptions and ordering are intentionally dropped from the listing.
type LocationsResponse struct {
	Locations map[uuid.UUID]string `json:"locations"`
}
