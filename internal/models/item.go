package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemType classifies a trackable lab item.
type ItemType string

const (
	ItemTypeFlask    ItemType = "flask"
	ItemTypePump     ItemType = "pump"
	ItemTypeComputer ItemType = "computer"
	ItemTypeOther    ItemType = "other"
)

// ItemStatus tracks the usability of an item.
type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "available"
	ItemStatusInUse       ItemStatus = "in_use"
	ItemStatusMaintenance ItemStatus = "maintenance"
	ItemStatusLost        ItemStatus = "lost"
	ItemStatusDiscarded   ItemStatus = "discarded"
)

// Field length limits shared by the API and the schema.
const (
	TitleMaxLen       = 255
	DescriptionMaxLen = 255
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeFlask, ItemTypePump, ItemTypeComputer, ItemTypeOther:
		return true
	}
	return false
}

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusAvailable, ItemStatusInUse, ItemStatusMaintenance, ItemStatusLost, ItemStatusDiscarded:
		return true
	}
	return false
}

// Item is a trackable physical object (flask, pump, computer, other).
type Item struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Type        ItemType   `json:"type"`
	Status      ItemStatus `json:"status"`
	LocationID  *uuid.UUID `json:"location_id"`
}

// CreateItemRequest is the request body for item creation. Type and status
// fall back to their defaults when omitted.
type CreateItemRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Type        ItemType   `json:"type,omitempty"`
	Status      ItemStatus `json:"status,omitempty"`
}

func (r *CreateItemRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(r.Title) > TitleMaxLen {
		return fmt.Errorf("title must be at most %d characters", TitleMaxLen)
	}
	if r.Description != nil && len(*r.Description) > DescriptionMaxLen {
		return fmt.Errorf("description must be at most %d characters", DescriptionMaxLen)
	}
	if r.Type != "" && !r.Type.Valid() {
		return fmt.Errorf("invalid item type %q", r.Type)
	}
	if r.Status != "" && !r.Status.Valid() {
		return fmt.Errorf("invalid item status %q", r.Status)
	}
	return nil
}

// Item builds the item to persist, assigning a fresh identity and applying
// defaults for type and status.
func (r *CreateItemRequest) Item() Item {
	it := Item{
		ID:          uuid.New(),
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Status:      r.Status,
	}
	if it.Type == "" {
		it.Type = ItemTypeOther
	}
	if it.Status == "" {
		it.Status = ItemStatusAvailable
	}
	return it
}

// UpdateItemRequest carries a partial item update. Every field records
// whether it was present in the payload, so "absent" and "set to null"
// stay distinguishable. The location is deliberately not updatable here;
// the move operation is the only way to change it.
type UpdateItemRequest struct {
	Title       Optional[string]     `json:"title"`
	Description Optional[*string]    `json:"description"`
	Type        Optional[ItemType]   `json:"type"`
	Status      Optional[ItemStatus] `json:"status"`
}

func (r *UpdateItemRequest) Validate() error {
	if r.Title.Set {
		if r.Title.Value == "" {
			return fmt.Errorf("title must not be empty")
		}
		if len(r.Title.Value) > TitleMaxLen {
			return fmt.Errorf("title must be at most %d characters", TitleMaxLen)
		}
	}
	if r.Description.Set && r.Description.Value != nil && len(*r.Description.Value) > DescriptionMaxLen {
		return fmt.Errorf("description must be at most %d characters", DescriptionMaxLen)
	}
	if r.Type.Set && !r.Type.Value.Valid() {
		return fmt.Errorf("invalid item type %q", r.Type.Value)
	}
	if r.Status.Set && !r.Status.Value.Valid() {
		return fmt.Errorf("invalid item status %q", r.Status.Value)
	}
	return nil
}

// Empty reports whether no field was present in the payload.
func (r *UpdateItemRequest) Empty() bool {
	return !r.Title.Set && !r.Description.Set && !r.Type.Set && !r.Status.Set
}

// ItemsResponse is the paginated item list payload.
type ItemsResponse struct {
	Data  []Item `json:"data"`
	Count int    `json:"count"`
}

// Message is a generic response message.
type Message struct {
	Message string `json:"message"`
}
