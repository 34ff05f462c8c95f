package model

import "time"

// Pokemon is a user-owned pokemon record.
// OwnerID is set at creation and never changes; only the owner may
// update or delete the record.
//
// Category is serialized as "type" for compatibility with existing clients.
type Pokemon struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	Name        string    `json:"name"`
	Category    string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
