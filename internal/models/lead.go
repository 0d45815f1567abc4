package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateLeadRequest represents a contact form submission
type CreateLeadRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Interest string `json:"interest" binding:"required"`
	Notes    string `json:"notes"`
}

// CreateLeadResponse represents the response after submitting a lead
type CreateLeadResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Lead represents a lead document in the store. Documents are append-only,
// nothing updates a lead after insertion.
type Lead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Interest  string             `bson:"interest"`
	Notes     string             `bson:"notes"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
}

// LeadResponse represents a lead in listing responses, with the storage
// identifier rendered as plain text
type LeadResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Interest  string `json:"interest"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ToResponse maps a stored lead into its caller-facing shape. The timestamp
// is rendered in RFC 3339 UTC, or left absent when the store never set one.
func (l *Lead) ToResponse() LeadResponse {
	resp := LeadResponse{
		ID:       l.ID.Hex(),
		Name:     l.Name,
		Email:    l.Email,
		Phone:    l.Phone,
		Interest: l.Interest,
		Notes:    l.Notes,
	}
	if !l.CreatedAt.IsZero() {
		resp.CreatedAt = l.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
