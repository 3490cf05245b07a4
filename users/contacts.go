package users

import "time"

// Contact is an emergency contact notified on anti-theft and emergency events.
type Contact struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ContactName      string    `json:"contact_name"`
	PhoneNumber      string    `json:"phone_number"`
	Email            *string   `json:"email,omitempty"`
	RelationshipType *string   `json:"relationship_type,omitempty"`
	Priority         int       `json:"priority"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewContact is the body of POST /users/contacts.
type NewContact struct {
	ContactName      string  `json:"contact_name"`
	PhoneNumber      string  `json:"phone_number"`
	Email            *string `json:"email,omitempty"`
	RelationshipType *string `json:"relationship_type,omitempty"`
	Priority         int     `json:"priority"`
}

// ContactUpdate is the body of PUT /users/contacts/{id}.
type ContactUpdate struct {
	ContactName      *string `json:"contact_name,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Email            *string `json:"email,omitempty"`
	RelationshipType *string `json:"relationship_type,omitempty"`
	Priority         *int    `json:"priority,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}
