package domain

import (
	"context"
	"time"
)

// RegistrationInput is the raw payload submitted by the public form.
// Signature and Photo are encoded images (data URLs) captured in the browser.
type RegistrationInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	CategoryID string `json:"categoryId"`
	Signature  string `json:"signature"`
	Photo      string `json:"photo"`
}

// Registration is a persisted participant entry. It is created once and
// never updated or deleted by the registration workflow.
type Registration struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	CategoryID string
	Signature  string
	Photo      string
	CreatedAt  time.Time
}

// NewRegistration builds an unsaved record from validated input.
// The store assigns ID and CreatedAt.
func NewRegistration(in RegistrationInput) *Registration {
	return &Registration{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		CategoryID: in.CategoryID,
		Signature:  in.Signature,
		Photo:      in.Photo,
	}
}

// RegistrationRepository is the persistence gateway for registrations.
type RegistrationRepository interface {
	// Create assigns ID and CreatedAt and durably writes the record.
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	// List returns all registrations, newest first.
	List(ctx context.Context) ([]Registration, error)
}
