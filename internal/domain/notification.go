package domain

import (
	"context"
	"time"
)

type NotificationKind string

const (
	NotificationConfirmation NotificationKind = "confirmation"
	NotificationPass         NotificationKind = "pass"
)

type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// NotificationRecord is one entry of the append-only notification audit trail.
type NotificationRecord struct {
	ID             int64
	RegistrationID string
	Kind           NotificationKind
	Recipient      string
	Status         NotificationStatus
	Error          string
	CreatedAt      time.Time
}

// NotificationLogRepository persists dispatch outcomes.
type NotificationLogRepository interface {
	Append(ctx context.Context, rec *NotificationRecord) error
	ListByRegistration(ctx context.Context, registrationID string) ([]NotificationRecord, error)
	// Latest returns the most recent record per registration ID.
	Latest(ctx context.Context) (map[string]NotificationRecord, error)
}
