package sqlite_test

import (
	"context"
	"testing"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/repository/sqlite"
)

func TestNotificationLogRepository_AppendAndList(t *testing.T) {
	db := newTestDB(t)
	regs := sqlite.NewRegistrationRepository(db)
	repo := sqlite.NewNotificationLogRepository(db)
	ctx := context.Background()

	reg := testRegistration("Jo Lee")
	if err := regs.Create(ctx, reg); err != nil {
		t.Fatalf("Create registration: %v", err)
	}

	sent := &domain.NotificationRecord{
		RegistrationID: reg.ID,
		Kind:           domain.NotificationConfirmation,
		Recipient:      reg.Email,
		Status:         domain.NotificationSent,
	}
	if err := repo.Append(ctx, sent); err != nil {
		t.Fatalf("Append sent: %v", err)
	}
	if sent.ID == 0 || sent.CreatedAt.IsZero() {
		t.Fatal("expected ID and CreatedAt to be set")
	}

	failed := &domain.NotificationRecord{
		RegistrationID: reg.ID,
		Kind:           domain.NotificationPass,
		Recipient:      reg.Email,
		Status:         domain.NotificationFailed,
		Error:          "provider unavailable",
	}
	if err := repo.Append(ctx, failed); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	recs, err := repo.ListByRegistration(ctx, reg.ID)
	if err != nil {
		t.Fatalf("ListByRegistration: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Kind != domain.NotificationConfirmation || recs[1].Status != domain.NotificationFailed {
		t.Fatalf("unexpected records: %+v", recs)
	}
	if recs[1].Error != "provider unavailable" {
		t.Fatalf("expected error text to be kept, got %q", recs[1].Error)
	}
}

func TestNotificationLogRepository_Latest(t *testing.T) {
	db := newTestDB(t)
	regs := sqlite.NewRegistrationRepository(db)
	repo := sqlite.NewNotificationLogRepository(db)
	ctx := context.Background()

	a := testRegistration("Alice")
	b := testRegistration("Bob")
	for _, reg := range []*domain.Registration{a, b} {
		if err := regs.Create(ctx, reg); err != nil {
			t.Fatalf("Create registration: %v", err)
		}
	}

	appendRec := func(regID string, kind domain.NotificationKind, status domain.NotificationStatus) {
		t.Helper()
		rec := &domain.NotificationRecord{RegistrationID: regID, Kind: kind, Recipient: "x@example.com", Status: status}
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	appendRec(a.ID, domain.NotificationConfirmation, domain.NotificationFailed)
	appendRec(a.ID, domain.NotificationPass, domain.NotificationSent)
	appendRec(b.ID, domain.NotificationConfirmation, domain.NotificationSent)

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(latest))
	}
	if latest[a.ID].Kind != domain.NotificationPass {
		t.Fatalf("expected latest for Alice to be the pass, got %s", latest[a.ID].Kind)
	}
	if latest[b.ID].Status != domain.NotificationSent {
		t.Fatalf("expected latest for Bob to be sent, got %s", latest[b.ID].Status)
	}
}
