package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/metrics"
	"github.com/msomdec/eventpass/internal/notify"
)

// User-facing messages of the registration workflow.
const (
	MsgSaveFailed       = "We could not save your registration. Please try again."
	MsgConfirmationSent = " A confirmation email is on its way."
	MsgNotFound         = "Registration not found."
	MsgLoadFailed       = "Could not load the registration. Please try again."
	MsgPassRenderFailed = "Failed to generate the registration pass."
	MsgPassSendFailed   = "Failed to send the registration pass. Please try again."
)

// Notifier delivers the registration emails. Delivery failures are
// reported through the returned Outcome.
type Notifier interface {
	SendConfirmation(ctx context.Context, reg *domain.Registration) notify.Outcome
	SendPass(ctx context.Context, reg *domain.Registration, pdf []byte) notify.Outcome
}

// CategoryNamer resolves a category ID to the name printed on a pass.
type CategoryNamer interface {
	Name(ctx context.Context, id string) string
}

// RegistrationService runs the submission pipeline (validate, persist,
// notify) and the on-demand pass send.
type RegistrationService struct {
	registrations domain.RegistrationRepository
	audit         domain.NotificationLogRepository
	files         domain.FileStore
	categories    CategoryNamer
	notifier      Notifier
	renderer      domain.PassRenderer
	metrics       *metrics.Metrics
}

// RegistrationDeps groups the collaborators of a RegistrationService.
// Audit and Files are optional.
type RegistrationDeps struct {
	Registrations domain.RegistrationRepository
	Audit         domain.NotificationLogRepository
	Files         domain.FileStore
	Categories    CategoryNamer
	Notifier      Notifier
	Renderer      domain.PassRenderer
	Metrics       *metrics.Metrics
}

func NewRegistrationService(deps RegistrationDeps) *RegistrationService {
	m := deps.Metrics
	if m == nil {
		m = metrics.NewNop()
	}
	return &RegistrationService{
		registrations: deps.Registrations,
		audit:         deps.Audit,
		files:         deps.Files,
		categories:    deps.Categories,
		notifier:      deps.Notifier,
		renderer:      deps.Renderer,
		metrics:       m,
	}
}

// Submit validates in, stores it and sends the confirmation email.
//
// Invalid input yields every field error and touches neither the store nor
// the mailer. A store failure yields a single message. Once the record is
// stored the result is a success whatever happens to the confirmation.
func (s *RegistrationService) Submit(ctx context.Context, in domain.RegistrationInput) domain.WorkflowResult {
	start := time.Now()

	if fe := ValidateRegistration(in); fe != nil {
		s.metrics.ObserveSubmission("invalid", start)
		return domain.WorkflowResult{Errors: fe}
	}

	reg := domain.NewRegistration(in)
	if err := s.registrations.Create(ctx, reg); err != nil {
		slog.ErrorContext(ctx, "persist registration", "email", in.Email, "error", err)
		s.metrics.ObserveSubmission("error", start)
		return domain.WorkflowResult{Message: MsgSaveFailed}
	}
	slog.InfoContext(ctx, "registration stored", "registration_id", reg.ID, "category_id", reg.CategoryID)

	// The record is durable; the confirmation goes out even if the client has gone.
	out := s.notifier.SendConfirmation(context.WithoutCancel(ctx), reg)

	msg := fmt.Sprintf("Thank you for registering, %s!", reg.Name)
	if out.Delivered() {
		msg += MsgConfirmationSent
	}
	s.metrics.ObserveSubmission("success", start)
	return domain.WorkflowResult{
		Success:          true,
		Message:          msg,
		RegistrationID:   reg.ID,
		ConfirmationSent: out.Delivered(),
	}
}

// SendPass renders the pass of registration id and emails it to the
// registrant. Unlike Submit, a delivery failure fails the operation.
func (s *RegistrationService) SendPass(ctx context.Context, id string) domain.PassResult {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.IncPassSend("not_found")
			return domain.PassResult{Message: MsgNotFound}
		}
		slog.ErrorContext(ctx, "load registration", "registration_id", id, "error", err)
		s.metrics.IncPassSend("error")
		return domain.PassResult{Message: MsgLoadFailed}
	}

	pdf, err := s.renderer.Render(domain.PassFields{
		Name:      reg.Name,
		Phone:     reg.Phone,
		Category:  s.categoryName(ctx, reg.CategoryID),
		Photo:     reg.Photo,
		Signature: reg.Signature,
	})
	if err != nil {
		slog.WarnContext(ctx, "render pass", "registration_id", id, "error", err)
		s.metrics.IncPassSend("error")
		return domain.PassResult{Message: MsgPassRenderFailed}
	}

	out := s.notifier.SendPass(ctx, reg, pdf)
	if !out.Delivered() {
		s.metrics.IncPassSend("error")
		return domain.PassResult{Message: MsgPassSendFailed}
	}

	s.archive(ctx, reg.ID, pdf)
	s.metrics.IncPassSend("sent")
	return domain.PassResult{
		Success: true,
		Message: fmt.Sprintf("Registration pass sent to %s.", out.Recipient),
	}
}

func (s *RegistrationService) categoryName(ctx context.Context, id string) string {
	if s.categories == nil {
		return id
	}
	return s.categories.Name(ctx, id)
}

// archive keeps the last delivered pass. Failures are only logged.
func (s *RegistrationService) archive(ctx context.Context, id string, pdf []byte) {
	if s.files == nil {
		return
	}
	if err := s.files.Save(ctx, domain.PassArchiveKey(id), pdf); err != nil {
		slog.WarnContext(ctx, "archive pass", "registration_id", id, "error", err)
	}
}

// List returns all registrations, newest first.
func (s *RegistrationService) List(ctx context.Context) ([]domain.Registration, error) {
	regs, err := s.registrations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

func (s *RegistrationService) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	return s.registrations.GetByID(ctx, id)
}

// LatestNotifications returns the newest audit record per registration ID.
func (s *RegistrationService) LatestNotifications(ctx context.Context) (map[string]domain.NotificationRecord, error) {
	if s.audit == nil {
		return map[string]domain.NotificationRecord{}, nil
	}
	latest, err := s.audit.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest notifications: %w", err)
	}
	return latest, nil
}

// ArchivedPass returns the last pass delivered for registration id, or
// domain.ErrNotFound if none was archived.
func (s *RegistrationService) ArchivedPass(ctx context.Context, id string) ([]byte, error) {
	if s.files == nil {
		return nil, domain.ErrNotFound
	}
	return s.files.Get(ctx, domain.PassArchiveKey(id))
}

// HasArchivedPass reports whether a pass is archived for registration id.
func (s *RegistrationService) HasArchivedPass(ctx context.Context, id string) (bool, error) {
	if s.files == nil {
		return false, nil
	}
	ok, err := s.files.Exists(ctx, domain.PassArchiveKey(id))
	if err != nil {
		return false, fmt.Errorf("check archived pass: %w", err)
	}
	return ok, nil
}

// ArchivedPassIDs returns the set of registration ids with an archived pass.
func (s *RegistrationService) ArchivedPassIDs(ctx context.Context) (map[string]bool, error) {
	ids := make(map[string]bool)
	if s.files == nil {
		return ids, nil
	}
	keys, err := s.files.Keys(ctx, domain.PassArchivePrefix)
	if err != nil {
		return nil, fmt.Errorf("list archived passes: %w", err)
	}
	for _, key := range keys {
		if id, ok := domain.PassArchiveID(key); ok {
			ids[id] = true
		}
	}
	return ids, nil
}
