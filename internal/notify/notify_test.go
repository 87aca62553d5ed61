package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/metrics"
	"github.com/msomdec/eventpass/internal/notify"
)

type fakeMailer struct {
	mu    sync.Mutex
	sent  []*domain.Email
	err   error
	panic bool
}

func (m *fakeMailer) Send(_ context.Context, email *domain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panic {
		panic("provider exploded")
	}
	m.sent = append(m.sent, email)
	return m.err
}

type fakeAudit struct {
	recs []domain.NotificationRecord
}

func (a *fakeAudit) Append(_ context.Context, rec *domain.NotificationRecord) error {
	rec.ID = int64(len(a.recs) + 1)
	a.recs = append(a.recs, *rec)
	return nil
}

func (a *fakeAudit) ListByRegistration(_ context.Context, id string) ([]domain.NotificationRecord, error) {
	var out []domain.NotificationRecord
	for _, r := range a.recs {
		if r.RegistrationID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (a *fakeAudit) Latest(context.Context) (map[string]domain.NotificationRecord, error) {
	out := make(map[string]domain.NotificationRecord)
	for _, r := range a.recs {
		out[r.RegistrationID] = r
	}
	return out, nil
}

func testRegistration() *domain.Registration {
	return &domain.Registration{
		ID:    "reg-1",
		Name:  "Jo Lee",
		Email: "jo@example.com",
		Phone: "5551234567",
	}
}

func newDispatcher(mailer domain.Mailer, audit domain.NotificationLogRepository, cfg notify.Config) (*notify.Dispatcher, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	return notify.NewDispatcher(mailer, audit, cfg, m), m
}

func TestConfig_Recipient(t *testing.T) {
	prod := notify.Config{OperatorEmail: "ops@example.com"}
	require.Equal(t, "jo@example.com", prod.Recipient("jo@example.com"))

	dev := notify.Config{Development: true, OperatorEmail: "ops@example.com"}
	require.Equal(t, "ops@example.com", dev.Recipient("jo@example.com"))

	devNoOperator := notify.Config{Development: true}
	require.Equal(t, "jo@example.com", devNoOperator.Recipient("jo@example.com"))
}

func TestSendConfirmation_DeliversToRegistrant(t *testing.T) {
	mailer := &fakeMailer{}
	audit := &fakeAudit{}
	d, m := newDispatcher(mailer, audit, notify.Config{From: "Event Team <events@example.com>"})

	out := d.SendConfirmation(context.Background(), testRegistration())

	require.True(t, out.Delivered())
	require.Equal(t, domain.NotificationConfirmation, out.Kind)
	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	require.Equal(t, "jo@example.com", sent.To)
	require.Equal(t, "Event Team <events@example.com>", sent.From)
	require.Equal(t, notify.ConfirmationSubject, sent.Subject)
	require.Contains(t, sent.HTML, "Welcome, Jo Lee!")
	require.Empty(t, sent.Attachments)

	require.Len(t, audit.recs, 1)
	require.Equal(t, domain.NotificationSent, audit.recs[0].Status)
	require.Equal(t, "reg-1", audit.recs[0].RegistrationID)
	require.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("confirmation", "sent")))
}

func TestSendConfirmation_DevelopmentOverridesRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	d, _ := newDispatcher(mailer, nil, notify.Config{Development: true, OperatorEmail: "ops@example.com"})

	out := d.SendConfirmation(context.Background(), testRegistration())

	require.True(t, out.Delivered())
	require.Equal(t, "ops@example.com", out.Recipient)
	require.Equal(t, "ops@example.com", mailer.sent[0].To)
}

func TestSendConfirmation_EscapesName(t *testing.T) {
	mailer := &fakeMailer{}
	d, _ := newDispatcher(mailer, nil, notify.Config{})
	reg := testRegistration()
	reg.Name = "<script>alert(1)</script>"

	d.SendConfirmation(context.Background(), reg)

	require.NotContains(t, mailer.sent[0].HTML, "<script>")
}

func TestSendConfirmation_FailureIsCapturedNotReturned(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("provider unavailable")}
	audit := &fakeAudit{}
	d, m := newDispatcher(mailer, audit, notify.Config{})

	out := d.SendConfirmation(context.Background(), testRegistration())

	require.False(t, out.Delivered())
	require.ErrorContains(t, out.Err, "provider unavailable")
	require.Len(t, audit.recs, 1)
	require.Equal(t, domain.NotificationFailed, audit.recs[0].Status)
	require.Contains(t, audit.recs[0].Error, "provider unavailable")
	require.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("confirmation", "failed")))
}

func TestSendConfirmation_PanicIsRecovered(t *testing.T) {
	audit := &fakeAudit{}
	d, _ := newDispatcher(&fakeMailer{panic: true}, audit, notify.Config{})

	out := d.SendConfirmation(context.Background(), testRegistration())

	require.False(t, out.Delivered())
	require.ErrorContains(t, out.Err, "provider exploded")
	require.Len(t, audit.recs, 1)
	require.Equal(t, domain.NotificationFailed, audit.recs[0].Status)
}

func TestSendPass_AttachesDocument(t *testing.T) {
	mailer := &fakeMailer{}
	audit := &fakeAudit{}
	d, _ := newDispatcher(mailer, audit, notify.Config{})
	pdf := []byte("%PDF-1.3 pass")

	out := d.SendPass(context.Background(), testRegistration(), pdf)

	require.True(t, out.Delivered())
	require.Equal(t, domain.NotificationPass, out.Kind)
	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	require.Equal(t, notify.PassSubject, sent.Subject)
	require.Contains(t, sent.HTML, "Hello, Jo Lee!")
	require.Len(t, sent.Attachments, 1)
	require.Equal(t, notify.PassFilename, sent.Attachments[0].Filename)
	require.Equal(t, "application/pdf", sent.Attachments[0].ContentType)
	require.Equal(t, pdf, sent.Attachments[0].Content)
	require.Equal(t, domain.NotificationPass, audit.recs[0].Kind)
}
