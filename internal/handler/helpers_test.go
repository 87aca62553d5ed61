package handler_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/handler"
	"github.com/msomdec/eventpass/internal/metrics"
	"github.com/msomdec/eventpass/internal/notify"
	"github.com/msomdec/eventpass/internal/pass"
	"github.com/msomdec/eventpass/internal/repository/sqlite"
	"github.com/msomdec/eventpass/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type recordingMailer struct {
	mu   sync.Mutex
	sent []*domain.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, email *domain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return m.err
}

func (m *recordingMailer) emails() []*domain.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Email(nil), m.sent...)
}

type testApp struct {
	srv           *httptest.Server
	db            *sqlite.DB
	auth          *service.AuthService
	registrations *service.RegistrationService
	categories    *service.CategoryService
	mailer        *recordingMailer
}

func newTestServices(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return service.NewAuthService(db.Users(), testJWTSecret, 4), db
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	auth, db := newTestServices(t)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	mailer := &recordingMailer{}
	categories := service.NewCategoryService(db.Categories(), time.Minute)
	registrations := service.NewRegistrationService(service.RegistrationDeps{
		Registrations: db.Registrations(),
		Audit:         db.NotificationLog(),
		Files:         db.FileStore(),
		Categories:    categories,
		Notifier:      notify.NewDispatcher(mailer, db.NotificationLog(), notify.Config{From: "Event Team <events@example.com>"}, m),
		Renderer:      pass.NewRenderer(),
		Metrics:       m,
	})
	limiter := service.NewRateLimiter(100, 100)
	t.Cleanup(limiter.Stop)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, registrations, categories, limiter, reg, false)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)

	return &testApp{
		srv:           srv,
		db:            db,
		auth:          auth,
		registrations: registrations,
		categories:    categories,
		mailer:        mailer,
	}
}

// client returns an HTTP client with a cookie jar that does not follow redirects.
func (a *testApp) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// adminClient returns a client signed in as a freshly created administrator.
func (a *testApp) adminClient(t *testing.T) *http.Client {
	t.Helper()
	if _, err := a.auth.CreateAdmin(context.Background(), "admin@example.com", "Admin User", "password123"); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	client := a.client(t)
	resp, err := client.PostForm(a.srv.URL+"/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login: expected 303, got %d", resp.StatusCode)
	}
	return client
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func validForm(t *testing.T) url.Values {
	t.Helper()
	return url.Values{
		"name":       {"Jo Lee"},
		"email":      {"jo@example.com"},
		"phone":      {"5551234567"},
		"categoryId": {"cat1"},
		"signature":  {pngDataURL(t)},
		"photo":      {pngDataURL(t)},
	}
}
