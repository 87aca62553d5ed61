package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/sync/errgroup"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/service"
	"github.com/msomdec/eventpass/internal/view"
)

// DashboardHandler serves the admin registrations table and pass sends.
type DashboardHandler struct {
	registrations *service.RegistrationService
	categories    *service.CategoryService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(registrations *service.RegistrationService, categories *service.CategoryService) *DashboardHandler {
	return &DashboardHandler{registrations: registrations, categories: categories}
}

// HandleDashboard renders every registration, newest first.
// GET /admin
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var (
		regs       []domain.Registration
		categories []domain.Category
		latest     map[string]domain.NotificationRecord
		archived   map[string]bool
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		regs, err = h.registrations.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = h.categories.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		latest, err = h.registrations.LatestNotifications(ctx)
		return err
	})
	g.Go(func() (err error) {
		archived, err = h.registrations.ArchivedPassIDs(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("load dashboard", "error", err)
		renderError(w, r, http.StatusInternalServerError, "Could not load registrations. Please try again.")
		return
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	rows := make([]view.RegistrationRow, len(regs))
	for i, reg := range regs {
		category, ok := names[reg.CategoryID]
		if !ok {
			category = reg.CategoryID
		}
		rows[i] = view.RegistrationRow{
			ID:       reg.ID,
			Name:     reg.Name,
			Email:    reg.Email,
			Phone:    reg.Phone,
			Category: category,
			Status:   statusFromRecord(reg.ID, latest[reg.ID], archived[reg.ID]),
		}
	}

	view.AdminDashboard(user.DisplayName, rows).Render(r.Context(), w)
}

// statusFromRecord describes the last notification of a registration.
// archived reflects the file store, not the audit record.
func statusFromRecord(id string, rec domain.NotificationRecord, archived bool) view.PassStatusData {
	status := view.PassStatusData{RegistrationID: id, Archived: archived}
	if rec.ID == 0 {
		return status
	}

	sent := rec.Status == domain.NotificationSent
	when := rec.CreatedAt.Format("Jan 2 15:04")
	status.Success = sent
	switch {
	case rec.Kind == domain.NotificationPass && sent:
		status.Message = fmt.Sprintf("Pass sent to %s on %s.", rec.Recipient, when)
	case rec.Kind == domain.NotificationPass:
		status.Message = fmt.Sprintf("Pass send failed on %s.", when)
	case sent:
		status.Message = fmt.Sprintf("Confirmation sent on %s.", when)
	default:
		status.Message = fmt.Sprintf("Confirmation failed on %s.", when)
	}
	return status
}

// HandleSendPass emails the registration pass and patches the row status.
// POST /admin/registrations/{id}/pass
func (h *DashboardHandler) HandleSendPass(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	res := h.registrations.SendPass(r.Context(), id)

	archived, err := h.registrations.HasArchivedPass(r.Context(), id)
	if err != nil {
		slog.Warn("check archived pass", "registration_id", id, "error", err)
	}

	// The fragment carries id="pass-status-{id}" and replaces the old status in place.
	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(view.PassStatus(view.PassStatusData{
		RegistrationID: id,
		Success:        res.Success,
		Message:        res.Message,
		Archived:       archived,
	}))
}

// HandleSendPassJSON is the JSON form of HandleSendPass.
// POST /api/registrations/{id}/pass
// Response: {"success":bool,"message":"..."}
func (h *DashboardHandler) HandleSendPassJSON(w http.ResponseWriter, r *http.Request) {
	res := h.registrations.SendPass(r.Context(), r.PathValue("id"))

	status := http.StatusOK
	if !res.Success {
		switch res.Message {
		case service.MsgNotFound:
			status = http.StatusNotFound
		case service.MsgLoadFailed:
			status = http.StatusInternalServerError
		default:
			status = http.StatusBadGateway
		}
	}
	writeJSON(w, status, res)
}

// HandleArchivedPass downloads the last pass delivered for a registration.
// GET /admin/registrations/{id}/pass.pdf
func (h *DashboardHandler) HandleArchivedPass(w http.ResponseWriter, r *http.Request) {
	data, err := h.registrations.ArchivedPass(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("get archived pass", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="registration-pass.pdf"`)
	serveBytes(w, data)
}
