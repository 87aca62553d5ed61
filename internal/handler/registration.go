package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/service"
	"github.com/msomdec/eventpass/internal/view"
)

// RegistrationHandler serves the public registration form and its JSON twin.
type RegistrationHandler struct {
	registrations *service.RegistrationService
	categories    *service.CategoryService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrations *service.RegistrationService, categories *service.CategoryService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, categories: categories}
}

// HandleForm renders the empty registration form.
// GET /
func (h *RegistrationHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, view.RegistrationForm{})
}

// HandleSubmit processes a form submission.
// POST /register
func (h *RegistrationHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Request too large", http.StatusRequestEntityTooLarge)
		return
	}

	in := domain.RegistrationInput{
		Name:       r.PostFormValue("name"),
		Email:      r.PostFormValue("email"),
		Phone:      r.PostFormValue("phone"),
		CategoryID: r.PostFormValue("categoryId"),
		Signature:  r.PostFormValue("signature"),
		Photo:      r.PostFormValue("photo"),
	}

	res := h.registrations.Submit(r.Context(), in)
	switch {
	case res.Success:
		view.RegistrationSuccess(res.Message).Render(r.Context(), w)
	case res.Errors != nil:
		h.renderForm(w, r, http.StatusUnprocessableEntity, view.RegistrationForm{Input: in, Errors: res.Errors})
	default:
		h.renderForm(w, r, http.StatusInternalServerError, view.RegistrationForm{Input: in, Message: res.Message})
	}
}

func (h *RegistrationHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, form view.RegistrationForm) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories for form", "error", err)
		renderError(w, r, http.StatusInternalServerError, "The registration form is unavailable right now. Please try again later.")
		return
	}
	form.Categories = categories

	w.WriteHeader(status)
	view.RegistrationPage(form).Render(r.Context(), w)
}

// HandleSubmitJSON runs the registration workflow for a JSON payload.
// POST /api/registrations
// Request:  {"name":"...","email":"...","phone":"...","categoryId":"...","signature":"data:...","photo":"data:..."}
// Response: 201 {"success":true,...} | 422 {"success":false,"errors":{...}} | 500 {"success":false,"message":"..."}
func (h *RegistrationHandler) HandleSubmitJSON(w http.ResponseWriter, r *http.Request) {
	var in domain.RegistrationInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	res := h.registrations.Submit(r.Context(), in)
	switch {
	case res.Success:
		writeJSON(w, http.StatusCreated, res)
	case res.Errors != nil:
		writeJSON(w, http.StatusUnprocessableEntity, res)
	default:
		writeJSON(w, http.StatusInternalServerError, res)
	}
}
