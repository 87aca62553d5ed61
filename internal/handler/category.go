package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/service"
	"github.com/msomdec/eventpass/internal/view"
)

// CategoryHandler serves the category management pages and the public list.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// HandleListJSON returns every category for the registration form.
// GET /api/categories
func (h *CategoryHandler) HandleListJSON(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load categories.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": toCategoryDTOs(categories)})
}

// HandlePage renders the category management page.
// GET /admin/categories
func (h *CategoryHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, view.CategoriesPageData{})
}

// HandleCreate adds a category from the add form.
// POST /admin/categories
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form := view.CategoryForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}

	_, fe, err := h.categories.Add(r.Context(), form.Name, form.Description)
	if err != nil {
		slog.Error("create category", "error", err)
		h.renderPage(w, r, http.StatusInternalServerError, view.CategoriesPageData{Form: form, Message: "Could not save the category. Please try again."})
		return
	}
	if fe != nil {
		h.renderPage(w, r, http.StatusUnprocessableEntity, view.CategoriesPageData{Form: form, Errors: fe})
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// HandleUpdate saves an inline edit.
// POST /admin/categories/{id}
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	fe, err := h.categories.Update(r.Context(), id, r.FormValue("name"), r.FormValue("description"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderError(w, r, http.StatusNotFound, "That category no longer exists.")
			return
		}
		slog.Error("update category", "category_id", id, "error", err)
		h.renderPage(w, r, http.StatusInternalServerError, view.CategoriesPageData{Message: "Could not update the category. Please try again."})
		return
	}
	if fe != nil {
		h.renderPage(w, r, http.StatusUnprocessableEntity, view.CategoriesPageData{Message: flattenErrors(fe)})
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// HandleDelete removes a category and its table row via SSE.
// POST /admin/categories/{id}/delete
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.categories.Delete(r.Context(), id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("delete category", "category_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.RemoveElementByID("category-" + id)
}

func (h *CategoryHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, data view.CategoriesPageData) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories", "error", err)
		renderError(w, r, http.StatusInternalServerError, "Could not load categories. Please try again.")
		return
	}
	data.Categories = categories
	if user := UserFromContext(r.Context()); user != nil {
		data.DisplayName = user.DisplayName
	}

	w.WriteHeader(status)
	view.AdminCategories(data).Render(r.Context(), w)
}

// flattenErrors joins field errors into one line, name first.
func flattenErrors(fe domain.FieldErrors) string {
	var msgs []string
	for _, field := range []string{"name", "description"} {
		msgs = append(msgs, fe[field]...)
	}
	return strings.Join(msgs, " ")
}
