package handler

import (
	"net/http"

	"github.com/msomdec/eventpass/internal/view"
)

// renderError writes a full HTML error page.
func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	view.ErrorPage(status, http.StatusText(status), message).Render(r.Context(), w)
}
