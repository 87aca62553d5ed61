package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/pass"
	"github.com/msomdec/eventpass/internal/service"
)

// ImageHandler serves the photo and signature captured at registration.
type ImageHandler struct {
	registrations *service.RegistrationService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(registrations *service.RegistrationService) *ImageHandler {
	return &ImageHandler{registrations: registrations}
}

// HandlePhoto serves the participant photo.
// GET /admin/registrations/{id}/photo
func (h *ImageHandler) HandlePhoto(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(reg *domain.Registration) string { return reg.Photo })
}

// HandleSignature serves the participant signature.
// GET /admin/registrations/{id}/signature
func (h *ImageHandler) HandleSignature(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(reg *domain.Registration) string { return reg.Signature })
}

func (h *ImageHandler) serve(w http.ResponseWriter, r *http.Request, field func(*domain.Registration) string) {
	reg, err := h.registrations.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("get registration for image", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Only raster images are served; SVG and other markup-bearing types are not.
	img, err := pass.DecodeImage(field(reg))
	if err != nil || !pass.IsRaster(img.ContentType) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", img.ContentType)
	hdr.Set("Content-Disposition", "inline")
	hdr.Set("Content-Security-Policy", "sandbox")
	hdr.Set("Cache-Control", "private, max-age=86400")
	serveBytes(w, img.Data)
}

func serveBytes(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
