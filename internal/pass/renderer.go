// Package pass renders the one-page registration pass handed to
// participants as a PDF attachment.
package pass

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/msomdec/eventpass/internal/domain"
)

const (
	margin     = 10.0
	pageWidth  = 210.0
	pageHeight = 297.0
	labelWidth = 42.0

	photoBox      = 56.0
	signatureBoxW = 85.0
	signatureBoxH = 42.0
)

// Renderer draws passes on A4 pages using the core Helvetica font.
type Renderer struct {
	Title  string
	Footer string
}

var _ domain.PassRenderer = (*Renderer)(nil)

// NewRenderer returns a Renderer with the default pass copy.
func NewRenderer() *Renderer {
	return &Renderer{
		Title:  "Event Registration Pass",
		Footer: "This is your official registration pass. Please present it upon entry.",
	}
}

// Render returns the PDF bytes of a pass for fields. Images that cannot be
// decoded are replaced by an "Image unavailable" placeholder.
func (r *Renderer) Render(fields domain.PassFields) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(margin, margin, margin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header.
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(63, 81, 181)
	pdf.CellFormat(0, 14, tr(r.Title), "", 1, "C", false, 0, "")
	pdf.SetDrawColor(63, 81, 181)
	pdf.SetLineWidth(0.7)
	y := pdf.GetY() + 2
	pdf.Line(margin, y, pageWidth-margin, y)
	pdf.SetY(y + 8)

	// Participant information.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Participant Information", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	for _, row := range [][2]string{
		{"Full Name:", fields.Name},
		{"Contact Number:", fields.Phone},
		{"Category:", fields.Category},
	} {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(labelWidth, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 7, tr(row[1]), "", 1, "L", false, 0, "")
	}

	// Photo and signature side by side.
	top := pdf.GetY() + 14
	gap := (pageWidth - 2*margin - photoBox - signatureBoxW) / 3
	photoX := margin + gap
	sigX := photoX + photoBox + gap
	sigY := top + (photoBox-signatureBoxH)/2

	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(224, 224, 224)
	pdf.Rect(photoX, top, photoBox, photoBox, "D")
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(sigX, sigY, signatureBoxW, signatureBoxH, "FD")

	r.placeImage(pdf, "photo", fields.Photo, photoX, top, photoBox, photoBox)
	r.placeImage(pdf, "signature", fields.Signature, sigX, sigY, signatureBoxW, signatureBoxH)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.SetXY(photoX, top+photoBox+2)
	pdf.CellFormat(photoBox, 5, "Participant Photo", "", 0, "C", false, 0, "")
	pdf.SetXY(sigX, sigY+signatureBoxH+2)
	pdf.CellFormat(signatureBoxW, 5, "Signature", "", 0, "C", false, 0, "")

	// Footer.
	pdf.SetTextColor(128, 128, 128)
	pdf.SetXY(margin, pageHeight-margin-10)
	pdf.CellFormat(0, 5, tr(r.Footer), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pass pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// placeImage fits the image inside the box, preserving aspect ratio.
func (r *Renderer) placeImage(pdf *fpdf.Fpdf, name, src string, x, y, w, h float64) {
	const pad = 2.0
	img, err := DecodeImage(src)
	if err == nil {
		if typ, ok := fpdfType(img.ContentType); ok {
			opts := fpdf.ImageOptions{ImageType: typ, ReadDpi: true}
			info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
			if pdf.Ok() && info != nil && info.Width() > 0 && info.Height() > 0 {
				bw, bh := w-2*pad, h-2*pad
				scale := min(bw/info.Width(), bh/info.Height())
				iw, ih := info.Width()*scale, info.Height()*scale
				pdf.ImageOptions(name, x+(w-iw)/2, y+(h-ih)/2, iw, ih, false, opts, 0, "")
				return
			}
			pdf.ClearError()
		}
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(150, 150, 150)
	pdf.SetXY(x, y+h/2-2.5)
	pdf.CellFormat(w, 5, "Image unavailable", "", 0, "C", false, 0, "")
}
