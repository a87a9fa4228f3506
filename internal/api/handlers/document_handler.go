package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/staff-portal/internal/api/views"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/isdelr/staff-portal/internal/services"
)

// Office types are missing from the built-in mime table on minimal systems.
var documentTypes = map[string]string{
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".doc":  "application/msword",
}

// DocumentHandler serves the template catalog and file downloads.
type DocumentHandler struct {
	*Responder
	service services.DocumentServiceProvider
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(rs *Responder, service services.DocumentServiceProvider) *DocumentHandler {
	return &DocumentHandler{Responder: rs, service: service}
}

type documentsPage struct {
	Documents []models.Document
}

// List shows the catalog.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.List()
	if err != nil {
		h.serverError(w, r, err, "Failed to list documents")
		return
	}
	h.render(w, r, http.StatusOK, "documents", "Documents", views.Page{Data: documentsPage{Documents: docs}})
}

// Download sends a template as an attachment under its original file name.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	f, doc, err := h.service.Open(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			h.notFound(w, r, "Document not found")
			return
		}
		h.serverError(w, r, err, "Failed to open document")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.serverError(w, r, err, "Failed to open document")
		return
	}

	ext := strings.ToLower(filepath.Ext(doc.FileName))
	contentType, ok := documentTypes[ext]
	if !ok {
		if contentType = mime.TypeByExtension(ext); contentType == "" {
			contentType = "application/octet-stream"
		}
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	http.ServeContent(w, r, doc.FileName, info.ModTime(), f)
}
