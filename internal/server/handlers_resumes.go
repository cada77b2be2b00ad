package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/Caoophuongg/quickcv/internal/rendering"
	"github.com/Caoophuongg/quickcv/internal/schemas"
	"github.com/Caoophuongg/quickcv/internal/server/middleware"
	"github.com/Caoophuongg/quickcv/internal/storage"
	"github.com/Caoophuongg/quickcv/internal/templates"
	"github.com/Caoophuongg/quickcv/internal/types"
	"github.com/Caoophuongg/quickcv/internal/validation"
)

// maxImportBytes caps the body size of an imported resume file.
const maxImportBytes = 1 << 20

// ResumeHandler handles resume CRUD, import, photo upload and PDF export.
type ResumeHandler struct {
	resumes ResumeStore
	uploads *storage.Store
}

// NewResumeHandler creates a new ResumeHandler with the given dependencies.
func NewResumeHandler(resumes ResumeStore, uploads *storage.Store) *ResumeHandler {
	return &ResumeHandler{
		resumes: resumes,
		uploads: uploads,
	}
}

// CreateResumeRequest creates a new resume either from a full document or by
// cloning a catalog template's sample.
type CreateResumeRequest struct {
	TemplateType types.TemplateType    `json:"templateType,omitempty"`
	Title        string                `json:"title,omitempty"`
	Document     *types.ResumeDocument `json:"document,omitempty"`
}

// Create handles POST /api/resumes. Without a document the new resume starts
// from the selected template's sample (template_0 when unspecified).
func (h *ResumeHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}

	var req CreateResumeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	doc := req.Document
	if doc == nil {
		tt := req.TemplateType
		if tt == "" {
			tt = types.Template0
		}
		entry, ok := templates.ByID(tt)
		if !ok {
			writeError(w, validation.FieldErrors{{Field: "templateType", Message: "unknown template"}})
			return
		}
		doc = entry.Clone()
	}
	if req.Title != "" {
		doc.Title = req.Title
	}

	normalized, err := validation.Resume(doc)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := normalized.CheckIntegrity(); err != nil {
		writeError(w, validation.FieldErrors{{Field: "document", Message: err.Error()}})
		return
	}

	resume, err := h.resumes.CreateResume(r.Context(), session.UserID, normalized)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resume)
}

// List handles GET /api/resumes, newest-updated first.
func (h *ResumeHandler) List(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}

	resumes, err := h.resumes.ListResumes(r.Context(), session.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resumes)
}

// Get handles GET /api/resumes/{id}.
func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resume, err := h.resumes.GetResume(r.Context(), session.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if resume == nil {
		writeError(w, &ErrNotFound{Resource: "resume"})
		return
	}

	writeJSON(w, http.StatusOK, resume)
}

// Update handles PUT /api/resumes/{id}. The body is the full document; the
// stored document is replaced wholesale.
func (h *ResumeHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var doc types.ResumeDocument
	if err := decodeJSON(r, &doc); err != nil {
		writeError(w, err)
		return
	}

	normalized, err := validation.Resume(&doc)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := normalized.CheckIntegrity(); err != nil {
		writeError(w, validation.FieldErrors{{Field: "document", Message: err.Error()}})
		return
	}

	resume, err := h.resumes.UpdateResume(r.Context(), session.UserID, id, normalized)
	if err != nil {
		writeError(w, err)
		return
	}
	if resume == nil {
		writeError(w, &ErrNotFound{Resource: "resume"})
		return
	}

	writeJSON(w, http.StatusOK, resume)
}

// Delete handles DELETE /api/resumes/{id}. The photo blob, when present, is
// removed together with the row.
func (h *ResumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resume, err := h.resumes.GetResume(r.Context(), session.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if resume == nil {
		writeError(w, &ErrNotFound{Resource: "resume"})
		return
	}

	deleted, err := h.resumes.DeleteResume(r.Context(), session.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, &ErrNotFound{Resource: "resume"})
		return
	}

	if url := resume.Document.Photo.URL(); url != "" {
		if err := h.uploads.Delete(url); err != nil {
			log.Printf("Failed to remove photo for deleted resume %s: %v", id, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Resume deleted"})
}

// Import handles POST /api/resumes/import. The raw body is validated against
// the published JSON schema before the regular validators run, so imported
// files get schema-precise rejection messages.
func (h *ResumeHandler) Import(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}

	body, err := readBody(r, maxImportBytes)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := schemas.ValidateResumeJSON(body); err != nil {
		writeError(w, err)
		return
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		writeError(w, validation.FieldErrors{{Field: "body", Message: "must be valid JSON"}})
		return
	}
	doc.ID = nil

	normalized, err := validation.Resume(&doc)
	if err != nil {
		writeError(w, err)
		return
	}

	resume, err := h.resumes.CreateResume(r.Context(), session.UserID, normalized)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resume)
}

// UploadPhoto handles POST /api/resumes/{id}/photo. The binary is stored in
// the blob store and the document's photo becomes the resulting public URL.
func (h *ResumeHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	contentType, data, err := readUploadedFile(r, validation.MaxPhotoBytes)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validation.ImagePayload(contentType, int64(len(data)), validation.MaxPhotoBytes); err != nil {
		writeError(w, err)
		return
	}

	resume, err := h.resumes.GetResume(r.Context(), session.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if resume == nil {
		writeError(w, &ErrNotFound{Resource: "resume"})
		return
	}

	url, err := h.uploads.Save("photo", contentType, data)
	if err != nil {
		writeError(w, fmt.Errorf("failed to store photo: %w", err))
		return
	}

	previous := resume.Document.Photo.URL()
	doc := resume.Document.Clone()
	doc.Photo = types.RemotePhoto(url)

	updated, err := h.resumes.UpdateResume(r.Context(), session.UserID, id, doc)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeError(w, &ErrNotFound{Resource: "resume"})
		return
	}

	if previous != "" {
		if err := h.uploads.Delete(previous); err != nil {
			log.Printf("Failed to remove previous photo %s: %v", previous, err)
		}
	}

	writeJSON(w, http.StatusOK, updated)
}

// Export handles GET /api/resumes/{id}/export. The document is rendered at
// reference width and printed to PDF.
func (h *ResumeHandler) Export(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resume, err := h.resumes.GetResume(r.Context(), session.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if resume == nil {
		writeError(w, &ErrNotFound{Resource: "resume"})
		return
	}

	rendered, err := rendering.Render(&resume.Document, rendering.ReferenceWidth)
	if err != nil {
		writeError(w, err)
		return
	}

	pdf, err := rendering.ExportPDF(r.Context(), rendered)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := resume.Document.Title
	if filename == "" {
		filename = "resume"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Failed to write PDF response: %v", err)
	}
}

// pathID parses the {id} path segment, writing a validation error on failure.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, validation.FieldErrors{{Field: "id", Message: "must be a valid UUID"}})
		return uuid.Nil, false
	}
	return id, true
}

// mustSession resolves the authenticated session or writes a 401.
func mustSession(w http.ResponseWriter, r *http.Request) *types.Session {
	session, err := middleware.GetSession(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	return &session
}
