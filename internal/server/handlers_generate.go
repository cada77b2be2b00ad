package server

import (
	"net/http"

	"github.com/Caoophuongg/quickcv/internal/generate"
)

// GenerateHandler exposes the five AI content generators. Every endpoint
// requires an authenticated session before any model call is made.
type GenerateHandler struct {
	service *generate.Service
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(service *generate.Service) *GenerateHandler {
	return &GenerateHandler{service: service}
}

// Summary handles POST /api/generate/summary.
func (h *GenerateHandler) Summary(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}

	var req generate.SummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// WorkExperience handles POST /api/generate/work-experience.
func (h *GenerateHandler) WorkExperience(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}

	var req generate.EntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.service.WorkExperience(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Education handles POST /api/generate/education.
func (h *GenerateHandler) Education(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}

	var req generate.EntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.service.Education(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// GenerateSkillsRequest is the skills endpoint input. ExistingSkills are kept
// and deduplicated against the generated list.
type GenerateSkillsRequest struct {
	generate.SkillsRequest
	ExistingSkills []string `json:"existingSkills"`
}

// Skills handles POST /api/generate/skills. The response is the merged skill
// list: existing entries first, then new generated ones.
func (h *GenerateHandler) Skills(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}

	var req GenerateSkillsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	generated, err := h.service.Skills(r.Context(), req.SkillsRequest)
	if err != nil {
		writeError(w, err)
		return
	}

	merged := generate.MergeSkills(req.ExistingSkills, generated)
	writeJSON(w, http.StatusOK, map[string][]string{"skills": merged})
}

// Goals handles POST /api/generate/goals.
func (h *GenerateHandler) Goals(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}

	var req generate.GoalsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	goals, err := h.service.Goals(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}
