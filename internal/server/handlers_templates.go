package server

import (
	"net/http"

	"github.com/Caoophuongg/quickcv/internal/templates"
	"github.com/Caoophuongg/quickcv/internal/types"
)

// TemplateEntry is one catalog entry as exposed to clients. The sample
// document is included so editors can preview before creating.
type TemplateEntry struct {
	ID        types.TemplateType   `json:"id"`
	Name      string               `json:"name"`
	Thumbnail string               `json:"thumbnail"`
	Sample    types.ResumeDocument `json:"sample"`
}

// handleListTemplates handles GET /api/templates: the fixed catalog in
// display order with the blank default first.
func handleListTemplates(w http.ResponseWriter, r *http.Request) {
	list := templates.List()
	entries := make([]TemplateEntry, 0, len(list))
	for _, t := range list {
		entries = append(entries, TemplateEntry{
			ID:        t.ID,
			Name:      t.Name,
			Thumbnail: t.Thumbnail,
			Sample:    *t.Clone(),
		})
	}
	writeJSON(w, http.StatusOK, map[string][]TemplateEntry{"templates": entries})
}
