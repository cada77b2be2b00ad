// Package rendering turns a resume document into a laid-out visual document.
// Five interchangeable renderers share one input contract; selecting a
// different template requires no change at the call site.
package rendering

import (
	"github.com/Caoophuongg/quickcv/internal/types"
)

// ReferenceWidth is the layout width the templates are authored against,
// roughly an A4 page at 96 DPI.
const ReferenceWidth = 794.0

// A4 aspect ratio of the whole document.
const (
	AspectWidth  = 210.0
	AspectHeight = 297.0
)

// Document is a rendered resume: a detached printable HTML document plus the
// geometry it was laid out for. It carries no interaction state, so it can be
// captured for export independent of any on-screen view.
type Document struct {
	HTML   string
	Width  float64
	Height float64
	Scale  float64
}

// Renderer is the shared contract of all template renderers. Render is pure:
// same document and width always produce the same output, and every field of
// the document may be absent.
type Renderer interface {
	TemplateType() types.TemplateType
	Render(doc *types.ResumeDocument, width float64) (*Document, error)
}

// ForTemplate maps a template identifier to its renderer. The mapping is
// exhaustive over the closed template enumeration; an unknown identifier is
// a data-integrity error surfaced as UnknownTemplateError.
func ForTemplate(tt types.TemplateType) (Renderer, error) {
	switch tt {
	case types.Template0, "":
		return template0, nil
	case types.Template1:
		return template1, nil
	case types.Template2:
		return template2, nil
	case types.Template3:
		return template3, nil
	case types.Template4:
		return template4, nil
	default:
		return nil, &UnknownTemplateError{TemplateType: tt}
	}
}

// Render renders a document with the renderer its templateType selects.
func Render(doc *types.ResumeDocument, width float64) (*Document, error) {
	r, err := ForTemplate(doc.TemplateType)
	if err != nil {
		return nil, err
	}
	return r.Render(doc, width)
}
