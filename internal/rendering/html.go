package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/Caoophuongg/quickcv/internal/types"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// htmlRenderer renders one template variant from an embedded HTML template.
// All five variants are instances of this type; they differ only in layout
// markup and default accent color.
type htmlRenderer struct {
	templateType types.TemplateType
	defaultColor string
	tmpl         *template.Template
}

var (
	template0 = mustRenderer(types.Template0, "#000000")
	template1 = mustRenderer(types.Template1, "#7c3aed")
	template2 = mustRenderer(types.Template2, "#a21caf")
	template3 = mustRenderer(types.Template3, "#000000")
	template4 = mustRenderer(types.Template4, "#1e7b77")
)

func mustRenderer(tt types.TemplateType, defaultColor string) *htmlRenderer {
	name := string(tt) + ".gohtml"
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"monthYear":      MonthYear,
		"year":           Year,
		"monthYearRange": MonthYearRange,
		"yearRange":      YearRange,
	}).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", name, err))
	}
	return &htmlRenderer{templateType: tt, defaultColor: defaultColor, tmpl: tmpl}
}

// TemplateType returns the template identifier this renderer serves.
func (r *htmlRenderer) TemplateType() types.TemplateType {
	return r.templateType
}

// Render lays the document out for the given available width. The internal
// layout is authored against ReferenceWidth and scaled uniformly, preserving
// the 210:297 page aspect at every width.
func (r *htmlRenderer) Render(doc *types.ResumeDocument, width float64) (*Document, error) {
	if width <= 0 {
		width = ReferenceWidth
	}
	height := width * AspectHeight / AspectWidth
	scale := width / ReferenceWidth

	var buf bytes.Buffer
	v := buildView(doc, r.defaultColor, width, height, scale)
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return nil, &TemplateError{Message: "failed to execute " + string(r.templateType), Cause: err}
	}
	return &Document{
		HTML:   buf.String(),
		Width:  width,
		Height: height,
		Scale:  scale,
	}, nil
}
