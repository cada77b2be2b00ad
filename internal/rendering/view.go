package rendering

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/Caoophuongg/quickcv/internal/types"
)

// view is the data handed to a template. It pairs the document with derived
// presentation values so the templates stay free of logic.
type view struct {
	Doc      *types.ResumeDocument
	FullName string
	Location string
	PhotoSrc template.URL
	Color    string
	Radius   template.CSS
	Width    float64
	Height   float64
	Scale    float64
}

func buildView(doc *types.ResumeDocument, defaultColor string, width, height, scale float64) *view {
	color := doc.ColorHex
	if color == "" {
		color = defaultColor
	}
	return &view{
		Doc:      doc,
		FullName: strings.TrimSpace(doc.FirstName + " " + doc.LastName),
		Location: location(doc),
		PhotoSrc: photoSrc(doc.Photo),
		Color:    color,
		Radius:   borderRadius(doc.BorderStyle),
		Width:    width,
		Height:   height,
		Scale:    scale,
	}
}

func location(doc *types.ResumeDocument) string {
	switch {
	case doc.City != "" && doc.Country != "":
		return doc.City + ", " + doc.Country
	case doc.City != "":
		return doc.City
	default:
		return doc.Country
	}
}

// photoSrc resolves the photo variant to an embeddable source: remote photos
// by URL, local photos inlined as a data URI so unsaved edits still preview,
// and empty photos to "" so no image element is rendered at all.
func photoSrc(p types.Photo) template.URL {
	switch p.Kind() {
	case types.PhotoRemote:
		return template.URL(p.URL())
	case types.PhotoLocal:
		return template.URL(fmt.Sprintf("data:%s;base64,%s",
			p.MIMEType(), base64.StdEncoding.EncodeToString(p.Bytes())))
	default:
		return ""
	}
}

// borderRadius maps the border style to the photo frame treatment. The style
// affects only the photo frame; everything else is owned by the template.
func borderRadius(b types.BorderStyle) template.CSS {
	switch b {
	case types.BorderCircle:
		return "9999px"
	case types.BorderSquircle:
		return "20%"
	default:
		return "0"
	}
}
