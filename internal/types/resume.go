// Package types defines the core domain types shared across the application.
package types

import (
	"fmt"

	"github.com/google/uuid"
)

// BorderStyle controls the photo frame treatment in rendered resumes.
type BorderStyle string

// Supported border styles. The set is closed; validation rejects anything else.
const (
	BorderSquare   BorderStyle = "square"
	BorderCircle   BorderStyle = "circle"
	BorderSquircle BorderStyle = "squircle"
)

// Valid reports whether b is one of the supported border styles.
func (b BorderStyle) Valid() bool {
	switch b {
	case BorderSquare, BorderCircle, BorderSquircle:
		return true
	}
	return false
}

// TemplateType selects which renderer interprets a resume document.
// It is a closed enumeration: every value must resolve to a catalog entry.
type TemplateType string

// The five known templates. Template0 is the blank default.
const (
	Template0 TemplateType = "template_0"
	Template1 TemplateType = "template_1"
	Template2 TemplateType = "template_2"
	Template3 TemplateType = "template_3"
	Template4 TemplateType = "template_4"
)

// AllTemplateTypes returns the template identifiers in display order.
func AllTemplateTypes() []TemplateType {
	return []TemplateType{Template0, Template1, Template2, Template3, Template4}
}

// Valid reports whether t is a known template identifier.
func (t TemplateType) Valid() bool {
	switch t {
	case Template0, Template1, Template2, Template3, Template4:
		return true
	}
	return false
}

// WorkExperience is a single employment entry. Every field is optional;
// partial entries persist as-is. An empty EndDate means the position is
// current/ongoing.
type WorkExperience struct {
	Position    string `json:"position,omitempty"`
	Company     string `json:"company,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is a single education entry. Same date convention as WorkExperience.
type Education struct {
	Degree    string `json:"degree,omitempty"`
	Major     string `json:"major,omitempty"`
	School    string `json:"school,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Project is a personal or professional project entry.
type Project struct {
	Name        string   `json:"name,omitempty"`
	Role        string   `json:"role,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Description string   `json:"description,omitempty"`
	TechStack   []string `json:"techStack,omitempty"`
}

// Hobby is a named hobby with an optional description.
type Hobby struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ResumeDocument is the canonical in-memory representation of a resume.
// It is composed from the validated form sections plus presentation fields.
type ResumeDocument struct {
	ID *uuid.UUID `json:"id,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Photo     Photo  `json:"photo,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`

	Summary        string `json:"summary,omitempty"`
	ShortTermGoals string `json:"shortTermGoals,omitempty"`
	LongTermGoals  string `json:"longTermGoals,omitempty"`

	WorkExperiences []WorkExperience `json:"workExperiences,omitempty"`
	Educations      []Education      `json:"educations,omitempty"`
	Skills          []string         `json:"skills,omitempty"`
	Projects        []Project        `json:"projects,omitempty"`
	Hobbies         []Hobby          `json:"hobbies,omitempty"`

	ColorHex     string       `json:"colorHex,omitempty"`
	BorderStyle  BorderStyle  `json:"borderStyle,omitempty"`
	TemplateType TemplateType `json:"templateType,omitempty"`
}

// Clone returns a deep copy of the document. Collection slices are copied so
// mutating the clone never touches the original.
func (d *ResumeDocument) Clone() *ResumeDocument {
	c := *d
	if d.ID != nil {
		id := *d.ID
		c.ID = &id
	}
	c.WorkExperiences = append([]WorkExperience(nil), d.WorkExperiences...)
	c.Educations = append([]Education(nil), d.Educations...)
	c.Skills = append([]string(nil), d.Skills...)
	c.Hobbies = append([]Hobby(nil), d.Hobbies...)
	c.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		p.TechStack = append([]string(nil), p.TechStack...)
		c.Projects[i] = p
	}
	return &c
}

// CheckIntegrity verifies invariants that must hold before a document is
// persisted: the template must be known and a local photo must have been
// resolved to a remote reference.
func (d *ResumeDocument) CheckIntegrity() error {
	if d.TemplateType != "" && !d.TemplateType.Valid() {
		return fmt.Errorf("unknown template type: %q", d.TemplateType)
	}
	if d.BorderStyle != "" && !d.BorderStyle.Valid() {
		return fmt.Errorf("unknown border style: %q", d.BorderStyle)
	}
	if d.Photo.Kind() == PhotoLocal {
		return fmt.Errorf("photo must be uploaded before the document is saved")
	}
	return nil
}
