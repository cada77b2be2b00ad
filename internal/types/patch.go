package types

import "strings"

// Patch is a typed partial update produced by one editor form section. Each
// section owns a disjoint subset of ResumeDocument fields and overwrites
// exactly that subset on Apply. Concurrent saves follow last-writer-wins at
// patch granularity; there is no field-level conflict resolution.
type Patch interface {
	Apply(doc *ResumeDocument)
}

// GeneralInfoPatch owns the title and description fields.
type GeneralInfoPatch struct {
	Title       string
	Description string
}

func (p GeneralInfoPatch) Apply(doc *ResumeDocument) {
	doc.Title = strings.TrimSpace(p.Title)
	doc.Description = strings.TrimSpace(p.Description)
}

// PersonalInfoPatch owns the identity/contact block. Photo is a pointer so a
// contact-only edit leaves the photo untouched.
type PersonalInfoPatch struct {
	Photo     *Photo
	FirstName string
	LastName  string
	JobTitle  string
	City      string
	Country   string
	Phone     string
	Email     string
}

func (p PersonalInfoPatch) Apply(doc *ResumeDocument) {
	if p.Photo != nil {
		doc.Photo = *p.Photo
	}
	doc.FirstName = strings.TrimSpace(p.FirstName)
	doc.LastName = strings.TrimSpace(p.LastName)
	doc.JobTitle = strings.TrimSpace(p.JobTitle)
	doc.City = strings.TrimSpace(p.City)
	doc.Country = strings.TrimSpace(p.Country)
	doc.Phone = strings.TrimSpace(p.Phone)
	doc.Email = strings.TrimSpace(p.Email)
}

// SummaryPatch owns the summary field.
type SummaryPatch struct {
	Summary string
}

func (p SummaryPatch) Apply(doc *ResumeDocument) {
	doc.Summary = strings.TrimSpace(p.Summary)
}

// GoalsPatch owns the short- and long-term goal fields.
type GoalsPatch struct {
	ShortTermGoals string
	LongTermGoals  string
}

func (p GoalsPatch) Apply(doc *ResumeDocument) {
	doc.ShortTermGoals = strings.TrimSpace(p.ShortTermGoals)
	doc.LongTermGoals = strings.TrimSpace(p.LongTermGoals)
}

// WorkExperiencesPatch replaces the work experience collection. Order is
// user-controlled and preserved as given.
type WorkExperiencesPatch struct {
	WorkExperiences []WorkExperience
}

func (p WorkExperiencesPatch) Apply(doc *ResumeDocument) {
	doc.WorkExperiences = append([]WorkExperience(nil), p.WorkExperiences...)
}

// EducationsPatch replaces the education collection.
type EducationsPatch struct {
	Educations []Education
}

func (p EducationsPatch) Apply(doc *ResumeDocument) {
	doc.Educations = append([]Education(nil), p.Educations...)
}

// SkillsPatch replaces the skill list. Entries are normalized on apply so
// duplicates never reach persistence.
type SkillsPatch struct {
	Skills []string
}

func (p SkillsPatch) Apply(doc *ResumeDocument) {
	doc.Skills = NormalizeSkills(p.Skills)
}

// ProjectsPatch replaces the project collection.
type ProjectsPatch struct {
	Projects []Project
}

func (p ProjectsPatch) Apply(doc *ResumeDocument) {
	doc.Projects = make([]Project, len(p.Projects))
	for i, proj := range p.Projects {
		proj.TechStack = append([]string(nil), proj.TechStack...)
		doc.Projects[i] = proj
	}
}

// HobbiesPatch replaces the hobby collection.
type HobbiesPatch struct {
	Hobbies []Hobby
}

func (p HobbiesPatch) Apply(doc *ResumeDocument) {
	doc.Hobbies = append([]Hobby(nil), p.Hobbies...)
}

// AppearancePatch owns the presentation fields.
type AppearancePatch struct {
	ColorHex     string
	BorderStyle  BorderStyle
	TemplateType TemplateType
}

func (p AppearancePatch) Apply(doc *ResumeDocument) {
	doc.ColorHex = p.ColorHex
	doc.BorderStyle = p.BorderStyle
	doc.TemplateType = p.TemplateType
}

// NormalizeSkills trims entries, drops empties and removes duplicates while
// preserving first-occurrence order. Comparison is case-sensitive. The
// operation is idempotent.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
