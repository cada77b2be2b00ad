package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Caoophuongg/quickcv/internal/types"
)

var (
	colorHexRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	isoDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// OptionalString normalizes an optional form value: the result is either a
// non-empty trimmed string or "", where "" means the field is absent. A
// present-but-blank value does not exist in this model.
func OptionalString(s string) string {
	return strings.TrimSpace(s)
}

// optionalDate validates an optional ISO-date-like string in place.
func optionalDate(fe FieldErrors, field, value string) FieldErrors {
	if value != "" && !isoDateRe.MatchString(value) {
		return fe.add(field, "must be an ISO date (YYYY-MM-DD)")
	}
	return fe
}

// GeneralInfo validates and normalizes the title/description section.
func GeneralInfo(title, description string) (string, string, error) {
	return OptionalString(title), OptionalString(description), nil
}

// WorkExperiences validates the work experience collection. Entries are
// independently optional per field; no entry must be complete to be kept.
func WorkExperiences(entries []types.WorkExperience) ([]types.WorkExperience, error) {
	var fe FieldErrors
	out := make([]types.WorkExperience, len(entries))
	for i, e := range entries {
		e.Position = OptionalString(e.Position)
		e.Company = OptionalString(e.Company)
		e.StartDate = OptionalString(e.StartDate)
		e.EndDate = OptionalString(e.EndDate)
		e.Description = OptionalString(e.Description)
		fe = optionalDate(fe, field("workExperiences", i, "startDate"), e.StartDate)
		fe = optionalDate(fe, field("workExperiences", i, "endDate"), e.EndDate)
		out[i] = e
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// Educations validates the education collection.
func Educations(entries []types.Education) ([]types.Education, error) {
	var fe FieldErrors
	out := make([]types.Education, len(entries))
	for i, e := range entries {
		e.Degree = OptionalString(e.Degree)
		e.Major = OptionalString(e.Major)
		e.School = OptionalString(e.School)
		e.StartDate = OptionalString(e.StartDate)
		e.EndDate = OptionalString(e.EndDate)
		fe = optionalDate(fe, field("educations", i, "startDate"), e.StartDate)
		fe = optionalDate(fe, field("educations", i, "endDate"), e.EndDate)
		out[i] = e
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// Skills validates and normalizes the skill list: trim, drop empties, dedupe.
func Skills(skills []string) ([]string, error) {
	return types.NormalizeSkills(skills), nil
}

// Projects validates the project collection.
func Projects(entries []types.Project) ([]types.Project, error) {
	var fe FieldErrors
	out := make([]types.Project, len(entries))
	for i, p := range entries {
		p.Name = OptionalString(p.Name)
		p.Role = OptionalString(p.Role)
		p.StartDate = OptionalString(p.StartDate)
		p.EndDate = OptionalString(p.EndDate)
		p.Description = OptionalString(p.Description)
		p.TechStack = types.NormalizeSkills(p.TechStack)
		fe = optionalDate(fe, field("projects", i, "startDate"), p.StartDate)
		fe = optionalDate(fe, field("projects", i, "endDate"), p.EndDate)
		out[i] = p
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// Hobbies validates the hobby collection.
func Hobbies(entries []types.Hobby) ([]types.Hobby, error) {
	out := make([]types.Hobby, len(entries))
	for i, h := range entries {
		h.Name = OptionalString(h.Name)
		h.Description = OptionalString(h.Description)
		out[i] = h
	}
	return out, nil
}

// Resume validates a full resume document and returns a normalized copy.
// Sections are validated independently; the combined report addresses each
// violation by its full field path. A fully schema-conformant document round
// trips unchanged.
func Resume(doc *types.ResumeDocument) (*types.ResumeDocument, error) {
	var fe FieldErrors
	out := doc.Clone()

	out.Title = OptionalString(out.Title)
	out.Description = OptionalString(out.Description)
	out.FirstName = OptionalString(out.FirstName)
	out.LastName = OptionalString(out.LastName)
	out.JobTitle = OptionalString(out.JobTitle)
	out.City = OptionalString(out.City)
	out.Country = OptionalString(out.Country)
	out.Phone = OptionalString(out.Phone)
	out.Email = OptionalString(out.Email)
	out.Summary = OptionalString(out.Summary)
	out.ShortTermGoals = OptionalString(out.ShortTermGoals)
	out.LongTermGoals = OptionalString(out.LongTermGoals)

	if err := Photo(out.Photo); err != nil {
		if sub, ok := err.(FieldErrors); ok {
			fe = append(fe, sub...)
		} else {
			fe = fe.add("photo", err.Error())
		}
	}

	if we, err := WorkExperiences(out.WorkExperiences); err != nil {
		fe = append(fe, err.(FieldErrors)...)
	} else {
		out.WorkExperiences = we
	}
	if ed, err := Educations(out.Educations); err != nil {
		fe = append(fe, err.(FieldErrors)...)
	} else {
		out.Educations = ed
	}
	out.Skills = types.NormalizeSkills(out.Skills)
	if pr, err := Projects(out.Projects); err != nil {
		fe = append(fe, err.(FieldErrors)...)
	} else {
		out.Projects = pr
	}
	out.Hobbies, _ = Hobbies(out.Hobbies)

	if out.ColorHex != "" && !colorHexRe.MatchString(out.ColorHex) {
		fe = fe.add("colorHex", "must be a 6-hex-digit color like #7c3aed")
	}
	if out.BorderStyle != "" && !out.BorderStyle.Valid() {
		fe = fe.add("borderStyle", "must be one of square, circle, squircle")
	}
	if out.TemplateType != "" && !out.TemplateType.Valid() {
		fe = fe.add("templateType", "unknown template")
	}

	if err := fe.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func field(section string, index int, name string) string {
	return section + "[" + strconv.Itoa(index) + "]." + name
}
