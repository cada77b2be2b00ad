package generate

import (
	"regexp"
	"strings"
)

// Replies follow a labeled-line convention ("Degree: ...", "Start date:
// YYYY-MM-DD"). Each generator declares its labels in a table; extraction
// returns the labels that were found plus the required ones that were not.

// field is one labeled line of a structured reply.
type field struct {
	label    string
	pattern  *regexp.Regexp
	required bool
}

// lineField matches "<label>: <rest of line>".
func lineField(label string, required bool) field {
	return field{
		label:    label,
		pattern:  regexp.MustCompile(label + `:\s*(.*)`),
		required: required,
	}
}

// dateField captures only a YYYY-MM-DD value, so hedging prose after the
// label is not mistaken for a date.
func dateField(label string) field {
	return field{
		label:   label,
		pattern: regexp.MustCompile(label + `:\s*(\d{4}-\d{2}-\d{2})`),
	}
}

// blockField captures everything from the label to the stop label, or to the
// end of the reply when stop is empty.
func blockField(label string, required bool, stop string) field {
	expr := `(?s)` + label + `:\s*(.*)`
	if stop != "" {
		expr = `(?s)` + label + `:\s*(.*?)(?:` + stop + `:|$)`
	}
	return field{
		label:    label,
		pattern:  regexp.MustCompile(expr),
		required: required,
	}
}

var (
	workExperienceFields = []field{
		lineField("Job title", true),
		lineField("Company", true),
		dateField("Start date"),
		dateField("End date"),
		blockField("Description", false, ""),
	}

	educationFields = []field{
		lineField("Degree", true),
		lineField("Major", false),
		lineField("School", true),
		dateField("Start date"),
		dateField("End date"),
	}

	goalsFields = []field{
		blockField("Short-term", true, "Long-term"),
		blockField("Long-term", true, ""),
	}
)

// extract applies each field's pattern to the reply. It returns the trimmed
// values keyed by label, and the required labels that were absent. A missing
// optional label simply yields no entry, never an error.
func extract(fields []field, reply string) (map[string]string, []string) {
	values := make(map[string]string, len(fields))
	var missing []string
	for _, f := range fields {
		var v string
		if m := f.pattern.FindStringSubmatch(reply); m != nil {
			v = strings.TrimSpace(m[1])
		}
		if v == "" {
			if f.required {
				missing = append(missing, f.label)
			}
			continue
		}
		values[f.label] = v
	}
	return values, missing
}

// splitSkills turns a comma-separated reply into a flat list: split, trim,
// drop empties. Deduplication against existing skills happens at merge time.
func splitSkills(text string) []string {
	var skills []string
	for _, part := range strings.Split(text, ",") {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// splitParagraphs returns the trimmed non-empty lines of the reply, used as
// the positional fallback when the goals labels are missing.
func splitParagraphs(text string) []string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}
