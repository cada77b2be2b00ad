// Package generate turns partial resume fragments into prompts for an
// external completion capability and parses the free-text replies back into
// structured fields. Every call is all-or-nothing: a failed or empty reply
// surfaces as a GenerationError and no partial result is returned.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Caoophuongg/quickcv/internal/llm"
	"github.com/Caoophuongg/quickcv/internal/types"
	"github.com/Caoophuongg/quickcv/internal/validation"
)

// Service runs the five content generators against one LLM client.
type Service struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewService builds a generation service. An empty tier selects the standard
// model.
func NewService(client llm.Client, tier llm.ModelTier) *Service {
	if tier == "" {
		tier = llm.TierStandard
	}
	return &Service{client: client, tier: tier}
}

// SummaryRequest carries the profile data the summary is written from. All
// fields are optional; an empty request still produces a generic summary.
type SummaryRequest struct {
	JobTitle        string                 `json:"jobTitle"`
	WorkExperiences []types.WorkExperience `json:"workExperiences"`
	Educations      []types.Education      `json:"educations"`
	Skills          []string               `json:"skills"`
}

// EntryRequest is the input for the work-experience and education generators:
// a free-text description of at least 20 trimmed characters.
type EntryRequest struct {
	Description string `json:"description"`
}

func (r *EntryRequest) validate() error {
	r.Description = strings.TrimSpace(r.Description)
	if r.Description == "" {
		return validation.FieldErrors{{Field: "description", Message: "is required"}}
	}
	if len(r.Description) < 20 {
		return validation.FieldErrors{{Field: "description", Message: "must be at least 20 characters"}}
	}
	return nil
}

// SkillsRequest carries the profile context the skill list is derived from.
type SkillsRequest struct {
	JobTitle       string `json:"jobTitle"`
	WorkExperience string `json:"workExperience"`
	Education      string `json:"education"`
}

// GoalsRequest carries the profile context the career goals are derived from.
type GoalsRequest struct {
	JobTitle       string   `json:"jobTitle"`
	CurrentLevel   string   `json:"currentLevel"`
	WorkExperience string   `json:"workExperience"`
	Skills         []string `json:"skills"`
}

// Goals is the structured result of the goals generator.
type Goals struct {
	ShortTermGoals string `json:"shortTermGoals"`
	LongTermGoals  string `json:"longTermGoals"`
}

const summarySystemPrompt = `You are a job resume generator AI. Your task is to write a professional introduction summary for a resume given the user's provided data.
Only return the summary and do not include any other information in the response. Keep it concise and professional.`

const workExperienceSystemPrompt = `You are a job resume generator AI. Your task is to generate a single work experience entry based on the user input.
Your response must adhere to the following structure. You can omit fields if they can't be inferred from the provided data, but don't add any new ones.

Job title: <job title>
Company: <company name>
Start date: <format: YYYY-MM-DD> (only if provided)
End date: <format: YYYY-MM-DD> (only if provided)
Description: <an optimized description in bullet format, might be inferred from the job title>`

const educationSystemPrompt = `You are a job resume generator AI. Your task is to generate a single education entry based on the user input.
Your response must adhere to the following structure. You can omit fields if they can't be inferred from the provided data, but don't add any new ones.

Degree: <degree or certification>
Major: <major or specialization> (only if applicable)
School: <school or institution name>
Start date: <format: YYYY-MM-DD> (only if provided)
End date: <format: YYYY-MM-DD> (only if provided)`

const skillsSystemPrompt = `You are a job resume generator AI. Your task is to generate a list of 5-8 skills relevant to the user's profile.
The skills should be concise (1-3 words each) and directly relevant to the job title, work experience, or education provided.
Return ONLY a comma-separated list of skills, with no additional explanations, prefixes or styling.
For example: "JavaScript, React.js, TypeScript, REST APIs, UI/UX Design, Project Management".`

const goalsSystemPrompt = `Bạn là AI tư vấn nghề nghiệp. Hãy tạo mục tiêu nghề nghiệp ngắn hạn (1-2 năm) và dài hạn (3-5 năm) thật ngắn gọn, mỗi mục tiêu chỉ 1-2 câu, không lặp lại tiêu đề, không dùng markdown, không số thứ tự, không giải thích thêm. Chỉ trả về đúng 2 đoạn văn, mỗi đoạn cho một mục tiêu, phân biệt rõ ràng.
Cấu trúc trả về:
Short-term: <mục tiêu ngắn hạn>
Long-term: <mục tiêu dài hạn>`

// Summary writes a professional introduction summary from the given profile
// data and returns it as plain text.
func (s *Service) Summary(ctx context.Context, req SummaryRequest) (string, error) {
	var sb strings.Builder
	sb.WriteString("Please generate a professional resume summary from this data:\n\n")
	sb.WriteString("Job title: " + orNA(req.JobTitle) + "\n\n")
	sb.WriteString("Work experience:\n")
	for _, exp := range req.WorkExperiences {
		end := exp.EndDate
		if end == "" {
			end = "Present"
		}
		fmt.Fprintf(&sb, "Position: %s at %s from %s to %s\n\nDescription:\n%s\n\n",
			orNA(exp.Position), orNA(exp.Company), orNA(exp.StartDate), end, orNA(exp.Description))
	}
	sb.WriteString("Education:\n")
	for _, edu := range req.Educations {
		fmt.Fprintf(&sb, "Degree: %s at %s from %s to %s\n\n",
			orNA(edu.Degree), orNA(edu.School), orNA(edu.StartDate), orNA(edu.EndDate))
	}
	sb.WriteString("Skills:\n" + strings.Join(req.Skills, ", "))

	langInput := req.JobTitle + " " + strings.Join(req.Skills, " ")
	for _, exp := range req.WorkExperiences {
		langInput += " " + exp.Position + " " + exp.Company + " " + exp.Description
	}

	reply, err := s.complete(ctx, "summary", summarySystemPrompt, sb.String(), langInput)
	if err != nil {
		return "", err
	}
	return reply, nil
}

// WorkExperience generates a single structured work experience entry from a
// free-text description.
func (s *Service) WorkExperience(ctx context.Context, req EntryRequest) (types.WorkExperience, error) {
	if err := req.validate(); err != nil {
		return types.WorkExperience{}, err
	}

	userMessage := "Please provide a work experience entry from this description:\n" + req.Description
	reply, err := s.complete(ctx, "work experience", workExperienceSystemPrompt, userMessage, req.Description)
	if err != nil {
		return types.WorkExperience{}, err
	}

	values, missing := extract(workExperienceFields, reply)
	if len(values) == 0 {
		return types.WorkExperience{}, &GenerationError{
			Generator: "work experience",
			Cause:     fmt.Errorf("reply missing labels: %s", strings.Join(missing, ", ")),
		}
	}
	return types.WorkExperience{
		Position:    values["Job title"],
		Company:     values["Company"],
		Description: values["Description"],
		StartDate:   values["Start date"],
		EndDate:     values["End date"],
	}, nil
}

// Education generates a single structured education entry from a free-text
// description.
func (s *Service) Education(ctx context.Context, req EntryRequest) (types.Education, error) {
	if err := req.validate(); err != nil {
		return types.Education{}, err
	}

	userMessage := "Please provide an education entry from this description:\n" + req.Description
	reply, err := s.complete(ctx, "education", educationSystemPrompt, userMessage, req.Description)
	if err != nil {
		return types.Education{}, err
	}

	values, missing := extract(educationFields, reply)
	if len(values) == 0 {
		return types.Education{}, &GenerationError{
			Generator: "education",
			Cause:     fmt.Errorf("reply missing labels: %s", strings.Join(missing, ", ")),
		}
	}
	return types.Education{
		Degree:    values["Degree"],
		Major:     values["Major"],
		School:    values["School"],
		StartDate: values["Start date"],
		EndDate:   values["End date"],
	}, nil
}

// Skills generates a flat skill list from the profile context. The list is
// split, trimmed and freed of empties but not yet merged; use MergeSkills to
// combine it with a document's existing skills.
func (s *Service) Skills(ctx context.Context, req SkillsRequest) ([]string, error) {
	var sb strings.Builder
	sb.WriteString("Please generate relevant skills based on this information:\n")
	if req.JobTitle != "" {
		sb.WriteString("Job Title: " + req.JobTitle + "\n")
	}
	if req.WorkExperience != "" {
		sb.WriteString("Work Experience: " + req.WorkExperience + "\n")
	}
	if req.Education != "" {
		sb.WriteString("Education: " + req.Education + "\n")
	}

	langInput := firstNonEmpty(req.JobTitle, req.WorkExperience, req.Education)
	reply, err := s.complete(ctx, "skills", skillsSystemPrompt, sb.String(), langInput)
	if err != nil {
		return nil, err
	}

	skills := splitSkills(reply)
	if len(skills) == 0 {
		return nil, &GenerationError{Generator: "skills", Cause: errors.New("reply contained no skills")}
	}
	return skills, nil
}

// MergeSkills appends generated skills to the existing list and removes
// duplicates, keeping the first occurrence of each.
func MergeSkills(existing, generated []string) []string {
	return types.NormalizeSkills(append(append([]string{}, existing...), generated...))
}

// Goals generates short-term and long-term career goals. When the reply lacks
// the expected labels, the first two non-empty paragraphs are assigned
// positionally; a single recoverable paragraph becomes the short-term goal.
func (s *Service) Goals(ctx context.Context, req GoalsRequest) (Goals, error) {
	var sb strings.Builder
	sb.WriteString("Hãy tạo mục tiêu nghề nghiệp dựa trên thông tin sau:\n")
	if req.JobTitle != "" {
		sb.WriteString("Vị trí: " + req.JobTitle + "\n")
	}
	if req.CurrentLevel != "" {
		sb.WriteString("Cấp bậc: " + req.CurrentLevel + "\n")
	}
	if req.WorkExperience != "" {
		sb.WriteString("Kinh nghiệm: " + req.WorkExperience + "\n")
	}
	if len(req.Skills) > 0 {
		sb.WriteString("Kỹ năng: " + strings.Join(req.Skills, ", ") + "\n")
	}

	langInput := firstNonEmpty(req.JobTitle, req.WorkExperience, req.CurrentLevel)
	reply, err := s.complete(ctx, "goals", goalsSystemPrompt, sb.String(), langInput)
	if err != nil {
		return Goals{}, err
	}

	values, missing := extract(goalsFields, reply)
	goals := Goals{
		ShortTermGoals: values["Short-term"],
		LongTermGoals:  values["Long-term"],
	}
	if len(missing) > 0 {
		parts := splitParagraphs(reply)
		switch {
		case len(parts) >= 2:
			goals.ShortTermGoals = parts[0]
			goals.LongTermGoals = parts[1]
		default:
			goals.ShortTermGoals = strings.TrimSpace(reply)
			goals.LongTermGoals = ""
		}
	}
	return goals, nil
}

// complete runs one chat completion with the language hint derived from the
// user's own input, and normalizes failure into GenerationError.
func (s *Service) complete(ctx context.Context, generator, systemPrompt, userMessage, langInput string) (string, error) {
	lang := llm.DetectLanguage(langInput)
	messages := []llm.Message{
		llm.SystemMessage(systemPrompt),
		llm.SystemMessage(lang.Instruction()),
		llm.UserMessage(userMessage),
	}

	reply, err := s.client.ChatCompletion(ctx, messages, s.tier)
	if err != nil {
		return "", &GenerationError{Generator: generator, Cause: err}
	}
	reply = llm.CleanCodeBlock(reply)
	if reply == "" {
		return "", &GenerationError{Generator: generator, Cause: errors.New("empty reply")}
	}
	return reply, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
