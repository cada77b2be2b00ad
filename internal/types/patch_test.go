package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonalInfoPatch_LeavesPhotoWhenNil(t *testing.T) {
	doc := &ResumeDocument{Photo: RemotePhoto("https://blob.example.com/p.jpg")}

	PersonalInfoPatch{FirstName: " Trần ", City: "Hồ Chí Minh"}.Apply(doc)

	assert.Equal(t, "Trần", doc.FirstName)
	assert.Equal(t, "Hồ Chí Minh", doc.City)
	assert.Equal(t, PhotoRemote, doc.Photo.Kind())
}

func TestPersonalInfoPatch_ReplacesPhoto(t *testing.T) {
	doc := &ResumeDocument{Photo: RemotePhoto("https://blob.example.com/old.jpg")}
	empty := NoPhoto()

	PersonalInfoPatch{Photo: &empty}.Apply(doc)

	assert.True(t, doc.Photo.IsEmpty())
}

func TestSectionPatches_OwnDisjointFields(t *testing.T) {
	doc := &ResumeDocument{
		Title:   "keep",
		Summary: "old summary",
		Skills:  []string{"Go"},
	}

	SummaryPatch{Summary: "new summary"}.Apply(doc)
	assert.Equal(t, "new summary", doc.Summary)
	assert.Equal(t, "keep", doc.Title)
	assert.Equal(t, []string{"Go"}, doc.Skills)

	GoalsPatch{ShortTermGoals: "lead", LongTermGoals: "principal"}.Apply(doc)
	assert.Equal(t, "new summary", doc.Summary)
	assert.Equal(t, "lead", doc.ShortTermGoals)
}

func TestSkillsPatch_NormalizesOnApply(t *testing.T) {
	doc := &ResumeDocument{}
	SkillsPatch{Skills: []string{" Go ", "Go", "", "SQL"}}.Apply(doc)
	assert.Equal(t, []string{"Go", "SQL"}, doc.Skills)
}

func TestCollectionPatches_CopyInput(t *testing.T) {
	in := []WorkExperience{{Position: "Dev"}}
	doc := &ResumeDocument{}
	WorkExperiencesPatch{WorkExperiences: in}.Apply(doc)

	in[0].Position = "mutated"
	assert.Equal(t, "Dev", doc.WorkExperiences[0].Position)
}

func TestLastWriterWins(t *testing.T) {
	doc := &ResumeDocument{}
	SummaryPatch{Summary: "first"}.Apply(doc)
	SummaryPatch{Summary: "second"}.Apply(doc)
	assert.Equal(t, "second", doc.Summary)
}

func TestAppearancePatch(t *testing.T) {
	doc := &ResumeDocument{}
	AppearancePatch{ColorHex: "#1e7b77", BorderStyle: BorderSquircle, TemplateType: Template4}.Apply(doc)
	assert.Equal(t, "#1e7b77", doc.ColorHex)
	assert.Equal(t, BorderSquircle, doc.BorderStyle)
	assert.Equal(t, Template4, doc.TemplateType)
}
