package templates

import (
	"testing"

	"github.com/Caoophuongg/quickcv/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByID_EveryTemplateTypeHasExactlyOneEntry(t *testing.T) {
	for _, tt := range types.AllTemplateTypes() {
		entry, ok := ByID(tt)
		require.True(t, ok, string(tt))
		assert.Equal(t, tt, entry.ID)
		assert.Equal(t, tt, entry.Sample.TemplateType)
	}
}

func TestByID_UnknownTemplate(t *testing.T) {
	_, ok := ByID("template_9")
	assert.False(t, ok)
}

func TestList_BlankPinnedFirst(t *testing.T) {
	list := List()
	require.Len(t, list, 5)
	assert.Equal(t, types.Template0, list[0].ID)
}

func TestClone_DoesNotMutateCatalogSample(t *testing.T) {
	entry, ok := ByID(types.Template1)
	require.True(t, ok)

	doc := entry.Clone()
	doc.Skills[0] = "mutated"
	doc.WorkExperiences[0].Position = "mutated"
	doc.Title = "mutated"

	fresh, _ := ByID(types.Template1)
	assert.Equal(t, "HTML", fresh.Sample.Skills[0])
	assert.Equal(t, "Senior Frontend Developer", fresh.Sample.WorkExperiences[0].Position)
	assert.Equal(t, "CV Chuyên nghiệp", fresh.Sample.Title)
}

func TestSamples_PassValidationRoundTrip(t *testing.T) {
	for _, entry := range List() {
		doc := entry.Clone()
		assert.NoError(t, doc.CheckIntegrity(), string(entry.ID))
	}
}
