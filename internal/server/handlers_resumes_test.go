package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caoophuongg/quickcv/internal/db"
	"github.com/Caoophuongg/quickcv/internal/storage"
	"github.com/Caoophuongg/quickcv/internal/types"
)

func newTestResumeHandler(t *testing.T) (*ResumeHandler, *fakeResumeStore, *storage.Store) {
	t.Helper()
	resumes := newFakeResumeStore()
	uploads := testUploadStore(t)
	return NewResumeHandler(resumes, uploads), resumes, uploads
}

func userSession() types.Session {
	return types.Session{UserID: uuid.New(), Role: types.RoleUser}
}

func TestCreateResume_FromTemplateSample(t *testing.T) {
	handler, _, _ := newTestResumeHandler(t)
	session := userSession()

	req := withSession(jsonRequest(t, "POST", "/api/resumes", CreateResumeRequest{
		TemplateType: types.Template2,
		Title:        "CV ứng tuyển",
	}), session)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resume db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resume))
	assert.Equal(t, "CV ứng tuyển", resume.Document.Title)
	assert.Equal(t, types.Template2, resume.Document.TemplateType)
	assert.Equal(t, session.UserID, resume.UserID)
}

func TestCreateResume_UnknownTemplate(t *testing.T) {
	handler, _, _ := newTestResumeHandler(t)

	req := withSession(jsonRequest(t, "POST", "/api/resumes", CreateResumeRequest{
		TemplateType: "template_9",
	}), userSession())
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateResume_WithDocument(t *testing.T) {
	handler, _, _ := newTestResumeHandler(t)

	doc := &types.ResumeDocument{
		FirstName:    "  Văn A ",
		LastName:     "Nguyễn",
		JobTitle:     "Kỹ sư phần mềm",
		Skills:       []string{"Go", " Go ", "SQL", ""},
		TemplateType: types.Template1,
	}
	req := withSession(jsonRequest(t, "POST", "/api/resumes", CreateResumeRequest{Document: doc}), userSession())
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resume db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resume))
	assert.Equal(t, "Văn A", resume.Document.FirstName)
	assert.Equal(t, []string{"Go", "SQL"}, resume.Document.Skills)
}

func TestCreateResume_InvalidDate(t *testing.T) {
	handler, _, _ := newTestResumeHandler(t)

	doc := &types.ResumeDocument{
		WorkExperiences: []types.WorkExperience{{StartDate: "01/2020"}},
	}
	req := withSession(jsonRequest(t, "POST", "/api/resumes", CreateResumeRequest{Document: doc}), userSession())
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Fields)
	assert.Equal(t, "workExperiences[0].startDate", body.Fields[0].Field)
}

func TestGetResume_OtherUsersResumeNotFound(t *testing.T) {
	handler, resumes, _ := newTestResumeHandler(t)
	owner := userSession()
	created, err := resumes.CreateResume(t.Context(), owner.UserID, &types.ResumeDocument{Title: "CV"})
	require.NoError(t, err)

	intruder := userSession()
	req := withSession(pathRequest(t, "GET", "/api/resumes/"+created.ID.String(), created.ID.String(), nil), intruder)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateResume_RoundTripsDocument(t *testing.T) {
	handler, resumes, _ := newTestResumeHandler(t)
	owner := userSession()
	created, err := resumes.CreateResume(t.Context(), owner.UserID, &types.ResumeDocument{Title: "CV"})
	require.NoError(t, err)

	updated := types.ResumeDocument{
		Title:    "CV mới",
		Summary:  "Kỹ sư phần mềm với 5 năm kinh nghiệm.",
		Skills:   []string{"Go", "PostgreSQL"},
		ColorHex: "#336699",
		Educations: []types.Education{
			{Degree: "Cử nhân", School: "Đại học Bách Khoa", StartDate: "2014-09-01", EndDate: "2018-06-30"},
		},
	}
	req := withSession(pathRequest(t, "PUT", "/api/resumes/"+created.ID.String(), created.ID.String(), updated), owner)
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "CV mới", got.Document.Title)
	assert.Equal(t, updated.Skills, got.Document.Skills)
	assert.Equal(t, updated.Educations, got.Document.Educations)
	assert.Equal(t, "#336699", got.Document.ColorHex)
}

func TestDeleteResume_RemovesPhotoBlob(t *testing.T) {
	handler, resumes, uploads := newTestResumeHandler(t)
	owner := userSession()

	url, err := uploads.Save("photo", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	created, err := resumes.CreateResume(t.Context(), owner.UserID, &types.ResumeDocument{
		Photo: types.RemotePhoto(url),
	})
	require.NoError(t, err)

	req := withSession(pathRequest(t, "DELETE", "/api/resumes/"+created.ID.String(), created.ID.String(), nil), owner)
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	name := strings.TrimPrefix(url, "/uploads/")
	_, statErr := os.Stat(filepath.Join(uploads.Root(), name))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadPhoto_SetsRemotePhoto(t *testing.T) {
	handler, resumes, _ := newTestResumeHandler(t)
	owner := userSession()
	created, err := resumes.CreateResume(t.Context(), owner.UserID, &types.ResumeDocument{})
	require.NoError(t, err)

	req := multipartUpload(t, "/api/resumes/"+created.ID.String()+"/photo", "file", "photo.png", "image/png", []byte("png-bytes"))
	req.SetPathValue("id", created.ID.String())
	req = withSession(req, owner)
	rec := httptest.NewRecorder()
	handler.UploadPhoto(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, types.PhotoRemote, got.Document.Photo.Kind())
	assert.Contains(t, got.Document.Photo.URL(), "/uploads/")
}

func TestUploadPhoto_OversizedRejectedBeforeStorage(t *testing.T) {
	handler, resumes, uploads := newTestResumeHandler(t)
	owner := userSession()
	created, err := resumes.CreateResume(t.Context(), owner.UserID, &types.ResumeDocument{})
	require.NoError(t, err)

	oversized := make([]byte, 5<<20) // over the 4 MiB photo ceiling
	req := multipartUpload(t, "/api/resumes/"+created.ID.String()+"/photo", "file", "photo.png", "image/png", oversized)
	req.SetPathValue("id", created.ID.String())
	req = withSession(req, owner)
	rec := httptest.NewRecorder()
	handler.UploadPhoto(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	entries, err := os.ReadDir(uploads.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestImportResume_ValidatesAgainstSchema(t *testing.T) {
	handler, _, _ := newTestResumeHandler(t)

	body := []byte(`{"firstName": "Văn A", "salary": 100}`)
	req := withSession(httptest.NewRequest("POST", "/api/resumes/import", bytes.NewReader(body)), userSession())
	rec := httptest.NewRecorder()
	handler.Import(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Fields)
}

func TestImportResume_CreatesFromValidDocument(t *testing.T) {
	handler, _, _ := newTestResumeHandler(t)
	session := userSession()

	body := []byte(`{
		"title": "CV nhập từ tệp",
		"firstName": "Văn A",
		"skills": ["Go", "SQL"],
		"templateType": "template_3"
	}`)
	req := withSession(httptest.NewRequest("POST", "/api/resumes/import", bytes.NewReader(body)), session)
	rec := httptest.NewRecorder()
	handler.Import(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resume db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resume))
	assert.Equal(t, "CV nhập từ tệp", resume.Document.Title)
	assert.Equal(t, types.Template3, resume.Document.TemplateType)
	assert.Equal(t, session.UserID, resume.UserID)
}

func TestListResumes_OnlyOwn(t *testing.T) {
	handler, resumes, _ := newTestResumeHandler(t)
	owner := userSession()
	other := userSession()
	_, err := resumes.CreateResume(t.Context(), owner.UserID, &types.ResumeDocument{Title: "Của tôi"})
	require.NoError(t, err)
	_, err = resumes.CreateResume(t.Context(), other.UserID, &types.ResumeDocument{Title: "Của người khác"})
	require.NoError(t, err)

	req := withSession(httptest.NewRequest("GET", "/api/resumes", nil), owner)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []db.Resume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Của tôi", got[0].Document.Title)
}
