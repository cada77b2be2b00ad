package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caoophuongg/quickcv/internal/db"
	"github.com/Caoophuongg/quickcv/internal/types"
)

func newTestBlogHandler(t *testing.T) (*BlogHandler, *fakeBlogStore, types.User) {
	t.Helper()
	blogs := newFakeBlogStore()
	admin := types.User{ID: uuid.New(), Role: types.RoleAdmin}
	return NewBlogHandler(blogs), blogs, admin
}

func seedBlog(t *testing.T, blogs *fakeBlogStore, slug string, published bool) *db.BlogWithAuthor {
	t.Helper()
	b, err := blogs.CreateBlog(t.Context(), uuid.New(), &types.CreateBlogRequest{
		Title:     "Cách viết CV ấn tượng",
		Content:   "<p>Nội dung hướng dẫn viết CV.</p>",
		Slug:      slug,
		Published: published,
	})
	require.NoError(t, err)
	return b
}

func TestListPublished_ExcludesDrafts(t *testing.T) {
	handler, blogs, _ := newTestBlogHandler(t)
	seedBlog(t, blogs, "published-post", true)
	seedBlog(t, blogs, "draft-post", false)

	rec := httptest.NewRecorder()
	handler.ListPublished(rec, httptest.NewRequest("GET", "/api/blogs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp BlogListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Blogs, 1)
	assert.Equal(t, "published-post", resp.Blogs[0].Slug)
	assert.Equal(t, 1, resp.Pagination.Total)
}

func TestGetBySlug_DraftIndistinguishableFromAbsent(t *testing.T) {
	handler, blogs, _ := newTestBlogHandler(t)
	seedBlog(t, blogs, "draft-post", false)

	draft := httptest.NewRequest("GET", "/api/blogs/draft-post", nil)
	draft.SetPathValue("slug", "draft-post")
	recDraft := httptest.NewRecorder()
	handler.GetBySlug(recDraft, draft)

	missing := httptest.NewRequest("GET", "/api/blogs/no-such-post", nil)
	missing.SetPathValue("slug", "no-such-post")
	recMissing := httptest.NewRecorder()
	handler.GetBySlug(recMissing, missing)

	assert.Equal(t, http.StatusNotFound, recDraft.Code)
	assert.Equal(t, http.StatusNotFound, recMissing.Code)
	assert.Equal(t, recDraft.Body.String(), recMissing.Body.String())
}

func TestGetBySlug_Published(t *testing.T) {
	handler, blogs, _ := newTestBlogHandler(t)
	seedBlog(t, blogs, "published-post", true)

	req := httptest.NewRequest("GET", "/api/blogs/published-post", nil)
	req.SetPathValue("slug", "published-post")
	rec := httptest.NewRecorder()
	handler.GetBySlug(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var blog db.BlogWithAuthor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blog))
	assert.Equal(t, "Cách viết CV ấn tượng", blog.Title)
}

func TestAdminCreate_SlugConflict(t *testing.T) {
	handler, blogs, admin := newTestBlogHandler(t)
	seedBlog(t, blogs, "taken-slug", true)

	req := withSession(jsonRequest(t, "POST", "/api/admin/blogs", types.CreateBlogRequest{
		Title:   "Bài viết mới",
		Content: "Nội dung bài viết mới.",
		Slug:    "taken-slug",
	}), types.Session{UserID: admin.ID, Role: admin.Role})
	rec := httptest.NewRecorder()
	handler.AdminCreate(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminCreate_DerivesExcerptFromHTML(t *testing.T) {
	handler, _, admin := newTestBlogHandler(t)

	req := withSession(jsonRequest(t, "POST", "/api/admin/blogs", types.CreateBlogRequest{
		Title:   "Mẹo phỏng vấn",
		Content: "<h2>Chuẩn bị</h2><p>Hãy tìm hiểu về công ty trước khi phỏng vấn.</p>",
		Slug:    "meo-phong-van",
	}), types.Session{UserID: admin.ID, Role: admin.Role})
	rec := httptest.NewRecorder()
	handler.AdminCreate(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var blog db.BlogWithAuthor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blog))
	assert.NotContains(t, blog.Excerpt, "<")
	assert.Contains(t, blog.Excerpt, "Hãy tìm hiểu về công ty")
}

func TestAdminCreate_KeepsExplicitExcerpt(t *testing.T) {
	handler, _, admin := newTestBlogHandler(t)

	req := withSession(jsonRequest(t, "POST", "/api/admin/blogs", types.CreateBlogRequest{
		Title:   "Mẹo phỏng vấn",
		Content: "<p>Nội dung dài về phỏng vấn.</p>",
		Excerpt: "Tóm tắt thủ công",
		Slug:    "meo-phong-van",
	}), types.Session{UserID: admin.ID, Role: admin.Role})
	rec := httptest.NewRecorder()
	handler.AdminCreate(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var blog db.BlogWithAuthor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blog))
	assert.Equal(t, "Tóm tắt thủ công", blog.Excerpt)
}

func TestAdminList_IncludesDrafts(t *testing.T) {
	handler, blogs, _ := newTestBlogHandler(t)
	seedBlog(t, blogs, "published-post", true)
	seedBlog(t, blogs, "draft-post", false)

	rec := httptest.NewRecorder()
	handler.AdminList(rec, httptest.NewRequest("GET", "/api/admin/blogs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp BlogListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Blogs, 2)
}

func TestAdminUpdate_SlugConflict(t *testing.T) {
	handler, blogs, _ := newTestBlogHandler(t)
	seedBlog(t, blogs, "first-post", true)
	second := seedBlog(t, blogs, "second-post", true)

	slug := "first-post"
	req := pathRequest(t, "PATCH", "/api/admin/blogs/"+second.ID.String(), second.ID.String(),
		types.UpdateBlogRequest{Slug: &slug})
	rec := httptest.NewRecorder()
	handler.AdminUpdate(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeriveExcerpt_TruncatesOnWordBoundary(t *testing.T) {
	long := "<p>" + strings.Repeat("từ khóa ", 50) + "</p>"
	excerpt := deriveExcerpt(long)
	assert.LessOrEqual(t, len([]rune(excerpt)), excerptMaxRunes+1)
	assert.True(t, strings.HasSuffix(excerpt, "…"))
	assert.NotContains(t, excerpt, "<p>")
}

func TestDeriveExcerpt_ShortContentUnchanged(t *testing.T) {
	assert.Equal(t, "Một đoạn ngắn.", deriveExcerpt("<p>Một đoạn ngắn.</p>"))
}
