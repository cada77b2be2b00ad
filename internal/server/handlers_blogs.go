package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/Caoophuongg/quickcv/internal/db"
	"github.com/Caoophuongg/quickcv/internal/types"
	"github.com/Caoophuongg/quickcv/internal/validation"
)

// excerptMaxRunes caps auto-derived excerpts.
const excerptMaxRunes = 160

// BlogHandler serves the public blog surface and the admin CRUD behind it.
type BlogHandler struct {
	blogs BlogStore
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogs BlogStore) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// BlogListResponse is a page of posts with pagination metadata.
type BlogListResponse struct {
	Blogs      []db.BlogWithAuthor `json:"blogs"`
	Pagination types.Pagination    `json:"pagination"`
}

// ListPublished handles GET /api/blogs. Drafts are never visible here.
func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	blogs, total, err := h.blogs.ListBlogs(r.Context(), true, r.URL.Query().Get("search"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogListResponse(blogs, total, page, limit))
}

// GetBySlug handles GET /api/blogs/{slug}. A draft slug behaves exactly like
// an unknown one.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	blog, err := h.blogs.GetPublishedBlogBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	if blog == nil {
		writeError(w, &ErrNotFound{Resource: "blog"})
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

// AdminList handles GET /api/admin/blogs, drafts included.
func (h *BlogHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	blogs, total, err := h.blogs.ListBlogs(r.Context(), false, r.URL.Query().Get("search"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogListResponse(blogs, total, page, limit))
}

// AdminGet handles GET /api/admin/blogs/{id}.
func (h *BlogHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	blog, err := h.blogs.GetBlogByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if blog == nil {
		writeError(w, &ErrNotFound{Resource: "blog"})
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

// AdminCreate handles POST /api/admin/blogs. When no excerpt is supplied one
// is derived from the content HTML.
func (h *BlogHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}

	var req types.CreateBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		writeError(w, err)
		return
	}
	if req.Excerpt == "" {
		req.Excerpt = deriveExcerpt(req.Content)
	}

	blog, err := h.blogs.CreateBlog(r.Context(), session.UserID, &req)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			writeError(w, &ErrConflict{Message: "slug is already in use"})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blog)
}

// AdminUpdate handles PATCH /api/admin/blogs/{id}. Absent fields are left
// unchanged; updating content without an explicit excerpt re-derives it.
func (h *BlogHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		writeError(w, err)
		return
	}
	if req.Content != nil && req.Excerpt == nil {
		excerpt := deriveExcerpt(*req.Content)
		req.Excerpt = &excerpt
	}

	blog, err := h.blogs.UpdateBlog(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			writeError(w, &ErrConflict{Message: "slug is already in use"})
			return
		}
		writeError(w, err)
		return
	}
	if blog == nil {
		writeError(w, &ErrNotFound{Resource: "blog"})
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// AdminDelete handles DELETE /api/admin/blogs/{id}.
func (h *BlogHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.blogs.DeleteBlog(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, &ErrNotFound{Resource: "blog"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted"})
}

func blogListResponse(blogs []db.BlogWithAuthor, total, page, limit int) BlogListResponse {
	if blogs == nil {
		blogs = []db.BlogWithAuthor{}
	}
	totalPages := (total + limit - 1) / limit
	return BlogListResponse{
		Blogs: blogs,
		Pagination: types.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
}

// deriveExcerpt extracts the leading text of the content HTML, truncated on a
// word boundary. Unparseable content falls back to the raw string.
func deriveExcerpt(contentHTML string) string {
	text := contentHTML
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= excerptMaxRunes {
		return text
	}
	cut := excerptMaxRunes
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = excerptMaxRunes
	}
	return strings.TrimSpace(string(runes[:cut])) + "…"
}

// pageParams parses page/limit query parameters with sane defaults.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
