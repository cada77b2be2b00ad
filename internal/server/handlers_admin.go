package server

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/Caoophuongg/quickcv/internal/storage"
	"github.com/Caoophuongg/quickcv/internal/types"
	"github.com/Caoophuongg/quickcv/internal/validation"
)

// AdminHandler serves user administration and dashboard statistics. All
// routes sit behind the AdminOnly middleware.
type AdminHandler struct {
	users   UserStore
	resumes ResumeStore
	blogs   BlogStore
	uploads *storage.Store
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(users UserStore, resumes ResumeStore, blogs BlogStore, uploads *storage.Store) *AdminHandler {
	return &AdminHandler{
		users:   users,
		resumes: resumes,
		blogs:   blogs,
		uploads: uploads,
	}
}

// UserListResponse is a page of users with pagination metadata.
type UserListResponse struct {
	Users      []types.User     `json:"users"`
	Pagination types.Pagination `json:"pagination"`
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	users, total, err := h.users.ListUsers(r.Context(), r.URL.Query().Get("search"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []types.User{}
	}
	writeJSON(w, http.StatusOK, UserListResponse{
		Users: users,
		Pagination: types.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	})
}

// UpdateUserRole handles PATCH /api/admin/users/{id}. Administrators cannot
// change their own role, and the last remaining administrator cannot be
// demoted.
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	session := mustSession(w, r)
	if session == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		writeError(w, err)
		return
	}

	if id == session.UserID {
		writeError(w, &ErrForbidden{Message: "cannot change your own role"})
		return
	}

	target, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if target == nil {
		writeError(w, &ErrUserNotFound{UserID: id})
		return
	}

	if target.Role == types.RoleAdmin && req.Role != types.RoleAdmin {
		admins, err := h.users.CountAdmins(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if admins <= 1 {
			writeError(w, &ErrConflict{Message: "cannot demote the last administrator"})
			return
		}
	}

	user, err := h.users.UpdateUserRole(r.Context(), id, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, &ErrUserNotFound{UserID: id})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/{id}. The last remaining
// administrator cannot be deleted.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	target, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if target == nil {
		writeError(w, &ErrUserNotFound{UserID: id})
		return
	}

	if target.Role == types.RoleAdmin {
		admins, err := h.users.CountAdmins(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if admins <= 1 {
			writeError(w, &ErrConflict{Message: "cannot delete the last administrator"})
			return
		}
	}

	deleted, err := h.users.DeleteUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, &ErrUserNotFound{UserID: id})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// UploadThumbnail handles POST /api/admin/upload-thumbnail for blog covers.
func (h *AdminHandler) UploadThumbnail(w http.ResponseWriter, r *http.Request) {
	contentType, data, err := readUploadedFile(r, validation.MaxThumbnailBytes)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validation.ImagePayload(contentType, int64(len(data)), validation.MaxThumbnailBytes); err != nil {
		writeError(w, err)
		return
	}

	url, err := h.uploads.Save("thumbnail", contentType, data)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// DashboardStats is the admin dashboard headline counters.
type DashboardStats struct {
	Users   int `json:"users"`
	Resumes int `json:"resumes"`
	Blogs   int `json:"blogs"`
}

// Dashboard handles GET /api/admin/dashboard. The three counters are
// independent queries, fanned out concurrently.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		n, err := h.users.CountUsers(ctx)
		stats.Users = n
		return err
	})
	g.Go(func() error {
		n, err := h.resumes.CountResumes(ctx)
		stats.Resumes = n
		return err
	})
	g.Go(func() error {
		n, err := h.blogs.CountBlogs(ctx)
		stats.Blogs = n
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// TemplateUsageEntry is one template's share of stored resumes.
type TemplateUsageEntry struct {
	TemplateType types.TemplateType `json:"templateType"`
	Count        int                `json:"count"`
}

// TemplateUsage handles GET /api/admin/dashboard/template-usage. Every known
// template appears in the response, zero counts included.
func (h *AdminHandler) TemplateUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.resumes.TemplateUsage(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	entries := make([]TemplateUsageEntry, 0, len(types.AllTemplateTypes()))
	for _, tt := range types.AllTemplateTypes() {
		entries = append(entries, TemplateUsageEntry{TemplateType: tt, Count: usage[tt]})
	}

	writeJSON(w, http.StatusOK, map[string][]TemplateUsageEntry{"usage": entries})
}
