// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/Caoophuongg/quickcv/internal/db"
	"github.com/Caoophuongg/quickcv/internal/types"
)

// The store interfaces mirror the db package's methods so services and
// handlers can be exercised against in-memory fakes. *db.DB satisfies all of
// them.

// UserStore is the persistence surface for accounts.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash, firstName, lastName string) (*types.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	GetUserAuthByEmail(ctx context.Context, email string) (*db.UserAuth, error)
	GetUserPasswordHash(ctx context.Context, id uuid.UUID) (string, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, firstName, lastName string) (*types.User, error)
	UpdateUserAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*types.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateUserRole(ctx context.Context, id uuid.UUID, role types.Role) (*types.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (bool, error)
	ListUsers(ctx context.Context, search string, page, limit int) ([]types.User, int, error)
	CountUsers(ctx context.Context) (int, error)
	CountAdmins(ctx context.Context) (int, error)
}

// ResumeStore is the persistence surface for resumes.
type ResumeStore interface {
	CreateResume(ctx context.Context, userID uuid.UUID, doc *types.ResumeDocument) (*db.Resume, error)
	GetResume(ctx context.Context, userID, id uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
	UpdateResume(ctx context.Context, userID, id uuid.UUID, doc *types.ResumeDocument) (*db.Resume, error)
	DeleteResume(ctx context.Context, userID, id uuid.UUID) (bool, error)
	CountResumes(ctx context.Context) (int, error)
	TemplateUsage(ctx context.Context) (map[types.TemplateType]int, error)
}

// BlogStore is the persistence surface for blog posts.
type BlogStore interface {
	CreateBlog(ctx context.Context, authorID uuid.UUID, req *types.CreateBlogRequest) (*db.BlogWithAuthor, error)
	GetBlogByID(ctx context.Context, id uuid.UUID) (*db.BlogWithAuthor, error)
	GetPublishedBlogBySlug(ctx context.Context, slug string) (*db.BlogWithAuthor, error)
	ListBlogs(ctx context.Context, publishedOnly bool, search string, page, limit int) ([]db.BlogWithAuthor, int, error)
	UpdateBlog(ctx context.Context, id uuid.UUID, req *types.UpdateBlogRequest) (*db.BlogWithAuthor, error)
	DeleteBlog(ctx context.Context, id uuid.UUID) (bool, error)
	CountBlogs(ctx context.Context) (int, error)
}
