package types

import (
	"time"

	"github.com/google/uuid"
)

// Blog is an admin-authored post. Only published posts are publicly readable.
type Blog struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Slug      string    `json:"slug"`
	Published bool      `json:"published"`
	AuthorID  uuid.UUID `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogAuthor is the author summary embedded in blog listings.
type BlogAuthor struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
}

// CreateBlogRequest creates a new post. Slug must be unique.
type CreateBlogRequest struct {
	Title     string `json:"title" validate:"required,min=3"`
	Content   string `json:"content" validate:"required,min=10"`
	Excerpt   string `json:"excerpt,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Slug      string `json:"slug" validate:"required,min=3"`
	Published bool   `json:"published"`
}

// UpdateBlogRequest updates an existing post. Nil fields are left unchanged.
type UpdateBlogRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=3"`
	Content   *string `json:"content,omitempty" validate:"omitempty,min=10"`
	Excerpt   *string `json:"excerpt,omitempty"`
	Thumbnail *string `json:"thumbnail,omitempty"`
	Slug      *string `json:"slug,omitempty" validate:"omitempty,min=3"`
	Published *bool   `json:"published,omitempty"`
}

// Pagination describes a page of a larger listing.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
