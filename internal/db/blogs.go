package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Caoophuongg/quickcv/internal/types"
)

// BlogWithAuthor pairs a post with its author summary for listings.
type BlogWithAuthor struct {
	types.Blog
	Author types.BlogAuthor `json:"author"`
}

const blogColumns = `b.id, b.title, b.content, COALESCE(b.excerpt, ''), COALESCE(b.thumbnail, ''), b.slug, b.published, b.author_id, b.created_at, b.updated_at,
	u.id, u.email, u.first_name, u.last_name`

func scanBlog(row pgx.Row) (*BlogWithAuthor, error) {
	var b BlogWithAuthor
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.Excerpt, &b.Thumbnail, &b.Slug, &b.Published,
		&b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
		&b.Author.ID, &b.Author.Email, &b.Author.FirstName, &b.Author.LastName)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBlog inserts a new post. A duplicate slug returns ErrDuplicate.
func (db *DB) CreateBlog(ctx context.Context, authorID uuid.UUID, req *types.CreateBlogRequest) (*BlogWithAuthor, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO blogs (title, content, excerpt, thumbnail, slug, published, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		req.Title, req.Content, req.Excerpt, req.Thumbnail, req.Slug, req.Published, authorID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	return db.GetBlogByID(ctx, id)
}

// GetBlogByID retrieves a post regardless of publication state, or nil when
// absent. Admin use only; the public surface goes through slug lookups.
func (db *DB) GetBlogByID(ctx context.Context, id uuid.UUID) (*BlogWithAuthor, error) {
	blog, err := scanBlog(db.pool.QueryRow(ctx,
		`SELECT `+blogColumns+`
		 FROM blogs b JOIN users u ON u.id = b.author_id
		 WHERE b.id = $1`, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}

// GetPublishedBlogBySlug retrieves a published post by slug, or nil when the
// slug is unknown or the post is a draft. Drafts are indistinguishable from
// absent posts to the public.
func (db *DB) GetPublishedBlogBySlug(ctx context.Context, slug string) (*BlogWithAuthor, error) {
	blog, err := scanBlog(db.pool.QueryRow(ctx,
		`SELECT `+blogColumns+`
		 FROM blogs b JOIN users u ON u.id = b.author_id
		 WHERE b.slug = $1 AND b.published = TRUE`, slug,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blog by slug: %w", err)
	}
	return blog, nil
}

// ListBlogs retrieves a page of posts, newest first. When publishedOnly is
// true drafts are excluded; the admin listing passes false to see everything.
// A non-empty search matches title or slug case-insensitively.
func (db *DB) ListBlogs(ctx context.Context, publishedOnly bool, search string, page, limit int) ([]BlogWithAuthor, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var conds []string
	var args []any
	if publishedOnly {
		conds = append(conds, "b.published = TRUE")
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		p := fmt.Sprintf("$%d", len(args))
		conds = append(conds, fmt.Sprintf("(b.title ILIKE %s OR b.slug ILIKE %s)", p, p))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM blogs b`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	rows, err := db.pool.Query(ctx,
		`SELECT `+blogColumns+`
		 FROM blogs b JOIN users u ON u.id = b.author_id`+where+`
		 ORDER BY b.created_at DESC
		 LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []BlogWithAuthor
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, *blog)
	}
	return blogs, total, nil
}

// UpdateBlog applies the non-nil fields of req to a post and returns the
// updated row, or nil when the post is absent. A slug collision returns
// ErrDuplicate.
func (db *DB) UpdateBlog(ctx context.Context, id uuid.UUID, req *types.UpdateBlogRequest) (*BlogWithAuthor, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE blogs SET
			title = COALESCE($2, title),
			content = COALESCE($3, content),
			excerpt = COALESCE($4, excerpt),
			thumbnail = COALESCE($5, thumbnail),
			slug = COALESCE($6, slug),
			published = COALESCE($7, published),
			updated_at = NOW()
		 WHERE id = $1`,
		id, req.Title, req.Content, req.Excerpt, req.Thumbnail, req.Slug, req.Published,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, nil
	}
	return db.GetBlogByID(ctx, id)
}

// DeleteBlog removes a post. Returns false when no such post exists.
func (db *DB) DeleteBlog(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete blog: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CountBlogs returns the total number of posts, drafts included.
func (db *DB) CountBlogs(ctx context.Context) (int, error) {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count blogs: %w", err)
	}
	return count, nil
}
