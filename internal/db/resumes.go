package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Caoophuongg/quickcv/internal/types"
)

// Resume is a stored resume row: the document itself as JSONB plus extracted
// metadata columns for listing and statistics.
type Resume struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"userId"`
	Document  types.ResumeDocument `json:"document"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	var docBytes []byte
	if err := row.Scan(&r.ID, &r.UserID, &docBytes, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(docBytes, &r.Document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume document: %w", err)
	}
	r.Document.ID = &r.ID
	return &r, nil
}

func marshalDocument(doc *types.ResumeDocument) ([]byte, error) {
	// The row ID is authoritative; never persist a stale copy inside the blob.
	clone := doc.Clone()
	clone.ID = nil
	return json.Marshal(clone)
}

// CreateResume inserts a new resume for the user and returns the stored row.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, doc *types.ResumeDocument) (*Resume, error) {
	docBytes, err := marshalDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume document: %w", err)
	}

	resume, err := scanResume(db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, template_type, document)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, document, created_at, updated_at`,
		userID, doc.Title, string(doc.TemplateType), docBytes,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return resume, nil
}

// GetResume retrieves one resume owned by the user, or nil when absent or
// owned by someone else. Ownership is part of the lookup, not a later check.
func (db *DB) GetResume(ctx context.Context, userID, id uuid.UUID) (*Resume, error) {
	resume, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT id, user_id, document, created_at, updated_at
		 FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return resume, nil
}

// ListResumes retrieves all resumes owned by the user, most recently updated
// first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, document, created_at, updated_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *resume)
	}
	return resumes, nil
}

// UpdateResume replaces the stored document of a resume owned by the user.
// Returns nil when the resume is absent or not owned by the caller.
func (db *DB) UpdateResume(ctx context.Context, userID, id uuid.UUID, doc *types.ResumeDocument) (*Resume, error) {
	docBytes, err := marshalDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume document: %w", err)
	}

	resume, err := scanResume(db.pool.QueryRow(ctx,
		`UPDATE resumes SET title = $3, template_type = $4, document = $5, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, document, created_at, updated_at`,
		id, userID, doc.Title, string(doc.TemplateType), docBytes,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return resume, nil
}

// DeleteResume removes a resume owned by the user. Returns false when absent
// or not owned by the caller.
func (db *DB) DeleteResume(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CountResumes returns the total number of resumes across all users.
func (db *DB) CountResumes(ctx context.Context) (int, error) {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return count, nil
}

// TemplateUsage returns how many resumes use each template, keyed by
// template identifier. Templates with no resumes are absent from the map.
func (db *DB) TemplateUsage(ctx context.Context) (map[types.TemplateType]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT COALESCE(NULLIF(template_type, ''), 'template_0'), COUNT(*)
		 FROM resumes GROUP BY 1`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query template usage: %w", err)
	}
	defer rows.Close()

	usage := make(map[types.TemplateType]int)
	for rows.Next() {
		var tt string
		var count int
		if err := rows.Scan(&tt, &count); err != nil {
			return nil, fmt.Errorf("failed to scan template usage: %w", err)
		}
		usage[types.TemplateType(tt)] = count
	}
	return usage, nil
}
