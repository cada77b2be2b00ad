package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Caoophuongg/quickcv/internal/types"
)

// UserAuth pairs a user profile with its password hash for credential checks.
// The hash never leaves this package except through this type.
type UserAuth struct {
	User         types.User
	PasswordHash string
}

const userColumns = `id, email, first_name, last_name, role, COALESCE(avatar_url, ''), created_at, updated_at`

func scanUser(row pgx.Row, u *types.User) error {
	return row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
}

// CreateUser inserts a new account with the USER role. A duplicate email
// returns ErrDuplicate.
func (db *DB) CreateUser(ctx context.Context, email, passwordHash, firstName, lastName string) (*types.User, error) {
	var user types.User
	err := scanUser(db.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, role)
		 VALUES ($1, $2, $3, $4, 'USER')
		 RETURNING `+userColumns,
		email, passwordHash, firstName, lastName,
	), &user)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user profile, or nil when absent.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	var user types.User
	err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	), &user)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserAuthByEmail retrieves a user with its password hash for login, or
// nil when no account exists for the email.
func (db *DB) GetUserAuthByEmail(ctx context.Context, email string) (*UserAuth, error) {
	var auth UserAuth
	err := db.pool.QueryRow(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE email = $1`, email,
	).Scan(&auth.User.ID, &auth.User.Email, &auth.User.FirstName, &auth.User.LastName,
		&auth.User.Role, &auth.User.AvatarURL, &auth.User.CreatedAt, &auth.User.UpdatedAt,
		&auth.PasswordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &auth, nil
}

// GetUserPasswordHash retrieves only the password hash for a user ID.
func (db *DB) GetUserPasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	var hash string
	err := db.pool.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE id = $1`, id,
	).Scan(&hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get password hash: %w", err)
	}
	return hash, nil
}

// UpdateUserProfile updates the name fields and returns the updated profile,
// or nil when the user is absent.
func (db *DB) UpdateUserProfile(ctx context.Context, id uuid.UUID, firstName, lastName string) (*types.User, error) {
	var user types.User
	err := scanUser(db.pool.QueryRow(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, firstName, lastName,
	), &user)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// UpdateUserAvatar stores the public URL of the user's uploaded avatar.
func (db *DB) UpdateUserAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*types.User, error) {
	var user types.User
	err := scanUser(db.pool.QueryRow(ctx,
		`UPDATE users SET avatar_url = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, avatarURL,
	), &user)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	return &user, nil
}

// UpdateUserPassword replaces the stored password hash.
func (db *DB) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// UpdateUserRole changes a user's role and returns the updated profile, or
// nil when the user is absent.
func (db *DB) UpdateUserRole(ctx context.Context, id uuid.UUID, role types.Role) (*types.User, error) {
	var user types.User
	err := scanUser(db.pool.QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, role,
	), &user)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return &user, nil
}

// DeleteUser removes a user; owned resumes go with it via cascade. Returns
// false when no such user exists.
func (db *DB) DeleteUser(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ListUsers retrieves a page of users ordered by creation time, newest
// first, plus the total count for pagination. A non-empty search matches
// email or name case-insensitively.
func (db *DB) ListUsers(ctx context.Context, search string, page, limit int) ([]types.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	where := ""
	var args []any
	if search != "" {
		where = ` WHERE email ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	rows, err := db.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users`+where+`
		 ORDER BY created_at DESC
		 LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var user types.User
		if err := scanUser(rows, &user); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, total, nil
}

// CountUsers returns the total number of accounts.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// CountAdmins returns the number of accounts holding the ADMIN role, used to
// guard against removing the last administrator.
func (db *DB) CountAdmins(ctx context.Context) (int, error) {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'ADMIN'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
