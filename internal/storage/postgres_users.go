package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/homecare/internal/model"
)

const userColumns = `id, role, name, email, avatar_url, phone, address, bio, specialization, rating`

// ListUsers は全ユーザーを取得する。
func (s *PostgresStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// FindUserByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (s *PostgresStore) FindUserByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Role, &user.Name, &user.Email, &user.AvatarURL,
		&user.Phone, &user.Address, &user.Bio, &user.Specialization, &user.Rating)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return user, nil
}

// ListUsersByRole は指定された役割のユーザーを取得する。
func (s *PostgresStore) ListUsersByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY id`,
		string(role),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// CreateUser はユーザーを作成し、採番したIDを設定する。
func (s *PostgresStore) CreateUser(ctx context.Context, user *model.User) error {
	if user.Rating == 0 {
		user.Rating = model.DefaultRating
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (role, name, email, avatar_url, phone, address, bio, specialization, rating)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		string(user.Role), user.Name, user.Email, user.AvatarURL,
		user.Phone, user.Address, user.Bio, user.Specialization, user.Rating,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// UpdateUser は指定されたフィールドのみを既存レコードにマージする。
func (s *PostgresStore) UpdateUser(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error) {
	set, args := buildUpdateSet(
		updateField{"role", update.Role},
		updateField{"name", update.Name},
		updateField{"email", update.Email},
		updateField{"avatar_url", update.AvatarURL},
		updateField{"phone", update.Phone},
		updateField{"address", update.Address},
		updateField{"bio", update.Bio},
		updateField{"specialization", update.Specialization},
		updateField{"rating", update.Rating},
	)
	if len(args) == 0 {
		// 変更なしの部分更新は現在のレコードをそのまま返す
		user, err := s.FindUserByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, model.NewUserNotFoundError(id)
		}
		return user, nil
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		set, len(args),
	)

	user := &model.User{}
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Role, &user.Name, &user.Email, &user.AvatarURL,
		&user.Phone, &user.Address, &user.Bio, &user.Specialization, &user.Rating,
	)
	if err == sql.ErrNoRows {
		return nil, model.NewUserNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func scanUsers(rows *sql.Rows) ([]*model.User, error) {
	users := make([]*model.User, 0)
	for rows.Next() {
		user := &model.User{}
		if err := rows.Scan(&user.ID, &user.Role, &user.Name, &user.Email, &user.AvatarURL,
			&user.Phone, &user.Address, &user.Bio, &user.Specialization, &user.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
