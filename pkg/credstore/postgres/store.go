package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetAppValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM app_config WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get app value %s: %w", key, err)
	}
	return value, nil
}

// SetAppValue sets an app-level value such as the admin instance URL.
func (s *Store) SetAppValue(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO app_config (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to set app value %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetUserValue(ctx context.Context, userID, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx, `
		SELECT value FROM user_config WHERE user_id = $1 AND key = $2`,
		userID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user value %s for %s: %w", key, userID, err)
	}
	return value, nil
}

func (s *Store) SetUserValue(ctx context.Context, userID, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_config (user_id, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value`,
		userID, key, value)
	if err != nil {
		return fmt.Errorf("failed to set user value %s for %s: %w", key, userID, err)
	}
	return nil
}

func (s *Store) DeleteUserValue(ctx context.Context, userID, key string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM user_config WHERE user_id = $1 AND key = $2`,
		userID, key)
	if err != nil {
		return fmt.Errorf("failed to delete user value %s for %s: %w", key, userID, err)
	}
	return nil
}

// ListUsers returns the IDs of all users with at least one stored value.
func (s *Store) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT user_id FROM user_config ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		users = append(users, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
