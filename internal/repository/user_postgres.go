package repository

import (
	"database/sql"
	"fmt"

	"pronosbot/internal/models"

	"github.com/lib/pq"
)

type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

func (r *UserPostgres) GetByID(id int64) (*models.User, error) {
	var u models.User
	var avatar sql.NullString
	query := "SELECT id, name, is_admin, avatar_url FROM users WHERE id = $1"
	err := r.db.QueryRow(query, id).Scan(&u.ID, &u.Name, &u.IsAdmin, &avatar)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.AvatarURL = avatar.String
	return &u, nil
}

// Upsert creates the user or refreshes the display name the sender is
// currently using. The admin flag is never touched here.
func (r *UserPostgres) Upsert(user *models.User) error {
	query := `
		INSERT INTO users (id, name, avatar_url) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`
	_, err := r.db.Exec(query, user.ID, user.Name, user.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (r *UserPostgres) SetAdmin(id int64, isAdmin bool) error {
	res, err := r.db.Exec("UPDATE users SET is_admin = $1 WHERE id = $2", isAdmin, id)
	if err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserPostgres) GetByIDs(ids []int64) ([]models.User, error) {
	rows, err := r.db.Query("SELECT id, name, is_admin, avatar_url FROM users WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var avatar sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.IsAdmin, &avatar); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.AvatarURL = avatar.String
		users = append(users, u)
	}
	return users, rows.Err()
}
