package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
)

type userRow struct {
	ID        int64
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
}

func scanUser(row scanner) (userRow, error) {
	var u userRow
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt)
	return u, err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = ?`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByUsername, username))
}

const getUserByUsernameOrEmail = `SELECT ` + userColumns + `
FROM users
WHERE username = ? OR email = ?
ORDER BY id
LIMIT 1`

func (q *Queries) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByUsernameOrEmail, username, email))
}

const createUser = `INSERT INTO users (username, email, password) VALUES (?, ?, ?)`

func (q *Queries) CreateUser(ctx context.Context, username, email, password string) (int64, error) {
	res, err := q.db.ExecContext(ctx, createUser, username, email, password)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const updateUserPassword = `UPDATE users SET password = ? WHERE id = ?`

func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, password string) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateUserPassword, password, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type usersRepo struct {
	q *Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (domain.User, error) {
	row, err := r.q.GetUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	id, err := r.q.CreateUser(ctx, username, email, passwordHash)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	n, err := r.q.UpdateUserPassword(ctx, userID, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func mapUser(row userRow) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.Password,
		CreatedAt:    row.CreatedAt.UTC(),
	}
}
