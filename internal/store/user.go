package store

import (
	"context"

	"personal-blog/internal/database"
	"personal-blog/internal/model"

	"github.com/jackc/pgx/v5"
)

const selectUser = `SELECT id, name, email, password_hash, created_at, is_admin FROM users`

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx, selectUser+` WHERE id = $1`, userID)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.IsAdmin,
	); err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

// GetUserByEmail expects email already lower-cased.
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx, selectUser+` WHERE email = $1`, email)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.IsAdmin,
	); err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return u, nil
}

// CreateUser inserts u. The very first account ever stored is flagged as
// admin; u.IsAdmin is ignored on input and set from the database. The table
// lock makes concurrent inserts wait, so at most one of them sees an empty
// users table.
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return err
		}
		row := tx.QueryRow(ctx,
			`INSERT INTO users (name, email, password_hash, is_admin)
			 SELECT $1, $2, $3, NOT EXISTS (SELECT 1 FROM users)
			 RETURNING id, is_admin, created_at`,
			u.Name,
			u.Email,
			u.PasswordHash,
		)
		return row.Scan(&u.ID, &u.IsAdmin, &u.CreatedAt)
	})
	if err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}
