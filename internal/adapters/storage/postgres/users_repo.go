package postgres

import (
	"context"
	"database/sql"
)

// UsersDirectory responde existencia de cuentas de usuario (las cuentas
// las administra el servicio de identidad; acá solo se consultan).
type UsersDirectory struct {
	db *sql.DB
}

func NewUsersDirectory(db *sql.DB) *UsersDirectory {
	return &UsersDirectory{db: db}
}

func (d *UsersDirectory) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := d.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_accounts WHERE user_id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
