package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthUser struct {
	ID           string
	Email        string
	RoleName     string
	PasswordHash string
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var user AuthUser
	if err := s.DB.QueryRow(ctx, `
    SELECT id, email, role, password_hash
    FROM users
    WHERE email = $1 AND status = 'active'
  `, email).Scan(&user.ID, &user.Email, &user.RoleName, &user.PasswordHash); err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", userID)
	return err
}

// HasPermission resolves against the static role matrix; roles are not
// tenant-configurable in this platform.
func (s *Store) HasPermission(ctx context.Context, roleName, permission string) (bool, error) {
	for _, candidate := range RolePermissions[roleName] {
		if candidate == permission {
			return true, nil
		}
	}
	return false, nil
}
