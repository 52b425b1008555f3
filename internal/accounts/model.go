package accounts

import "time"

// Role classifies an account. Administrators may adjust balances and global
// settings; standard accounts only spend their own credits.
type Role string

const (
	RoleStandard Role = "user"
	RoleAdmin    Role = "admin"
)

// Account is one principal of the system. PasswordHash holds a bcrypt hash,
// never the raw secret. Credits is always >= 0.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Credits      int64
	Role         Role
	CreatedAt    time.Time
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
