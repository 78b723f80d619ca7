package domain

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrInvalidRole   = errors.New("unknown role")
)

// Role controls what a user is allowed to do in the maintenance system.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
	RoleRequester  Role = "requester"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTechnician, RoleRequester:
		return true
	}
	return false
}

// User represents an operator of the maintenance system.
type User struct {
	ID           int64
	Username     string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Sector       string
	Active       bool
}

// NewUser builds a user, hashing the supplied password.
func NewUser(username, name, email, password string, role Role, sector string) (*User, error) {
	user := &User{Name: strings.TrimSpace(name), Sector: strings.TrimSpace(sector), Active: true}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := user.SetRole(role); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// SetEmail validates the email if present.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword validates strength and stores a bcrypt hash.
func (u *User) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 6 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// SetRole validates and assigns the role.
func (u *User) SetRole(role Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	u.Role = role
	return nil
}

// UpdateProfile applies optional profile fields.
func (u *User) UpdateProfile(name, email, sector string) error {
	if err := u.SetEmail(email); err != nil {
		return err
	}
	u.Name = strings.TrimSpace(name)
	u.Sector = strings.TrimSpace(sector)
	return nil
}

// Deactivate marks the account as unusable without deleting it.
func (u *User) Deactivate() {
	u.Active = false
}

// CheckPassword compares the stored hash with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	password = strings.TrimSpace(password)
	if password == "" || u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	return u.SetRole(u.Role)
}
