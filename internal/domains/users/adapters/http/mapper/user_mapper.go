package mapper

import (
	"github.com/azaconnect/maintenance-api/internal/domains/users/domain"
)

// User is the HTTP representation of a user. The password hash never leaves
// the service boundary.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Sector   string `json:"sector,omitempty"`
	Active   bool   `json:"active"`
}

// MutationUser captures inbound payloads for create/update flows.
type MutationUser struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	Sector   string `json:"sector,omitempty"`
}

// LoginRequest carries the credentials payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToDomainUser maps a mutation payload into the domain entity.
func ToDomainUser(input MutationUser) (*domain.User, error) {
	return domain.NewUser(input.Username, input.Name, input.Email, input.Password, domain.Role(input.Role), input.Sector)
}

// ToDomainUpdate maps a mutation payload into an update entity. An empty
// password keeps the stored hash.
func ToDomainUpdate(input MutationUser) (*domain.User, error) {
	user := &domain.User{Active: true}
	if err := user.SetUsername(input.Username); err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(input.Name, input.Email, input.Sector); err != nil {
		return nil, err
	}
	if err := user.SetRole(domain.Role(input.Role)); err != nil {
		return nil, err
	}
	if input.Password != "" {
		if err := user.SetPassword(input.Password); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// FromDomainUser maps a domain entity into its transport representation.
func FromDomainUser(u *domain.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		Sector:   u.Sector,
		Active:   u.Active,
	}
}

// FromDomainUserList maps a slice of domain users to transport users.
func FromDomainUserList(list []*domain.User) []User {
	resp := make([]User, 0, len(list))
	for _, u := range list {
		resp = append(resp, FromDomainUser(u))
	}
	return resp
}
