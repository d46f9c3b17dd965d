package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser     Role = "USER"
	RoleVerifier Role = "VERIFIER"
	RoleAdmin    Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleVerifier, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// Identity 鉴权后的调用者身份（角色取自凭证，而非每次回查库）
type Identity struct {
	SubjectID string
	Role      Role
}

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string    `gorm:"size:64" json:"name"`
	PasswordHash string    `gorm:"size:191;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:USER" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	UpdateRole(ctx context.Context, id string, role Role) (*User, error)
	Delete(ctx context.Context, id string) error
}
