package service

import (
	"context"
	"strings"

	"loan-management/internal/core/auth"
	"loan-management/internal/domain"
	"loan-management/pkg/utils"
)

// AuthService 注册 / 登录，签发携带角色的凭证
type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register 注册即发凭证。角色由注册方自报（沿用既有契约，见 DESIGN.md）。
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: utils.HashPassword(in.Password),
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册撞唯一索引也归为已存在
		if isDupKey(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	tok, err := s.jwter.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: tok}, nil
}

// Login 校验 email/password/role 三元组。
// 密码错 → ErrInvalidCredential；角色不符 → ErrRoleMismatch，两者必须可区分。
func (s *AuthService) Login(ctx context.Context, email, password, role string) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrInvalidCredential
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredential
	}
	if string(u.Role) != role {
		return nil, domain.ErrRoleMismatch
	}

	tok, err := s.jwter.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: tok}, nil
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique failed")
}
