package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"loan-management/internal/core/cache"
	"loan-management/internal/domain"
)

const usersByRoleKey = "loan:users:by-role"

// UserAdminService 角色管理：改角色、删账号、管理员/核验员名录
type UserAdminService struct {
	users domain.UserRepository
	cache *cache.Cache // 可为 nil（测试 / 未配置 redis）
	log   *zap.Logger
}

func NewUserAdminService(users domain.UserRepository, c *cache.Cache, log *zap.Logger) *UserAdminService {
	return &UserAdminService{users: users, cache: c, log: log}
}

type RoleDirectory struct {
	Admins    []domain.User `json:"admins"`
	Verifiers []domain.User `json:"verifiers"`
}

// UsersByRole 管理员 + 核验员名录。两个仪表盘都拉这个接口，走短 TTL 缓存。
func (s *UserAdminService) UsersByRole(ctx context.Context, id domain.Identity) (*RoleDirectory, error) {
	if err := domain.Authorize(id, domain.ActionListUsersByRole); err != nil {
		return nil, err
	}
	if s.cache == nil {
		return s.loadDirectory(ctx)
	}
	return cache.GetOrLoadJSON[RoleDirectory](s.cache, ctx, usersByRoleKey, 30*time.Second, func(ctx context.Context) (*RoleDirectory, error) {
		return s.loadDirectory(ctx)
	})
}

func (s *UserAdminService) loadDirectory(ctx context.Context) (*RoleDirectory, error) {
	admins, err := s.users.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	verifiers, err := s.users.ListByRole(ctx, domain.RoleVerifier)
	if err != nil {
		return nil, err
	}
	return &RoleDirectory{Admins: admins, Verifiers: verifiers}, nil
}

// SetRole 仅 ADMIN；目标角色只能是 ADMIN / VERIFIER（降为 USER 不在此口径内）
func (s *UserAdminService) SetRole(ctx context.Context, id domain.Identity, targetID, role string) (*domain.User, error) {
	if err := domain.Authorize(id, domain.ActionChangeUserRole); err != nil {
		return nil, err
	}
	r, err := domain.ParseRole(role)
	if err != nil || r == domain.RoleUser {
		return nil, domain.ErrInvalidRole
	}

	u, err := s.users.UpdateRole(ctx, targetID, r)
	if err != nil {
		return nil, err
	}
	s.invalidateDirectory(ctx)
	return u, nil
}

// Delete 仅 ADMIN。不级联贷款记录，owner/verifier 悬挂引用是接受的契约。
func (s *UserAdminService) Delete(ctx context.Context, id domain.Identity, targetID string) error {
	if err := domain.Authorize(id, domain.ActionDeleteUser); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	s.invalidateDirectory(ctx)
	return nil
}

func (s *UserAdminService) invalidateDirectory(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, usersByRoleKey); err != nil {
		s.log.Warn("invalidate users-by-role cache", zap.Error(err))
	}
}
