package domain

import "errors"

// 失败分类：调用方靠 errors.Is 区分 401/403/400/404，其余一律按存储失败处理
var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUnknownSubject    = errors.New("user not found")
	ErrForbidden         = errors.New("forbidden")
	ErrRoleMismatch      = errors.New("role does not match")
	ErrInvalidStatus     = errors.New("invalid status provided")
	ErrInvalidRole       = errors.New("invalid role")
	ErrNotFound          = errors.New("not found")
	ErrEmailTaken        = errors.New("user already exists")
)
