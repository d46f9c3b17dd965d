package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"loan-management/internal/domain"
	resp "loan-management/internal/transport/http/response"
)

// codeOf 失败分类 → 错误码。未识别的一律按存储失败归 500。
func codeOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredential),
		errors.Is(err, domain.ErrUnknownSubject):
		return resp.CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return resp.CodeForbidden
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrRoleMismatch),
		errors.Is(err, domain.ErrEmailTaken):
		return resp.CodeBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return resp.CodeNotFound
	default:
		return resp.CodeServerError
	}
}

// fail 统一落错：500 记日志且不向调用方漏内部细节
func fail(c *gin.Context, log *zap.Logger, err error) {
	code := codeOf(err)
	msg := err.Error()
	if code == resp.CodeServerError {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		msg = "internal error"
	}
	c.JSON(resp.HTTPStatus(code), resp.Error(code, msg))
}

func failWith(c *gin.Context, code int, msg string) {
	c.JSON(resp.HTTPStatus(code), resp.Error(code, msg))
}
