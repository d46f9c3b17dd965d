package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"loan-management/internal/domain"
	"loan-management/internal/service"
	mdw "loan-management/internal/transport/http/middleware"
	resp "loan-management/internal/transport/http/response"
)

type UserAdminHandler struct {
	svc *service.UserAdminService
	log *zap.Logger
}

func NewUserAdminHandler(svc *service.UserAdminService, log *zap.Logger) *UserAdminHandler {
	return &UserAdminHandler{svc: svc, log: log}
}

// GET /api/loan/users/by-role
func (h *UserAdminHandler) UsersByRole(c *gin.Context) {
	dir, err := h.svc.UsersByRole(c.Request.Context(), mdw.IdentityFrom(c))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(dir))
}

// PUT /api/loan/users/:id/role —— 仅 ADMIN，目标角色 ADMIN/VERIFIER
func (h *UserAdminHandler) UpdateRole(c *gin.Context) {
	var in struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failWith(c, resp.CodeBadRequest, err.Error())
		return
	}

	u, err := h.svc.SetRole(c.Request.Context(), mdw.IdentityFrom(c), c.Param("id"), in.Role)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRole) {
			failWith(c, resp.CodeBadRequest, "Invalid role")
			return
		}
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message": "Role updated",
		"user":    u,
	}))
}

// DELETE /api/loan/users/:id —— 仅 ADMIN；不清理其名下贷款引用
func (h *UserAdminHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), mdw.IdentityFrom(c), c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"message": "User deleted successfully"}))
}
