package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"loan-management/internal/service"
	resp "loan-management/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"     binding:"omitempty,max=64"`
		Role     string `json:"role"     binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failWith(c, resp.CodeBadRequest, err.Error())
		return
	}

	out, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		Role:     in.Role,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(gin.H{
		"message": "User registered successfully",
		"user":    out.User,
		"token":   out.Token,
	}))
}

// POST /api/auth/login —— email/password/role 三元组都要对上
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"     binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failWith(c, resp.CodeBadRequest, err.Error())
		return
	}

	out, err := h.svc.Login(c.Request.Context(), in.Email, in.Password, in.Role)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message": "Login successful",
		"user":    out.User,
		"token":   out.Token,
	}))
}
