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

type LoanHandler struct {
	svc *service.LoanService
	log *zap.Logger
}

func NewLoanHandler(svc *service.LoanService, log *zap.Logger) *LoanHandler {
	return &LoanHandler{svc: svc, log: log}
}

// POST /api/loan/create
func (h *LoanHandler) Create(c *gin.Context) {
	var in struct {
		Amount  float64 `json:"amount"  binding:"required,gt=0"`
		Purpose string  `json:"purpose" binding:"omitempty,max=255"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failWith(c, resp.CodeBadRequest, err.Error())
		return
	}

	loan, err := h.svc.Create(c.Request.Context(), mdw.IdentityFrom(c), in.Amount, in.Purpose)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(gin.H{
		"message": "Loan application created",
		"loan":    loan,
	}))
}

// GET /api/loan/all —— 结果集按角色收窄
func (h *LoanHandler) List(c *gin.Context) {
	loans, err := h.svc.List(c.Request.Context(), mdw.IdentityFrom(c))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"loans": loans}))
}

// PUT /api/loan/verify/:id
func (h *LoanHandler) Verify(c *gin.Context) {
	loan, err := h.svc.Verify(c.Request.Context(), mdw.IdentityFrom(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			failWith(c, resp.CodeForbidden, "Only verifiers can verify applications")
			return
		}
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message": "Loan application verified",
		"loan":    loan,
	}))
}

// PUT /api/loan/reject/:id
func (h *LoanHandler) Reject(c *gin.Context) {
	loan, err := h.svc.Reject(c.Request.Context(), mdw.IdentityFrom(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			failWith(c, resp.CodeForbidden, "Only verifiers can reject applications")
			return
		}
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message": "Loan application rejected",
		"loan":    loan,
	}))
}

// PUT /api/loan/:id/status —— 通用状态变更
func (h *LoanHandler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		failWith(c, resp.CodeBadRequest, err.Error())
		return
	}

	id := mdw.IdentityFrom(c)
	loan, err := h.svc.UpdateStatus(c.Request.Context(), id, c.Param("id"), in.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			failWith(c, resp.CodeBadRequest, "Invalid status provided.")
		case errors.Is(err, domain.ErrForbidden):
			if id.Role == domain.RoleVerifier {
				failWith(c, resp.CodeForbidden, "Verifier cannot approve loans.")
			} else {
				failWith(c, resp.CodeForbidden, "Unauthorized role.")
			}
		default:
			fail(c, h.log, err)
		}
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message": "Loan application marked as " + string(loan.Status),
		"loan":    loan,
	}))
}
