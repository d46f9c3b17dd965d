package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"loan-management/internal/core/auth"
	"loan-management/internal/domain"
	"loan-management/internal/transport/http/handler"
	mdw "loan-management/internal/transport/http/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Loan      *handler.LoanHandler
	UserAdmin *handler.UserAdminHandler
}

// NewAPIEngine 组装引擎：中间件栈 + 路由表
func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, users domain.UserRepository, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(), // 前端跑在别的 origin 上
	)

	// 健康检查 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "healthy"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// 公共：注册 / 登录
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// 业务：全部走身份核验
	loan := api.Group("/loan")
	loan.Use(mdw.AuthJWT(jwter, users))

	loan.POST("/create", h.Loan.Create)
	loan.GET("/all", h.Loan.List)
	loan.PUT("/verify/:id", h.Loan.Verify)
	loan.PUT("/reject/:id", h.Loan.Reject)
	loan.PUT("/:id/status", h.Loan.UpdateStatus)

	loan.GET("/users/by-role", h.UserAdmin.UsersByRole)
	loan.PUT("/users/:id/role", h.UserAdmin.UpdateRole)
	loan.DELETE("/users/:id", h.UserAdmin.Delete)

	return r
}
