package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"loan-management/internal/core/auth"
	"loan-management/internal/domain"
	resp "loan-management/internal/transport/http/response"
)

const KeyIdentity = "identity"

// AuthJWT 身份核验：Bearer 凭证 → Claims → 回查主体仍存在。
// 角色取自凭证本身（签发时固化），不取库里当前值；被删用户立即失效。
func AuthJWT(j *auth.JWTer, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "authentication required"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		u, err := users.FindByID(c.Request.Context(), claims.UID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
			return
		}
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "user not found"))
			return
		}

		c.Set(KeyIdentity, domain.Identity{SubjectID: claims.UID, Role: domain.Role(claims.Role)})
		c.Next()
	}
}

// IdentityFrom 取出鉴权中间件写入的身份；没有则为零值
func IdentityFrom(c *gin.Context) domain.Identity {
	if v, ok := c.Get(KeyIdentity); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.Identity{}
}
