package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"intern-dtr/backend/pkg/jwt"
	"intern-dtr/backend/pkg/redis"
	"intern-dtr/backend/pkg/response"
)

const (
	// ContextUserIDKey 认证通过后注入 gin.Context 的用户 ID 键
	ContextUserIDKey = "user_id"
	// ContextTokenJTIKey 当前访问令牌的 JTI，供登出时写入黑名单
	ContextTokenJTIKey = "token_jti"
	// ContextTokenExpKey 当前访问令牌的过期时间
	ContextTokenExpKey = "token_exp"
)

// JWTAuth JWT 认证中间件
// 校验 Authorization: Bearer <token>，只接受 access 类型令牌
// rdb 非 nil 时额外检查令牌黑名单（登出后的令牌立即失效）
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "未提供认证令牌")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, 10002, "认证令牌格式错误")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			if err == jwt.ErrTokenExpired {
				response.Unauthorized(c, 10003, "认证令牌已过期")
			} else {
				response.Unauthorized(c, 10002, "无效的认证令牌")
			}
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "令牌类型错误")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			// Redis 出错时降级放行，不阻断正常请求
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "认证令牌已失效")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextTokenJTIKey, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExpKey, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}
