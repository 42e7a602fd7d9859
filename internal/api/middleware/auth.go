package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/jwt"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/redis"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
)

// JWTAuth JWT 認証ミドルウェア
// Authorization: Bearer <token> からアクセストークンを取り出して検証する。
// rdb が nil でなければブラックリスト（ログアウト済みトークン）も照合する
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "認証ヘッダーがありません")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "認証ヘッダーの形式が不正です")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "トークンが無効または期限切れです")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "トークン種別が不正です")
			c.Abort()
			return
		}

		if rdb != nil {
			if blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && blacklisted {
				response.Unauthorized(c, 10002, "トークンは失効しています")
				c.Abort()
				return
			}
		}

		// ユーザー情報をコンテキストに注入
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("jwt_claims", claims)

		c.Next()
	}
}

// RoleAuth 役割制限ミドルウェア
// 現在のユーザーが指定役割のいずれかを持つか確認する
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "未認証です")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "この操作を行う権限がありません")
		c.Abort()
	}
}
