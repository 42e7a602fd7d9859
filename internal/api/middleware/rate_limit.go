package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/redis"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
)

// RateLimit Redis を使った固定ウィンドウレート制限ミドルウェア
// rdb が nil、または Redis がエラーを返した場合は制限せずに通す
func RateLimit(rdb *redis.Client, logger *zap.Logger, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Redis 障害時はレート制限を諦めてサービスを継続する
			logger.Warn("レート制限の確認に失敗", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "リクエストが多すぎます。しばらく待ってから再試行してください")
			c.Abort()
			return
		}

		c.Next()
	}
}
