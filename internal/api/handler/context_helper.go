package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/jwt"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
)

// MustGetUserID Gin コンテキストから user_id を安全に取り出す。
// JWT ミドルウェアが注入していない場合は 401 を書き込み false を返す。
// 呼び出し側は ok=false のとき即 return すること
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未認証です")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未認証です")
		return "", false
	}
	return s, true
}

// MustGetRole Gin コンテキストから role を安全に取り出す
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未認証です")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未認証です")
		return "", false
	}
	return s, true
}

// MustGetClaims Gin コンテキストから JWT クレームを安全に取り出す
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("jwt_claims")
	if !exists {
		response.Unauthorized(c, 10002, "未認証です")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "未認証です")
		return nil, false
	}
	return claims, true
}
