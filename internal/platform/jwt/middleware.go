package jwtmw

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// EnvKeyJWTSecret は署名シークレットを保持する環境変数名です。
	EnvKeyJWTSecret = "JWT_SECRET"

	// ContextUserID は認証済みユーザーIDを保持するGinコンテキストキーです。
	ContextUserID = "userID"
)

// AuthRequired はJWTトークンを検証し、認証済みユーザーのみにアクセスを
// 制限するGinミドルウェアを返します。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorizationヘッダーを取得
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. 環境変数からシークレットキーを読み込み
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// サーバー設定不備（JWT_SECRET未設定）
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. JWT署名を検証（HMACのみ許可）
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. クレームからユーザーIDを取り出す
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(float64); ok { // JWTの数値はfloat64でデコードされる
				c.Set(ContextUserID, uint(sub))
			}
		}
		c.Next()
	}
}
