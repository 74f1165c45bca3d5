// Package jwtmw はJWTトークンの生成と検証ミドルウェアを提供します。
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration はトークンのデフォルト有効期間です。
const DefaultExpiration = 24 * time.Hour

// Generator はJWTトークン生成のインターフェースを定義します。
type Generator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// generator はGeneratorインターフェースの実装です。
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator は指定されたシークレットと有効期間でJWTジェネレーターを生成します。
func NewGenerator(secret string, expiration time.Duration) *generator {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken は標準クレーム付きの署名済みJWTトークンを生成します。
func (g *generator) GenerateToken(userID uint, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   time.Now().Add(g.expiration).Unix(),
		"iat":   time.Now().Unix(),
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
