package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// defaultJWTSecret 仅作为本地开发兜底，线上从 server.jwt_secret 读取
	defaultJWTSecret  string = "wikistars-dev-secret"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims 定义了 Token 中需要包含的业务信息
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
