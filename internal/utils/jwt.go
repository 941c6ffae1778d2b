package utils

import (
	"errors"
	"fmt"
	"time"

	"nubenet/internal/config"
	"nubenet/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims 登录会话的签名内容：用户 id、用户名、角色
type SessionClaims struct {
	UserID   uint       `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	Type     string     `json:"type"` // "session"
	jwt.RegisteredClaims
}

func getSecret() []byte {
	return []byte(config.Get().Session.Secret)
}

func GenerateSessionToken(id uint, username string, role model.Role, duration time.Duration) (string, error) {
	claims := SessionClaims{
		UserID:   id,
		Username: username,
		Role:     role,
		Type:     "session",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			Issuer:    "nubenet",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecret())
}

func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		if claims.Type != "session" {
			return nil, errors.New("invalid token type")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
