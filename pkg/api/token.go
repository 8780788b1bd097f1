package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 24 * 7 * time.Hour

// TokenService issues the signed tokens the portal API authenticates with
type TokenService struct {
	secretKey []byte
}

func NewTokenService(secretKey string) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
	}
}

// GenerateToken signs a token identifying a roster member
func (s *TokenService) GenerateToken(memberID, fullName string) (string, error) {
	claims := jwt.MapClaims{
		"member_id": memberID,
		"name":      fullName,
		"exp":       time.Now().Add(tokenLifetime).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
