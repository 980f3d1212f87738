package middleware

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const socketTokenTTL = 24 * time.Hour

func tokenSecret() []byte {
	if secret := os.Getenv("TOKEN_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte(os.Getenv("KEY"))
}

// IssueSocketToken signs a short-lived token binding a socket.io connection
// to the logged-in user id. Returned to the client at login.
func IssueSocketToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(socketTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokenSecret())
}

// ParseSocketToken verifies a handshake token and returns the user id.
func ParseSocketToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tokenSecret(), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
