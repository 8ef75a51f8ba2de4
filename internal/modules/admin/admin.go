package admin

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrNotConfigured      = errors.New("admin credentials are not set in the environment")
	ErrInvalidToken       = errors.New("invalid admin token")
)

// Service validates back-office credentials and issues short-lived bearer
// tokens. Tokens are stateless; nothing is persisted server-side.
type Service interface {
	Login(username, password string) (string, error)
	VerifyToken(token string) error
}

type service struct {
	username string
	password string
	secret   []byte
}

// NewService creates the admin service from the configured credentials.
func NewService(username, password, jwtSecret string) Service {
	return &service{username: username, password: password, secret: []byte(jwtSecret)}
}

func (s *service) Login(username, password string) (string, error) {
	if s.username == "" || s.password == "" {
		return "", ErrNotConfigured
	}
	if username != s.username || password != s.password {
		return "", ErrInvalidCredentials
	}

	claims := &jwt.StandardClaims{
		Subject:   "admin",
		ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *service) VerifyToken(tokenString string) error {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject != "admin" {
		return ErrInvalidToken
	}
	return nil
}
