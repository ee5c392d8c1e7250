package service

import (
	"fmt"
	"time"

	"marwad-digital-menu/hub-svc/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type roleHash struct {
	role domain.Role
	hash []byte
}

// AuthService resolves a static staff password to a role and issues a
// token that restores the role on reconnect.
type AuthService struct {
	hashes    []roleHash
	jwtSecret []byte
	jwtTTL    time.Duration
	now       func() time.Time
}

// NewAuthService hashes the configured passwords once. Roles with an empty
// password cannot log in.
func NewAuthService(passwords map[domain.Role]string, secret string, ttl time.Duration) (*AuthService, error) {
	return newAuthService(passwords, secret, ttl, bcrypt.DefaultCost)
}

func newAuthService(passwords map[domain.Role]string, secret string, ttl time.Duration, cost int) (*AuthService, error) {
	s := &AuthService{jwtSecret: []byte(secret), jwtTTL: ttl, now: time.Now}
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleKitchen, domain.RoleDelivery} {
		password := passwords[role]
		if password == "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash %s password: %w", role, err)
		}
		s.hashes = append(s.hashes, roleHash{role: role, hash: hash})
	}
	return s, nil
}

func (s *AuthService) Login(password string) (domain.Role, string, error) {
	if password == "" {
		return "", "", ErrInvalidPassword
	}
	for _, rh := range s.hashes {
		if bcrypt.CompareHashAndPassword(rh.hash, []byte(password)) != nil {
			continue
		}
		token, err := s.generateToken(rh.role)
		if err != nil {
			return "", "", fmt.Errorf("generate token: %w", err)
		}
		return rh.role, token, nil
	}
	return "", "", ErrInvalidPassword
}

func (s *AuthService) generateToken(role domain.Role) (string, error) {
	now := s.now()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(role),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *AuthService) ParseToken(tokenStr string) (domain.Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	switch role {
	case domain.RoleAdmin, domain.RoleKitchen, domain.RoleDelivery:
		return role, nil
	default:
		return "", ErrInvalidToken
	}
}
