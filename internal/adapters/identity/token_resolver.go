// Package identity resolves the active user's role from a campus SSO token.
// The desktop app receives the token at login; navigation only cares about
// the role claim inside it.
package identity

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campus-event-manager/navigation-service/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid sso token")

// RoleFromToken validates an RS256-signed SSO token against the campus
// public key and maps its role claim onto a navigation role.
func RoleFromToken(tokenString string, publicKey *rsa.PublicKey) (domain.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return publicKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse sso token: %w", err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: unexpected claims shape", ErrInvalidToken)
	}

	roleClaim, ok := claims["role"].(string)
	if !ok || roleClaim == "" {
		return "", fmt.Errorf("%w: missing role claim", ErrInvalidToken)
	}

	role, err := domain.ParseRole(roleClaim)
	if err != nil {
		return "", fmt.Errorf("sso role claim: %w", err)
	}
	return role, nil
}

// RoleFromTokenFile reads a token from disk, typically dropped there by the
// campus login helper, and resolves it.
func RoleFromTokenFile(tokenPath string, publicKey *rsa.PublicKey) (domain.Role, error) {
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return "", fmt.Errorf("read sso token: %w", err)
	}
	return RoleFromToken(strings.TrimSpace(string(data)), publicKey)
}

// LoadPublicKey parses the PEM-encoded campus signing key.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return key, nil
}
