package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrEmptySecret el servidor no tiene JWT_SECRET configurado.
	ErrEmptySecret = errors.New("jwt: secret vacío")
	// ErrInvalidToken firma, expiración o claims inválidos.
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Claims de la sesión: identidad y rol del usuario (owner, worker o customer).
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role"`
}

// Identity datos de la sesión extraídos de un token válido.
type Identity struct {
	UserID string
	Name   string
	Role   string
}

// Generate firma un token HS256 con sujeto userID, nombre y rol.
func Generate(secret, userID, name, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Name: name,
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseIdentity valida firma y expiración y devuelve la identidad del token.
func ParseIdentity(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, ErrEmptySecret
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: sin sujeto", ErrInvalidToken)
	}
	return Identity{UserID: claims.Subject, Name: claims.Name, Role: claims.Role}, nil
}

// Parse es ParseIdentity desarmado en sus campos.
func Parse(secret, tokenString string) (userID, name, role string, err error) {
	id, err := ParseIdentity(secret, tokenString)
	if err != nil {
		return "", "", "", err
	}
	return id.UserID, id.Name, id.Role, nil
}
