package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultSessionExpiry is used when no positive expiry is configured.
const DefaultSessionExpiry = 24 * time.Hour

// Claims represents the session cookie claims. The session id travels as the JWT ID.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService signs and verifies session cookie tokens.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	if expiry <= 0 {
		expiry = DefaultSessionExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// NewSessionID returns a fresh opaque session id.
func NewSessionID() string {
	return uuid.New().String()
}

// GenerateSessionToken signs a token carrying sessionID.
func (s *JWTService) GenerateSessionToken(sessionID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// ExtractSessionID validates tokenString and returns the session id it carries.
func (s *JWTService) ExtractSessionID(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("session ID not found")
	}
	return claims.ID, nil
}
