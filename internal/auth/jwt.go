package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Token roles
const (
	RoleShopper = "shopper"
	RoleAdmin   = "admin"
)

// Claims represents JWT claims. Shopper tokens carry the session id,
// admin tokens carry the admin email.
type Claims struct {
	SessionID string `json:"session_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token operations
type JWTService struct {
	secretKey          []byte
	sessionTokenExpiry time.Duration
	adminTokenExpiry   time.Duration
}

func NewJWTService(secretKey string, sessionExpiry, adminExpiry time.Duration) *JWTService {
	return &JWTService{
		secretKey:          []byte(secretKey),
		sessionTokenExpiry: sessionExpiry,
		adminTokenExpiry:   adminExpiry,
	}
}

// GenerateSessionToken issues a shopper token bound to sessionID
func (s *JWTService) GenerateSessionToken(sessionID string) (string, time.Time, error) {
	return s.sign(Claims{SessionID: sessionID, Role: RoleShopper}, sessionID, s.sessionTokenExpiry)
}

// GenerateAdminToken issues a back-office token
func (s *JWTService) GenerateAdminToken(email string) (string, time.Time, error) {
	return s.sign(Claims{Email: email, Role: RoleAdmin}, email, s.adminTokenExpiry)
}

func (s *JWTService) sign(claims Claims, subject string, expiry time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiry)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		Subject:   subject,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a token of any role and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateSessionToken returns the session id of a shopper token
func (s *JWTService) ValidateSessionToken(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Role != RoleShopper || claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}

func (s *JWTService) GetSessionTokenExpiry() time.Duration {
	return s.sessionTokenExpiry
}

func (s *JWTService) GetAdminTokenExpiry() time.Duration {
	return s.adminTokenExpiry
}
