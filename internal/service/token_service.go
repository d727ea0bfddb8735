package service

import (
	"fmt"
	"time"

	"alliance-bank/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTTokenService implements ports.TokenService using HS256 JWT.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed JWT. memberID binds the token to one member and
// is required for the member role.
func (s *JWTTokenService) Generate(subject string, role ports.Role, memberID *uuid.UUID) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("subject is required")
	}
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("unknown role %q", role)
	}
	if role == ports.RoleMember && memberID == nil {
		return "", time.Time{}, fmt.Errorf("member tokens need a member id")
	}

	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
		"iss":  s.issuer,
	}
	if memberID != nil {
		claims["mid"] = memberID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses and validates a JWT token, returning the claims.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("missing subject claim")
	}

	roleClaim, _ := claims["role"].(string)
	role := ports.Role(roleClaim)
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role claim %q", roleClaim)
	}

	out := &ports.TokenClaims{Subject: sub, Role: role}
	if mid, ok := claims["mid"].(string); ok {
		id, err := uuid.Parse(mid)
		if err != nil {
			return nil, fmt.Errorf("invalid member ID in token: %w", err)
		}
		out.MemberID = &id
	}
	if role == ports.RoleMember && out.MemberID == nil {
		return nil, fmt.Errorf("member token without member id")
	}

	return out, nil
}
