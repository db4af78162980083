package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh tokens
// are signed with separate HMAC secrets so that a compromised secret for
// one token class cannot forge the other.
type JWTServiceImpl struct {
	accessSecret    []byte
	refreshSecret   []byte
	issuer          string
	audience        string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer, audience string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:    []byte(accessSecret),
		refreshSecret:   []byte(refreshSecret),
		issuer:          issuer,
		audience:        audience,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"iss":     j.issuer,
		"aud":     j.audience,
		"iat":     now.Unix(),
		"exp":     now.Add(j.accessTokenTTL).Unix(),
		"jti":     j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.accessSecret)
}

// GenerateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateRefreshToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iss":     j.issuer,
		"aud":     j.audience,
		"iat":     now.Unix(),
		"exp":     now.Add(j.refreshTokenTTL).Unix(),
		"jti":     j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.refreshSecret)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, j.accessSecret)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, j.refreshSecret)
}

// AccessTTLSeconds implements domain.TokenService
func (j *JWTServiceImpl) AccessTTLSeconds() int64 {
	return int64(j.accessTokenTTL.Seconds())
}

// validateToken validates a JWT token against the given secret and returns
// its claims. Expiry is reported as ErrTokenExpired; every other failure
// (bad signature, wrong issuer or audience, malformed claims) collapses
// into ErrTokenInvalid.
func (j *JWTServiceImpl) validateToken(tokenString string, secret []byte) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return secret, nil
	}, jwt.WithIssuer(j.issuer), jwt.WithAudience(j.audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	tokenClaims := &domain.TokenClaims{
		UserID:    uint(userID),
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}

	// Email and role are only present on access tokens.
	if email, ok := claims["email"].(string); ok {
		tokenClaims.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		tokenClaims.Role = domain.Role(role)
	}

	return tokenClaims, nil
}
