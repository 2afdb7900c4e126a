// file: service/token_issuer.go

package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"livelib-api/config"
	"livelib-api/logger"
	"livelib-api/model"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints and verifies HS256 access tokens and generates opaque
// refresh secrets. It is a pure function of its configuration; issuer,
// audience, and lifetime are fixed at construction.
type TokenIssuer struct {
	secretKey []byte
	issuer    string
	audience  string
	accessTTL time.Duration
}

// NewTokenIssuer builds an issuer from the JWT configuration section.
// A missing signing secret is a startup-time misconfiguration and fails
// here, never per-request.
func NewTokenIssuer(cfg config.JWTConfig) (*TokenIssuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TokenIssuer{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		accessTTL: cfg.AccessTokenLifetime(),
	}, nil
}

// IssueAccessToken signs a short-lived access token for the user.
func (i *TokenIssuer) IssueAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		UserID: user.ID,
		Name:   user.Username,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign access token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// Verify fully validates an access token, lifetime included, and returns
// its claims. Used by the auth middleware on every authorized request; it
// never touches storage.
func (i *TokenIssuer) Verify(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// VerifyExpired validates signature, signing method, issuer, and audience
// of an access token while explicitly skipping lifetime validation. The
// caller already knows the token is expired and only needs the identity
// back to drive a refresh.
func (i *TokenIssuer) VerifyExpired(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	// WithoutClaimsValidation turns off issuer/audience checks along with
	// the lifetime check, so those two are re-checked by hand.
	if claims.Issuer != i.issuer {
		return nil, fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}
	if !containsAudience(claims.Audience, i.audience) {
		return nil, fmt.Errorf("%w: unexpected audience", ErrInvalidToken)
	}
	return claims, nil
}

// GenerateRefreshSecret produces a cryptographically random 64-byte
// value, base64-encoded. Uniqueness is entropy-based, not checked
// centrally.
func (i *TokenIssuer) GenerateRefreshSecret() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		logger.Log.WithError(err).Error("Failed to generate refresh secret")
		return "", fmt.Errorf("failed to generate refresh secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func (i *TokenIssuer) keyFunc(token *jwt.Token) (interface{}, error) {
	return i.secretKey, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
