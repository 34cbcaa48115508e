// Package auth gates the administrative endpoints (imports, snapshot writes).
// Callers authenticate with either the shared API key or a signed service
// token.
package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Verifier validates admin credentials on incoming requests.
type Verifier struct {
	apiKey    string
	jwtSecret []byte
	issuer    string
	logger    *zap.Logger
}

func NewVerifier(apiKey, jwtSecret, issuer string, logger *zap.Logger) *Verifier {
	return &Verifier{
		apiKey:    apiKey,
		jwtSecret: []byte(jwtSecret),
		issuer:    issuer,
		logger:    logger,
	}
}

// ServiceClaims are the claims carried by service tokens.
type ServiceClaims struct {
	Service string `json:"svc,omitempty"`
	jwt.RegisteredClaims
}

// IssueServiceToken signs a short-lived token for a named service caller.
func (v *Verifier) IssueServiceToken(service string, ttl time.Duration) (string, error) {
	if len(v.jwtSecret) == 0 {
		return "", fmt.Errorf("jwt secret not configured")
	}

	now := time.Now().UTC()
	claims := ServiceClaims{
		Service: service,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   service,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.jwtSecret)
}

// VerifyServiceToken validates a bearer token's signature, expiry and issuer.
func (v *Verifier) VerifyServiceToken(tokenString string) (*ServiceClaims, error) {
	if len(v.jwtSecret) == 0 {
		return nil, fmt.Errorf("jwt secret not configured")
	}

	claims := &ServiceClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.jwtSecret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// checkAPIKey compares in constant time.
func (v *Verifier) checkAPIKey(candidate string) bool {
	if v.apiKey == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v.apiKey), []byte(candidate)) == 1
}

// Authenticate checks a request for either the x-api-key header or a Bearer
// service token.
func (v *Verifier) Authenticate(r *http.Request) error {
	if v.checkAPIKey(r.Header.Get("x-api-key")) {
		return nil
	}

	authHeader := r.Header.Get("Authorization")
	if bearer, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		if _, err := v.VerifyServiceToken(bearer); err == nil {
			return nil
		} else {
			v.logger.Debug("Service token rejected", zap.Error(err))
		}
	}

	return fmt.Errorf("missing or invalid credentials")
}
