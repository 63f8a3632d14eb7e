package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC key accepted without a warning.
const MinSecretLength = 32

var registeredClaims = map[string]struct{}{
	"sub": {}, "exp": {}, "iat": {}, "iss": {}, "nbf": {}, "aud": {}, "jti": {},
}

// Claims is the decoded content of an access token. Extra holds additional
// top-level claims; values must be string, bool, int, int64 or float64.
// Numbers come back from Verify as float64.
type Claims struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Extra     map[string]any
}

// TokenConfig configures a TokenManager.
type TokenConfig struct {
	Secret     []byte
	Algorithm  string // HS256, HS384 or HS512
	DefaultTTL time.Duration
	Issuer     string
}

// TokenManager issues and verifies HMAC-signed JWTs. It holds no mutable
// state and is safe for concurrent use.
type TokenManager struct {
	method     jwt.SigningMethod
	secret     []byte
	defaultTTL time.Duration
	issuer     string
	now        func() time.Time
}

// NewTokenManager validates cfg and returns a manager for it.
func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret", ErrTokenConfig)
	}
	if cfg.DefaultTTL <= 0 {
		return nil, fmt.Errorf("%w: default ttl must be positive", ErrTokenConfig)
	}

	var method jwt.SigningMethod
	switch cfg.Algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrTokenConfig, cfg.Algorithm)
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &TokenManager{
		method:     method,
		secret:     secret,
		defaultTTL: cfg.DefaultTTL,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}, nil
}

// Issue signs claims with the configured default TTL.
func (m *TokenManager) Issue(claims Claims) (string, error) {
	return m.IssueWithTTL(claims, m.defaultTTL)
}

// IssueWithTTL signs claims expiring at now+ttl. A zero or negative ttl
// yields a token that is already expired. Subject is required; IssuedAt,
// ExpiresAt and Issuer in claims are ignored.
func (m *TokenManager) IssueWithTTL(claims Claims, ttl time.Duration) (string, error) {
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrTokenIssuance)
	}

	mc := make(jwt.MapClaims, len(claims.Extra)+4)
	for k, v := range claims.Extra {
		if _, reserved := registeredClaims[k]; reserved {
			return "", fmt.Errorf("%w: extra claim %q is reserved", ErrTokenIssuance, k)
		}
		switch v.(type) {
		case string, bool, int, int64, float64:
		default:
			return "", fmt.Errorf("%w: extra claim %q has unsupported type %T", ErrTokenIssuance, k, v)
		}
		mc[k] = v
	}

	now := m.now()
	mc["sub"] = claims.Subject
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(ttl).Unix()
	if m.issuer != "" {
		mc["iss"] = m.issuer
	}

	signed, err := jwt.NewWithClaims(m.method, mc).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenIssuance, err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, expiry (no leeway) and issuer, and
// returns the decoded claims. Every failure wraps ErrTokenInvalid.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	mc := jwt.MapClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, mc, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, mapJWTError(err)
	}

	sub, err := mc.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	claims := &Claims{Subject: sub}
	if exp, _ := mc.GetExpirationTime(); exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, _ := mc.GetIssuedAt(); iat != nil {
		claims.IssuedAt = iat.Time
	}
	claims.Issuer, _ = mc.GetIssuer()

	for k, v := range mc {
		if _, reserved := registeredClaims[k]; reserved {
			continue
		}
		if claims.Extra == nil {
			claims.Extra = make(map[string]any)
		}
		claims.Extra[k] = v
	}

	return claims, nil
}

func mapJWTError(err error) error {
	var reason string
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		reason = "expired"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		reason = "missing claim"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		reason = "bad signature"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		reason = "unverifiable"
	case errors.Is(err, jwt.ErrTokenMalformed):
		reason = "malformed"
	default:
		reason = "rejected"
	}
	return fmt.Errorf("%w: %s: %w", ErrTokenInvalid, reason, err)
}
