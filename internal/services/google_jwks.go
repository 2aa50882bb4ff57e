package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

const googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

// GoogleClaims are the subset of Google ID-token claims we consume.
type GoogleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

// GoogleTokenVerifier validates Google ID tokens against Google's JWKS.
// The JWKS is fetched lazily on first use so startup does not depend on
// Google; the mutex makes concurrent sign-ins share one fetch and one
// background-refresh goroutine.
type GoogleTokenVerifier struct {
	jwksURL  string
	clientID string
	mu       sync.Mutex
	jwks     *keyfunc.JWKS
}

func NewGoogleTokenVerifier(clientID string) *GoogleTokenVerifier {
	return &GoogleTokenVerifier{
		jwksURL:  googleJWKSURL,
		clientID: clientID,
	}
}

func (v *GoogleTokenVerifier) keyfunc() (jwt.Keyfunc, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.jwks == nil {
		jwks, err := keyfunc.Get(v.jwksURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshRateLimit:  5 * time.Minute,
			RefreshUnknownKID: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch Google JWKS: %w", err)
		}
		v.jwks = jwks
	}
	return v.jwks.Keyfunc, nil
}

// VerifyToken checks signature, expiry, issuer and audience, and returns
// the claims.
func (v *GoogleTokenVerifier) VerifyToken(idToken string) (*GoogleClaims, error) {
	kf, err := v.keyfunc()
	if err != nil {
		return nil, err
	}

	claims := &GoogleClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, kf,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify Google identity token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid Google identity token")
	}

	iss := claims.Issuer
	if iss != "https://accounts.google.com" && iss != "accounts.google.com" {
		return nil, fmt.Errorf("invalid issuer: %s", iss)
	}
	if claims.Subject == "" {
		return nil, errors.New("missing sub claim in Google identity token")
	}

	return claims, nil
}
