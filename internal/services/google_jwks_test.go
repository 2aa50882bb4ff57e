package services

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWKSServer(t *testing.T, pub *rsa.PublicKey, kid string) *httptest.Server {
	t.Helper()

	jwks := map[string]interface{}{
		"keys": []map[string]string{{
			"kty": "RSA",
			"alg": "RS256",
			"use": "sig",
			"kid": kid,
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwks)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestVerifier(t *testing.T, pub *rsa.PublicKey, clientID string) *GoogleTokenVerifier {
	t.Helper()

	srv := newJWKSServer(t, pub, "test-key")
	v := &GoogleTokenVerifier{jwksURL: srv.URL, clientID: clientID}
	t.Cleanup(func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.jwks != nil {
			v.jwks.EndBackground()
		}
	})
	return v
}

func signIDToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key"
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

// Simultaneous first-time sign-ins must all verify against the same JWKS
// fetch instead of racing the lazy initialization.
func TestGoogleVerifyToken_ConcurrentFirstSignIns(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	v := newTestVerifier(t, &key.PublicKey, "notehive-client")

	idToken := signIDToken(t, key, jwt.MapClaims{
		"iss":   "https://accounts.google.com",
		"aud":   "notehive-client",
		"sub":   "108117233459266",
		"email": "student@example.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	subs := make([]string, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			claims, err := v.VerifyToken(idToken)
			errs[i] = err
			if err == nil {
				subs[i] = claims.Subject
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "108117233459266", subs[i])
	}
}

func TestGoogleVerifyToken_RejectsWrongAudience(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	v := newTestVerifier(t, &key.PublicKey, "notehive-client")

	idToken := signIDToken(t, key, jwt.MapClaims{
		"iss": "https://accounts.google.com",
		"aud": "someone-else",
		"sub": "108117233459266",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = v.VerifyToken(idToken)
	assert.Error(t, err)
}

func TestGoogleVerifyToken_RejectsForeignIssuer(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	v := newTestVerifier(t, &key.PublicKey, "notehive-client")

	idToken := signIDToken(t, key, jwt.MapClaims{
		"iss": "https://evil.example.com",
		"aud": "notehive-client",
		"sub": "108117233459266",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = v.VerifyToken(idToken)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "issuer")
}
