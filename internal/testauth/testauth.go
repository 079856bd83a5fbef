// Package testauth runs a minimal OIDC issuer for test packages that need
// to exercise jwt-protected routes: a JWKS endpoint plus a token signer.
package testauth

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const keySize = 2048

// Server serves the issuer's discovery document and JSON Web Key Set, and
// signs tokens against the same key.
type Server struct {
	t *testing.T

	srv *httptest.Server

	kid     string
	privKey *rsa.PrivateKey
	signer  jose.Signer

	Issuer string
}

// NewServer generates a signing key and starts the issuer. The server is
// shut down automatically when the test finishes.
func NewServer(t *testing.T) *Server {
	t.Helper()

	kid := "test"

	key, err := rsa.GenerateKey(rand.Reader, keySize)
	require.NoError(t, err)

	signer, err := jose.NewSigner(
		jose.SigningKey{
			Algorithm: jose.RS256,
			Key:       key,
		}, (&jose.SignerOptions{}).WithType("JWT").WithHeader("kid", kid),
	)
	require.NoError(t, err)

	s := &Server{
		t:       t,
		kid:     kid,
		privKey: key,
		signer:  signer,
	}

	e := echo.New()
	e.GET("/.well-known/openid-configuration", s.handleOIDC)
	e.GET("/.well-known/jwks.json", s.handleJWKS)

	s.srv = httptest.NewServer(e)
	s.Issuer = s.srv.URL

	t.Cleanup(s.srv.Close)

	return s
}

func (s *Server) handleOIDC(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"jwks_uri": s.Issuer + "/.well-known/jwks.json",
	})
}

func (s *Server) handleJWKS(c echo.Context) error {
	return c.JSON(http.StatusOK, jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{
			{
				KeyID: s.kid,
				Key:   s.privKey,
			},
		},
	})
}

// SignSubject returns a signed token string for the subject. Additional
// claims may be provided as options.
func (s *Server) SignSubject(subject string, options ...ClaimOption) string {
	claims := jwt.Claims{
		Issuer:    s.Issuer,
		Subject:   subject,
		NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
	}

	for _, opt := range options {
		opt(&claims)
	}

	token, err := jwt.Signed(s.signer).Claims(claims).Serialize()
	require.NoError(s.t, err)

	return token
}
