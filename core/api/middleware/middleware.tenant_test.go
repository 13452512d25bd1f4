package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seed_ledger/core/common"
)

// extractToken runs bearerToken against a real request through a
// throwaway Fiber app.
func extractToken(t *testing.T, req *http.Request) (string, error) {
	t.Helper()
	app := fiber.New()

	var token string
	var tokenErr error
	app.Get("/files/:name", func(c fiber.Ctx) error {
		token, tokenErr = bearerToken(c)
		return c.SendString("ok")
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return token, tokenErr
}

func TestBearerToken_FromHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/files/a.png", nil)
	req.Header.Set("Authorization", "Bearer abc123")

	token, err := extractToken(t, req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestBearerToken_MissingCredential(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/files/a.png", nil)

	_, err := extractToken(t, req)
	assert.ErrorIs(t, err, common.ErrTokenMissing)
}

func TestBearerToken_MalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/files/a.png", nil)
	req.Header.Set("Authorization", "Token abc123")

	_, err := extractToken(t, req)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestBearerToken_QueryFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/files/a.png?Authorization=abc123", nil)

	token, err := extractToken(t, req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestSubjectLookupFailure_UnknownInBothTables(t *testing.T) {
	err := subjectLookupFailure(common.ErrNotFound, common.ErrNotFound)
	assert.ErrorIs(t, err, common.ErrSubjectNotFound)
}

func TestSubjectLookupFailure_UserLookupStorageErrorSurfaces(t *testing.T) {
	err := subjectLookupFailure(common.ErrMongoQuery, common.ErrNotFound)
	assert.ErrorIs(t, err, common.ErrMongoQuery)
}

func TestSubjectLookupFailure_AdminLookupStorageErrorSurfaces(t *testing.T) {
	err := subjectLookupFailure(common.ErrNotFound, common.ErrMongoQuery)
	assert.ErrorIs(t, err, common.ErrMongoQuery)
}
