package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdminAuthService struct {
	created []string
}

func (s *stubAdminAuthService) Login(email, password string) (string, error) {
	return "", errors.New("invalid credentials")
}

func (s *stubAdminAuthService) CreateAdmin(email, password string) error {
	s.created = append(s.created, email)
	return nil
}

func (s *stubAdminAuthService) EnsureAdmin(email, password string) error {
	return nil
}

func newTestRouter(stub *stubAdminAuthService) *mux.Router {
	return NewRouter(
		NewUserRequestHandler(nil, nil, nil),
		NewAdminHandler(nil, nil, nil),
		NewAdminAuthHandler(stub),
	)
}

func adminToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"admin_id": 1,
		"email":    "admin@example.com",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestRegisterRequiresAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	stub := &stubAdminAuthService{}
	router := newTestRouter(stub)

	body := `{"email":"new@example.com","password":"secret"}`
	req := httptest.NewRequest("POST", "/admin/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, stub.created, "registration must not run without an admin token")

	req = httptest.NewRequest("POST", "/admin/register", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "test-secret"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"new@example.com"}, stub.created)
}

func TestLoginStaysPublic(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter(&stubAdminAuthService{})

	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(`{"email":"a@b.c","password":"nope"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// The 401 comes from the credentials check, not from the JWT guard.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}
