package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/sneha-1019/PawfectHomes/internal/config"
	"github.com/sneha-1019/PawfectHomes/internal/domain"
	api "github.com/sneha-1019/PawfectHomes/internal/http"
	"github.com/sneha-1019/PawfectHomes/internal/oauth"
	"github.com/sneha-1019/PawfectHomes/internal/security"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeUploader struct{}

func (fakeUploader) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	io.Copy(io.Discard, r)
	return "https://img.test/" + filename, nil
}

type fakeGoogle struct {
	user *oauth.GoogleUser
	err  error
}

func (f *fakeGoogle) ExchangeAndVerify(ctx context.Context, code string) (*oauth.GoogleUser, error) {
	return f.user, f.err
}

type env struct {
	store  *memStore
	google *fakeGoogle
	cfg    config.Config
	router *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := newMemStore()
	g := &fakeGoogle{}
	cfg := config.Config{
		JWTSecret:   "test_secret",
		JWTTTLHours: 1,
		AdminEmail:  "admin@pawfect.test",
	}
	h := api.NewHandler(st, nil, fakeUploader{}, g, cfg)
	var rl *api.RateLimiter
	return &env{store: st, google: g, cfg: cfg, router: api.NewRouter(h, rl)}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (e *env) seedUser(t *testing.T, name, email string, verified bool) *domain.User {
	t.Helper()
	hash, err := security.HashPassword("password123")
	require.NoError(t, err)
	u := &domain.User{
		Name:            name,
		Email:           email,
		PasswordHash:    hash,
		IsEmailVerified: verified,
	}
	require.NoError(t, e.store.CreateUser(context.Background(), u))
	return u
}

func (e *env) token(t *testing.T, u *domain.User) string {
	t.Helper()
	tok, err := security.MakeAccess(e.cfg.JWTSecret, u.ID.Hex(), u.Email, time.Hour)
	require.NoError(t, err)
	return tok
}

func (e *env) seedAdmin(t *testing.T) (*domain.User, string) {
	t.Helper()
	u := e.seedUser(t, "Admin", e.cfg.AdminEmail, true)
	return u, e.token(t, u)
}

func (e *env) seedPet(t *testing.T, owner *domain.User, verified bool, status string) *domain.Pet {
	t.Helper()
	p := &domain.Pet{
		Name:        "Bruno",
		Species:     "Dog",
		Breed:       "Labrador",
		Age:         2,
		Gender:      "Male",
		Size:        "Large",
		Color:       "Brown",
		Description: "Friendly and playful",
		Images:      []string{"https://img.test/bruno.jpg"},
		Status:      status,
		UploadedBy:  owner.ID,

		VerifiedByAdmin: verified,
	}
	require.NoError(t, e.store.CreatePet(context.Background(), p))
	return p
}

// petMultipart builds a well-formed create-listing form with one image.
func petMultipart(t *testing.T, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("images", "pic.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really a jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (e *env) doMultipart(t *testing.T, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
