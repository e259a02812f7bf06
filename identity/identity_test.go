package identity

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Imran-2020331101/evalia/gateway"
	"github.com/Imran-2020331101/evalia/store"
)

type mailerStub struct {
	mu    sync.Mutex
	sent  []string
	codes []string
}

func (m *mailerStub) SendVerificationEmail(to, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	m.codes = append(m.codes, otp)
	return nil
}

type env struct {
	svc    *Service
	router *gin.Engine
	db     *gorm.DB
	mailer *mailerStub
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.Open(filepath.Join(t.TempDir(), "identity.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := store.SeedRoles(db); err != nil {
		t.Fatalf("seed roles: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	auth := &gateway.JWTAuth{Key: []byte("identity-test-key")}
	mailer := &mailerStub{}
	svc := &Service{
		Users:         &store.Users{Db: db},
		Roles:         &store.Roles{Db: db},
		Challenges:    &store.Challenges{Db: db},
		Organizations: &store.Organizations{Db: db},
		Auth:          auth,
		Mailer:        mailer,
		Logger:        logger,
	}

	router := gin.New()
	router.POST("/register", svc.Register)
	router.POST("/login", svc.Login)
	router.POST("/verify-email", svc.VerifyEmail)
	router.POST("/resend-verification", svc.ResendVerification)

	authed := router.Group("", auth.AuthMiddleware())
	authed.PUT("/role", svc.UpdateRole)
	authed.GET("/profile", svc.Profile)
	authed.PATCH("/profile", svc.PatchProfile)
	authed.GET("/user/:userId", svc.UserByID)
	authed.POST("/organization", svc.CreateOrganization)
	authed.GET("/organization", svc.MyOrganizations)
	authed.GET("/organization/:organizationId", svc.OrganizationByID)
	authed.PATCH("/organization/:organizationId", svc.PatchOrganization)
	authed.DELETE("/organization/:organizationId", svc.DeleteOrganization)

	return &env{svc: svc, router: router, db: db, mailer: mailer}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// latestCode reads the pending verification code straight from the store so
// tests do not depend on mail delivery timing.
func (e *env) latestCode(t *testing.T, email string) string {
	t.Helper()
	var ch store.Challenge
	if err := e.db.Where("user_email = ?", email).Order("id desc").First(&ch).Error; err != nil {
		t.Fatalf("no challenge for %s: %v", email, err)
	}
	return ch.Code
}

func (e *env) register(t *testing.T, name, email, password string) map[string]any {
	t.Helper()
	w := e.do(t, http.MethodPost, "/register", "", gin.H{
		"name": name, "email": email, "password": password, "role": "USER",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, w.Code, w.Body.String())
	}
	return decode(t, w)
}

func (e *env) registerVerified(t *testing.T, name, email, password string) string {
	t.Helper()
	e.register(t, name, email, password)
	w := e.do(t, http.MethodPost, "/verify-email", "", gin.H{
		"email": email, "otp": e.latestCode(t, email),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("verify %s: status %d body %s", email, w.Code, w.Body.String())
	}
	return decode(t, w)["token"].(string)
}

func expireLatestChallenge(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	if err := db.Model(&store.Challenge{}).Where("user_email = ?", email).
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("expire challenge: %v", err)
	}
}
