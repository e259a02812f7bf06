package identity

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIssuesTemporaryToken(t *testing.T) {
	e := newEnv(t)

	res := e.register(t, "Nadia", "nadia@example.com", "Sup3rSecret")
	assert.NotEmpty(t, res["temporaryToken"])

	user := res["user"].(map[string]any)
	assert.Equal(t, "nadia@example.com", user["email"])
	assert.Equal(t, false, user["emailVerified"])
	if _, leaked := user["password"]; leaked {
		t.Fatal("password must never appear in a response")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Nadia", "nadia@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPost, "/register", "", gin.H{
		"name": "Other", "email": "Nadia@Example.com", "password": "An0therPass", "role": "USER",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decode(t, w)["code"])
}

func TestRegisterWeakPassword(t *testing.T) {
	e := newEnv(t)
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no upper", "alllower123"},
		{"no digit", "NoDigitsHere"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(t, http.MethodPost, "/register", "", gin.H{
				"name": "X", "email": "x@example.com", "password": tt.password, "role": "USER",
			})
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterUnknownRole(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/register", "", gin.H{
		"name": "X", "email": "x@example.com", "password": "Sup3rSecret", "role": "WIZARD",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Nadia", "nadia@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPost, "/login", "", gin.H{
		"email": "nadia@example.com", "password": "Sup3rSecret",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "email_unverified", decode(t, w)["code"])
}

func TestLoginAfterVerification(t *testing.T) {
	e := newEnv(t)
	e.registerVerified(t, "Nadia", "nadia@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPost, "/login", "", gin.H{
		"email": "nadia@example.com", "password": "Sup3rSecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	assert.NotEmpty(t, res["token"])

	// the session token resolves back to the account
	subject, err := e.svc.Auth.Validate(res["token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, "nadia@example.com", subject)
}

func TestLoginWrongPassword(t *testing.T) {
	e := newEnv(t)
	e.registerVerified(t, "Nadia", "nadia@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPost, "/login", "", gin.H{
		"email": "nadia@example.com", "password": "WrongPass1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["code"])
}

func TestLoginUnknownAccount(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/login", "", gin.H{
		"email": "ghost@example.com", "password": "Whatever1X",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyEmailConsumesCodeOnMismatch(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Nadia", "nadia@example.com", "Sup3rSecret")
	e.register(t, "Omar", "omar@example.com", "Sup3rSecret")
	code := e.latestCode(t, "nadia@example.com")

	// right code, wrong account: rejected and the code is burned
	w := e.do(t, http.MethodPost, "/verify-email", "", gin.H{
		"email": "omar@example.com", "otp": code,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "otp_invalid", decode(t, w)["code"])

	w = e.do(t, http.MethodPost, "/verify-email", "", gin.H{
		"email": "nadia@example.com", "otp": code,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "otp_invalid", decode(t, w)["code"])
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Nadia", "nadia@example.com", "Sup3rSecret")
	code := e.latestCode(t, "nadia@example.com")
	expireLatestChallenge(t, e.db, "nadia@example.com")

	w := e.do(t, http.MethodPost, "/verify-email", "", gin.H{
		"email": "nadia@example.com", "otp": code,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "otp_expired", decode(t, w)["code"])

	// the expired record was consumed too
	w = e.do(t, http.MethodPost, "/verify-email", "", gin.H{
		"email": "nadia@example.com", "otp": code,
	})
	assert.Equal(t, "otp_invalid", decode(t, w)["code"])
}

func TestVerifyEmailUnknownCode(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/verify-email", "", gin.H{
		"email": "nadia@example.com", "otp": "0000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "otp_invalid", decode(t, w)["code"])
}

func TestResendVerification(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Nadia", "nadia@example.com", "Sup3rSecret")
	first := e.latestCode(t, "nadia@example.com")

	w := e.do(t, http.MethodPost, "/resend-verification", "", gin.H{"email": "nadia@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	second := e.latestCode(t, "nadia@example.com")
	// a fresh record was issued; the old one still verifies until consumed
	w = e.do(t, http.MethodPost, "/verify-email", "", gin.H{
		"email": "nadia@example.com", "otp": second,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	_ = first
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	e := newEnv(t)
	e.registerVerified(t, "Nadia", "nadia@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPost, "/resend-verification", "", gin.H{"email": "nadia@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "already_verified", decode(t, w)["code"])
}

func TestUpdateRole(t *testing.T) {
	e := newEnv(t)
	token := e.registerVerified(t, "Nadia", "nadia@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPut, "/role", token, gin.H{"role": "recruiter"})
	assert.Equal(t, http.StatusOK, w.Code)

	user, err := e.svc.Users.ByEmail("nadia@example.com")
	assert.NoError(t, err)
	assert.Equal(t, []string{"RECRUITER"}, user.RoleNames())
}

func TestProtectedRouteRejectsAnonymous(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_auth_header", decode(t, w)["code"])
}
