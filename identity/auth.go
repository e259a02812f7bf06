package identity

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Imran-2020331101/evalia/apperr"
	"github.com/Imran-2020331101/evalia/gateway"
	"github.com/Imran-2020331101/evalia/store"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type verifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type resendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Register creates a disabled-for-login account, emails a one time code and
// hands back a short lived token scoped to the verification flow.
func (s *Service) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, bindingError(err))
		return
	}
	if !validatePassword(req.Password) {
		abort(c, apperr.WithFields(apperr.ErrValidation, map[string]any{
			"password": "password must be at least 8 characters with upper case, lower case and digit",
		}))
		return
	}

	email := strings.ToLower(req.Email)
	exists, err := s.Users.ExistsByEmail(email)
	if err != nil {
		abort(c, err)
		return
	}
	if exists {
		abort(c, apperr.WithMessage(apperr.ErrConflict, "an account with this email already exists"))
		return
	}

	role, err := s.Roles.ByName(strings.ToUpper(req.Role))
	if err != nil {
		abort(c, apperr.WithMessage(apperr.ErrValidation, "unknown role: "+req.Role))
		return
	}

	user := &store.User{
		Name:     req.Name,
		Email:    email,
		Password: req.Password,
		Enabled:  true,
		Roles:    []store.Role{*role},
	}
	if err := user.HashPassword(); err != nil {
		abort(c, err)
		return
	}
	if err := s.Users.Create(user); err != nil {
		abort(c, err)
		return
	}

	if err := s.issueChallenge(email); err != nil {
		s.Logger.WithError(err).WithField("email", email).Error("verification email not sent")
	}

	token, err := s.Auth.Issue(email, gateway.TokenTemporary)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        "registered, check your email for the verification code",
		"temporaryToken": token,
		"user":           PublicProfile(user),
	})
}

// Login authenticates by email and password. Accounts that never confirmed
// their email are rejected with a dedicated code so the client can reroute
// to the verification flow; federated accounts skip that check.
func (s *Service) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, bindingError(err))
		return
	}

	user, err := s.Users.ByEmail(req.Email)
	if err != nil {
		abort(c, err)
		return
	}
	if !user.EmailVerified && !user.IsFederated() {
		abort(c, apperr.ErrUnverified)
		return
	}
	if err := user.ComparePassword(req.Password); err != nil {
		abort(c, apperr.ErrInvalidCredentials)
		return
	}

	token, err := s.Auth.Issue(user.Email, gateway.TokenSession)
	if err != nil {
		abort(c, err)
		return
	}
	s.Logger.WithFields(logrus.Fields{"email": user.Email}).Info("login")
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  PublicProfile(user),
	})
}

// VerifyEmail consumes a one time code. The challenge record is removed on
// every terminal outcome, including an email mismatch, so a code is never
// usable twice.
func (s *Service) VerifyEmail(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, bindingError(err))
		return
	}

	challenge, err := s.Challenges.ByCode(req.OTP)
	if err != nil {
		abort(c, err)
		return
	}
	if challenge.Expired(time.Now()) {
		if err := s.Challenges.Delete(challenge); err != nil {
			s.Logger.WithError(err).Warn("expired challenge not removed")
		}
		abort(c, apperr.ErrOTPExpired)
		return
	}

	email := strings.ToLower(req.Email)
	verified := false
	if challenge.UserEmail == email {
		user, uerr := s.Users.ByEmail(email)
		if uerr != nil {
			abort(c, uerr)
			return
		}
		if user.EmailVerified {
			abort(c, apperr.ErrAlreadyVerified)
			return
		}
		user.EmailVerified = true
		if err := s.Users.Save(user); err != nil {
			abort(c, err)
			return
		}
		verified = true
	}
	if err := s.Challenges.Delete(challenge); err != nil {
		s.Logger.WithError(err).Warn("challenge not removed")
	}
	if !verified {
		abort(c, apperr.ErrOTPInvalid)
		return
	}

	token, err := s.Auth.Issue(email, gateway.TokenSession)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "email verified",
		"token":   token,
	})
}

// ResendVerification issues a fresh code for an unverified account.
func (s *Service) ResendVerification(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, bindingError(err))
		return
	}

	user, err := s.Users.ByEmail(req.Email)
	if err != nil {
		abort(c, err)
		return
	}
	if user.EmailVerified {
		abort(c, apperr.ErrAlreadyVerified)
		return
	}
	if err := s.issueChallenge(user.Email); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

// UpdateRole replaces the caller's role set with the single named role.
func (s *Service) UpdateRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, bindingError(err))
		return
	}
	user, ok := s.caller(c)
	if !ok {
		return
	}
	role, err := s.Roles.ByName(strings.ToUpper(req.Role))
	if err != nil {
		abort(c, err)
		return
	}
	if err := s.Users.ReplaceRoles(user, []store.Role{*role}); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated", "roles": []string{role.Name}})
}

func (s *Service) issueChallenge(email string) error {
	code, err := s.Challenges.Issue(email)
	if err != nil {
		return err
	}
	go func() {
		if err := s.Mailer.SendVerificationEmail(email, code); err != nil {
			s.Logger.WithError(err).WithField("email", email).Error("mail delivery failed")
		}
	}()
	return nil
}
