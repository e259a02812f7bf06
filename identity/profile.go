package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/Imran-2020331101/evalia/apperr"
	"github.com/Imran-2020331101/evalia/proxy"
)

// Profile returns the caller's account combined with the parsed resume held
// by the resume service. A failed or malformed resume fetch degrades to a
// null resume section, it never fails the whole request.
func (s *Service) Profile(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":   PublicProfile(user),
		"resume": s.fetchResume(c, user.Email, user.HasResume),
	})
}

// UserByID exposes the public projection of any account.
func (s *Service) UserByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		abort(c, apperr.WithMessage(apperr.ErrBadRequest, "invalid user id: "+c.Param("userId")))
		return
	}
	user, uerr := s.Users.ByID(uint(id))
	if uerr != nil {
		abort(c, uerr)
		return
	}
	c.JSON(http.StatusOK, PublicProfile(user))
}

// PatchProfile applies a sparse update to the caller's own record and
// returns the updated projection.
func (s *Service) PatchProfile(c *gin.Context) {
	var patch ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abort(c, bindingError(err))
		return
	}
	user, ok := s.caller(c)
	if !ok {
		return
	}
	patch.Apply(user)
	if err := s.Users.Save(user); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, PublicProfile(user))
}

// CandidateProfile aggregates the public projection and resume of another
// account, used by recruiters reviewing applicants.
func (s *Service) CandidateProfile(c *gin.Context) {
	user, err := s.Users.ByEmail(c.Param("candidateEmail"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":   PublicProfile(user),
		"resume": s.fetchResume(c, user.Email, user.HasResume),
	})
}

func (s *Service) fetchResume(c *gin.Context, email string, hasResume bool) json.RawMessage {
	if !hasResume || s.Forwarder == nil {
		return nil
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceResume, http.MethodPost, "/get-resume", gin.H{"email": email})
	if err != nil || !res.OK() {
		s.Logger.WithField("email", email).Warn("resume section unavailable")
		return nil
	}
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if jerr := json.Unmarshal(res.Body, &envelope); jerr != nil || !envelope.Success {
		return nil
	}
	return envelope.Data
}
