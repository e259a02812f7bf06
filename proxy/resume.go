package proxy

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/Imran-2020331101/evalia/apperr"
	"github.com/Imran-2020331101/evalia/gateway"
)

// resumeWrapper attaches the authenticated subject to a forwarded resume
// payload so the resume service can key its records by email.
type resumeWrapper struct {
	Email string          `json:"email"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ExtractResume forwards a raw resume payload for parsing.
func (s *Service) ExtractResume(c *gin.Context) {
	s.forwardResume(c, "/extract")
}

// SaveResume forwards the parsed resume for storage. Only when the resume
// service confirms the save does the local record flip hasResume.
func (s *Service) SaveResume(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		Abort(c, apperr.Wrap(err, apperr.ErrBadRequest, ""))
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceResume, http.MethodPost, "/save",
		resumeWrapper{Email: user.Email, Data: body})
	if err != nil {
		Abort(c, err)
		return
	}
	if res.OK() && !user.HasResume {
		user.HasResume = true
		if err := s.Users.Save(user); err != nil {
			s.Logger.WithField("email", user.Email).WithError(err).Error("resume saved downstream but local flag not persisted")
		}
	}
	res.WriteTo(c)
}

// SearchResumes forwards a basic-search query to the resume service.
func (s *Service) SearchResumes(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		Abort(c, apperr.Wrap(err, apperr.ErrBadRequest, ""))
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceResume, http.MethodPost, "/basic-search", json.RawMessage(body))
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) forwardResume(c *gin.Context, path string) {
	body, err := c.GetRawData()
	if err != nil {
		Abort(c, apperr.Wrap(err, apperr.ErrBadRequest, ""))
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceResume, http.MethodPost, path,
		resumeWrapper{Email: gateway.Email(c), Data: body})
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}
