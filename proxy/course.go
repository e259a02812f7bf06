package proxy

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/Imran-2020331101/evalia/apperr"
	"github.com/Imran-2020331101/evalia/gateway"
)

// CourseSuggestions asks the course service for suggestions tailored to the
// authenticated candidate.
func (s *Service) CourseSuggestions(c *gin.Context) {
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceCourse, http.MethodGet,
		"/suggestions?candidateEmail="+url.QueryEscape(gateway.Email(c)), nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) SaveCourse(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		Abort(c, apperr.Wrap(err, apperr.ErrBadRequest, ""))
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceCourse, http.MethodPost,
		"/candidate/"+userID(user)+"/save", json.RawMessage(body))
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) SavedCourses(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceCourse, http.MethodGet,
		"/candidate/"+userID(user)+"/saved/all", nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) DeleteCourse(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceCourse, http.MethodDelete,
		"/candidate/"+userID(user)+"/delete/"+c.Param("videoId"), nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}
