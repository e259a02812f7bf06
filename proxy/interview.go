package proxy

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/Imran-2020331101/evalia/apperr"
)

func (s *Service) AllInterviews(c *gin.Context) {
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceInterview, http.MethodGet, "/", nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

// UserInterviews lists the interviews scheduled for the authenticated user.
func (s *Service) UserInterviews(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceInterview, http.MethodGet, "/user/"+userID(user), nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) InterviewByID(c *gin.Context) {
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceInterview, http.MethodGet, "/"+c.Param("interviewId"), nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

// AddTranscript appends a transcript chunk to a running interview.
func (s *Service) AddTranscript(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		Abort(c, apperr.Wrap(err, apperr.ErrBadRequest, ""))
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceInterview, http.MethodPut,
		"/"+c.Param("interviewId")+"/transcript", json.RawMessage(body))
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) InterviewEvaluation(c *gin.Context) {
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceInterview, http.MethodGet,
		"/"+c.Param("interviewId")+"/evaluation", nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

// CompatibilityReview fetches a stored candidate/job compatibility review.
func (s *Service) CompatibilityReview(c *gin.Context) {
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceCompatibility, http.MethodGet,
		"/"+c.Param("reviewId"), nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}
