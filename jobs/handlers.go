package jobs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/Imran-2020331101/evalia/apperr"
	"github.com/Imran-2020331101/evalia/proxy"
	"github.com/Imran-2020331101/evalia/store"
)

// ActiveJobs lists every open posting.
func (s *Service) ActiveJobs(c *gin.Context) {
	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodGet, "/", nil)
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}

// OrganizationJobs lists the postings of one organization. Restricted to
// callers who own at least one organization.
func (s *Service) OrganizationJobs(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	if !user.HasAnyOrganization {
		proxy.Abort(c, apperr.WithMessage(apperr.ErrNotAuthorized, "user does not have any organization"))
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodGet,
		"/organization/"+c.Param("organizationId"), nil)
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}

// AppliedJobs resolves the locally held applied-job ids in one downstream
// call. An empty list short-circuits without touching the network.
func (s *Service) AppliedJobs(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	s.forwardIDList(c, "/user/applied", user.AppliedJobs)
}

// SavedJobs is the saved-list counterpart of AppliedJobs.
func (s *Service) SavedJobs(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	s.forwardIDList(c, "/user/saved", user.SavedJobs)
}

func (s *Service) forwardIDList(c *gin.Context, path string, ids store.StringList) {
	if len(ids) == 0 {
		c.Data(http.StatusOK, "application/json", []byte("[]"))
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodPost, path, []string(ids))
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}

// CreateJob stamps company info and the creator's id onto the posting before
// forwarding it.
func (s *Service) CreateJob(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	org, err := s.Organizations.ByID(c.Param("organizationId"))
	if err != nil {
		proxy.Abort(c, err)
		return
	}

	var posting map[string]any
	if err := c.ShouldBindJSON(&posting); err != nil {
		proxy.Abort(c, apperr.Wrap(err, apperr.ErrBadRequest, ""))
		return
	}
	posting["companyInfo"] = map[string]string{
		"organizationId":   org.ID,
		"ownerEmail":       user.Email,
		"organizationName": org.OrganizationName,
	}
	posting["createdBy"] = userID(user)

	s.Logger.WithFields(map[string]any{
		"email":        user.Email,
		"organization": org.ID,
	}).Info("job creation request")

	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodPost, "/", posting)
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) JobByID(c *gin.Context) {
	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodGet, "/"+c.Param("jobId"), nil)
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) DeleteJob(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodDelete,
		"/"+c.Param("jobId")+"?email="+user.Email, nil)
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}

// GenerateInterviewQuestions forwards a question-generation request.
func (s *Service) GenerateInterviewQuestions(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		proxy.Abort(c, apperr.Wrap(err, apperr.ErrBadRequest, ""))
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodPost,
		"/generate/interview-questions", json.RawMessage(body))
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) InterviewQuestionsOfJob(c *gin.Context) {
	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodGet,
		"/"+c.Param("jobId")+"/interview-questions", nil)
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}

// JobSuggestions asks the job service for postings matching the caller's
// profile.
func (s *Service) JobSuggestions(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodGet,
		"/candidates/"+userID(user)+"/suggestions", nil)
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}
