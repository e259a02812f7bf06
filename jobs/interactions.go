package jobs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Imran-2020331101/evalia/apperr"
	"github.com/Imran-2020331101/evalia/proxy"
)

// Apply submits an application downstream and, only on confirmed success,
// records the job id on the user. Set semantics keep the applied list and
// counter consistent even when the same request is replayed.
func (s *Service) Apply(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	jobID := c.Param("jobId")
	if user.AppliedJobs.Contains(jobID) {
		proxy.Abort(c, apperr.WithMessage(apperr.ErrConflict, "already applied to this job"))
		return
	}

	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodPost, "/apply",
		s.application(user, jobID))
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	if res.OK() {
		user.AppliedJobs = append(user.AppliedJobs, jobID)
		user.NumberOfAppliedJobs = len(user.AppliedJobs)
		if err := s.Users.Save(user); err != nil {
			// the application is committed downstream; surface the gap
			// instead of pretending the call failed
			s.Logger.WithFields(map[string]any{
				"email": user.Email,
				"job":   jobID,
			}).WithError(err).Error("application committed downstream but local record not persisted")
		} else {
			s.Logger.WithField("email", user.Email).WithField("job", jobID).Info("applied to job")
		}
	}
	res.WriteTo(c)
}

// Withdraw removes a previously recorded application. Rejected when the job
// is not in the applied list; the local removal happens only after the job
// service confirms the withdrawal.
func (s *Service) Withdraw(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	jobID := c.Param("jobId")
	if !user.AppliedJobs.Contains(jobID) {
		proxy.Abort(c, apperr.WithMessage(apperr.ErrBadRequest, "job not in applied list"))
		return
	}

	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodPost, "/withdraw",
		s.application(user, jobID))
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	if res.OK() {
		user.AppliedJobs = user.AppliedJobs.Without(jobID)
		user.NumberOfAppliedJobs = len(user.AppliedJobs)
		if err := s.Users.Save(user); err != nil {
			s.Logger.WithFields(map[string]any{
				"email": user.Email,
				"job":   jobID,
			}).WithError(err).Error("withdrawal committed downstream but local record not persisted")
		}
	}
	res.WriteTo(c)
}

// Save bookmarks a job. The posting is fetched first so a dangling id never
// enters the saved list; the second save of the same id is rejected.
func (s *Service) Save(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	jobID := c.Param("jobId")
	if user.SavedJobs.Contains(jobID) {
		proxy.Abort(c, apperr.WithMessage(apperr.ErrConflict, "job already saved"))
		return
	}

	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodGet, "/"+jobID, nil)
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	if !res.OK() {
		res.WriteTo(c)
		return
	}

	user.SavedJobs = append(user.SavedJobs, jobID)
	if err := s.Users.Save(user); err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}

// Unsave drops a bookmark. Purely local: no downstream state tracks saves.
func (s *Service) Unsave(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	jobID := c.Param("jobId")
	if !user.SavedJobs.Contains(jobID) {
		proxy.Abort(c, apperr.WithMessage(apperr.ErrBadRequest, "job not in saved list"))
		return
	}
	user.SavedJobs = user.SavedJobs.Without(jobID)
	if err := s.Users.Save(user); err != nil {
		proxy.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job removed from saved list"})
}

type shortlistRequest struct {
	CandidateIDs []string `json:"candidateIds" binding:"required"`
}

type shortlistForward struct {
	Candidates []candidateInfo `json:"candidates"`
}

// Shortlist resolves candidate ids to identity projections and forwards the
// shortlist to the job service.
func (s *Service) Shortlist(c *gin.Context) {
	s.forwardCandidates(c, "/"+c.Param("jobId")+"/shortlist")
}

// Finalist is the final-round counterpart of Shortlist.
func (s *Service) Finalist(c *gin.Context) {
	s.forwardCandidates(c, "/"+c.Param("jobId")+"/finalist")
}

func (s *Service) forwardCandidates(c *gin.Context, path string) {
	var req shortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		proxy.Abort(c, apperr.Wrap(err, apperr.ErrValidation, ""))
		return
	}

	candidates := make([]candidateInfo, 0, len(req.CandidateIDs))
	for _, id := range req.CandidateIDs {
		user, err := s.userByStringID(id)
		if err != nil {
			proxy.Abort(c, err)
			return
		}
		candidates = append(candidates, candidateInfo{ID: id, Name: user.Name, Email: user.Email})
	}

	res, err := s.Forwarder.Forward(c.Request.Context(), proxy.ServiceJob, http.MethodPost, path,
		shortlistForward{Candidates: candidates})
	if err != nil {
		proxy.Abort(c, err)
		return
	}
	res.WriteTo(c)
}
