// Package jobs mediates between the job service and the local identity
// record. Stateful operations call downstream first and commit the local
// mutation only after the job service confirms success, so the user record
// never claims an action the domain service did not commit.
package jobs

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Imran-2020331101/evalia/apperr"
	"github.com/Imran-2020331101/evalia/gateway"
	"github.com/Imran-2020331101/evalia/proxy"
	"github.com/Imran-2020331101/evalia/store"
)

type Service struct {
	Users         *store.Users
	Organizations *store.Organizations
	Forwarder     *proxy.Forwarder
	Logger        *logrus.Logger
}

// applicationRequest is the identity context forwarded with apply/withdraw
// calls.
type applicationRequest struct {
	JobID       string `json:"jobId"`
	Email       string `json:"email"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// candidateInfo is the projection of a local user forwarded with
// shortlist/finalist calls.
type candidateInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Service) caller(c *gin.Context) (*store.User, bool) {
	user, err := s.Users.ByEmail(gateway.Email(c))
	if err != nil {
		proxy.Abort(c, err)
		return nil, false
	}
	return user, true
}

func userID(u *store.User) string {
	return strconv.FormatUint(uint64(u.ID), 10)
}

func (s *Service) userByStringID(id string) (*store.User, error) {
	parsed, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, apperr.WithMessage(apperr.ErrBadRequest, "invalid candidate id: "+id)
	}
	return s.Users.ByID(uint(parsed))
}

func (s *Service) application(u *store.User, jobID string) applicationRequest {
	return applicationRequest{
		JobID:       jobID,
		Email:       u.Email,
		UserID:      userID(u),
		DisplayName: u.Name,
	}
}
