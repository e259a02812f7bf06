package proxy

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Imran-2020331101/evalia/gateway"
	"github.com/Imran-2020331101/evalia/store"
)

// Service exposes the pass-through routes of the downstream domain services.
// Handlers resolve the caller's identity locally, then hand the request to
// the forwarder.
type Service struct {
	Forwarder *Forwarder
	Users     *store.Users
	Logger    *logrus.Logger
}

// caller loads the authenticated user's record, aborting the request when
// the subject no longer resolves to a stored user.
func (s *Service) caller(c *gin.Context) (*store.User, bool) {
	user, err := s.Users.ByEmail(gateway.Email(c))
	if err != nil {
		Abort(c, err)
		return nil, false
	}
	return user, true
}

func userID(u *store.User) string {
	return strconv.FormatUint(uint64(u.ID), 10)
}
