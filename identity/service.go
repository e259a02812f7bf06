// Package identity owns the user record lifecycle: registration, login,
// email verification, role assignment, and sparse profile updates.
package identity

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Imran-2020331101/evalia/apperr"
	"github.com/Imran-2020331101/evalia/gateway"
	"github.com/Imran-2020331101/evalia/mail"
	"github.com/Imran-2020331101/evalia/proxy"
	"github.com/Imran-2020331101/evalia/store"
)

type Service struct {
	Users         *store.Users
	Roles         *store.Roles
	Challenges    *store.Challenges
	Organizations *store.Organizations
	Auth          *gateway.JWTAuth
	Mailer        mail.Sender
	Forwarder     *proxy.Forwarder
	Logger        *logrus.Logger
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.Status(err), apperr.Payload(err))
}

// caller resolves the authenticated subject to its stored user record.
func (s *Service) caller(c *gin.Context) (*store.User, bool) {
	user, err := s.Users.ByEmail(gateway.Email(c))
	if err != nil {
		abort(c, err)
		return nil, false
	}
	return user, true
}
