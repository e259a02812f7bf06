package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Imran-2020331101/evalia/apperr"
)

// CtxEmail is the gin context key under which AuthMiddleware stores the
// authenticated subject.
const CtxEmail = "email"

// AuthMiddleware authenticates each inbound request against the credential
// engine and stores the subject email on the context. Downstream handlers
// must still resolve the user record to authorize the operation.
func (j *JWTAuth) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := j.SubjectFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(apperr.Status(err), apperr.Payload(err))
			return
		}
		c.Set(CtxEmail, subject)
		c.Next()
	}
}

// Email returns the authenticated subject set by AuthMiddleware.
func Email(c *gin.Context) string {
	return c.GetString(CtxEmail)
}

// OptionsMiddleware for cors headers.
func OptionsMiddleware(c *gin.Context) {
	if c.Request.Method != http.MethodOptions {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
		return
	}
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	c.Header("Access-Control-Allow-Headers", "authorization, origin, content-type, accept, X-CSRF-TOKEN")
	c.Header("Allow", "HEAD,GET,POST,PUT,PATCH,DELETE,OPTIONS")
	c.Header("Content-Type", "application/json")
	c.AbortWithStatus(http.StatusOK)
}
