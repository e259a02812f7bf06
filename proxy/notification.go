package proxy

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Service) UserNotifications(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceNotification, http.MethodGet, "/"+userID(user), nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) MarkAllNotificationsRead(c *gin.Context) {
	user, ok := s.caller(c)
	if !ok {
		return
	}
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceNotification, http.MethodPut, "/"+userID(user)+"/read-all", nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) MarkNotificationRead(c *gin.Context) {
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceNotification, http.MethodPut,
		"/"+c.Param("notificationId")+"/read", nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}

func (s *Service) DeleteNotification(c *gin.Context) {
	res, err := s.Forwarder.Forward(c.Request.Context(), ServiceNotification, http.MethodDelete,
		"/"+c.Param("notificationId"), nil)
	if err != nil {
		Abort(c, err)
		return
	}
	res.WriteTo(c)
}
