// Package mail delivers verification codes through an external mail gateway.
package mail

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Sender is the email-delivery collaborator consumed by the identity
// service. Delivery is best-effort: registration does not roll back when the
// mail gateway is down.
type Sender interface {
	SendVerificationEmail(to, otp string) error
}

// Gateway posts verification emails to an HTTP mail-gateway endpoint.
type Gateway struct {
	URL    string
	APIKey string
	From   string
	Logger *logrus.Logger
	Client *http.Client
}

type gatewayMessage struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (g *Gateway) SendVerificationEmail(to, otp string) error {
	msg := gatewayMessage{
		To:      to,
		From:    g.From,
		Subject: "Evalia - Complete Your Registration",
		Body: fmt.Sprintf("Thank you for registering. Your verification code is: %s. "+
			"This OTP will expire in 10 minutes. If you did not request this, please ignore this email.", otp),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, g.URL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.APIKey != "" {
		req.Header.Set("api-key", g.APIKey)
	}

	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	res, err := client.Do(req)
	if err != nil {
		if g.Logger != nil {
			g.Logger.WithField("to", to).WithError(err).Error("mail gateway unreachable")
		}
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		err := fmt.Errorf("mail gateway returned %d", res.StatusCode)
		if g.Logger != nil {
			g.Logger.WithField("to", to).Error(err.Error())
		}
		return err
	}
	return nil
}
