package mail

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSendVerificationEmail(t *testing.T) {
	var gotAPIKey string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("api-key")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	g := &Gateway{URL: server.URL, APIKey: "k-123", From: "no-reply@evalia.app", Logger: logrus.New()}
	assert.NoError(t, g.SendVerificationEmail("nadia@example.com", "4321"))

	assert.Equal(t, "k-123", gotAPIKey)
	var msg map[string]string
	assert.NoError(t, json.Unmarshal(gotBody, &msg))
	assert.Equal(t, "nadia@example.com", msg["to"])
	assert.Equal(t, "no-reply@evalia.app", msg["from"])
	assert.Contains(t, msg["body"], "4321")
}

func TestSendVerificationEmailGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	g := &Gateway{URL: server.URL, Logger: logger}
	assert.Error(t, g.SendVerificationEmail("nadia@example.com", "4321"))
}
