// Package proxy forwards authorized requests to the downstream domain
// services and surfaces their responses verbatim.
package proxy

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/Imran-2020331101/evalia/apperr"
)

// Downstream service names. Each maps to a base URL in the forwarder's
// registry.
const (
	ServiceResume        = "resume"
	ServiceJob           = "job"
	ServiceInterview     = "interview"
	ServiceNotification  = "notification"
	ServiceCourse        = "course"
	ServiceCompatibility = "compatibility"
)

const defaultTimeout = 30 * time.Second

// Response is a downstream service's reply, passed through to the caller
// without reinterpretation.
type Response struct {
	Status      int
	Body        []byte
	ContentType string
}

// OK reports whether the downstream call succeeded. Local state mutations
// tied to a downstream call must only be committed when this is true.
func (r *Response) OK() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices
}

// WriteTo renders the downstream status and body verbatim.
func (r *Response) WriteTo(c *gin.Context) {
	contentType := r.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(r.Status, contentType, r.Body)
}

// Forwarder performs outbound calls to the downstream services on behalf of
// an authenticated request. It never retries: callers receive the downstream
// status and body directly, and transport failures are reported as a typed
// transport_failure error.
type Forwarder struct {
	Services map[string]string
	Client   *http.Client
	Logger   *logrus.Logger
}

// NewForwarder builds a forwarder over the given service registry with a
// bounded client timeout.
func NewForwarder(services map[string]string, logger *logrus.Logger) *Forwarder {
	return &Forwarder{
		Services: services,
		Client:   &http.Client{Timeout: defaultTimeout},
		Logger:   logger,
	}
}

// Forward performs one call against the named service. A non-nil payload is
// json-encoded; a nil payload sends an empty body. The downstream response
// is returned for any HTTP status, success or not.
func (f *Forwarder) Forward(ctx context.Context, service, method, path string, payload any) (*Response, error) {
	base, ok := f.Services[service]
	if !ok {
		return nil, apperr.WithMessage(apperr.ErrNotFound, "unknown downstream service: "+service)
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, apperr.Wrap(err, apperr.ErrInternal, "")
		}
		body = bytes.NewBuffer(encoded)
	}

	url := strings.TrimSuffix(base, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal, "")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	res, err := client.Do(req)
	if err != nil {
		if f.Logger != nil {
			f.Logger.WithFields(logrus.Fields{
				"service": service,
				"url":     url,
			}).WithError(err).Error("downstream unreachable")
		}
		return nil, apperr.Wrap(err, apperr.ErrTransport, "")
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrDownstream, "error reading downstream response")
	}

	if f.Logger != nil && res.StatusCode >= http.StatusBadRequest {
		f.Logger.WithFields(logrus.Fields{
			"service": service,
			"url":     url,
			"status":  res.StatusCode,
		}).Warn("downstream reported failure")
	}

	return &Response{
		Status:      res.StatusCode,
		Body:        responseBody,
		ContentType: res.Header.Get("Content-Type"),
	}, nil
}

// Abort renders a forwarding error on the gin context.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.Status(err), apperr.Payload(err))
}
