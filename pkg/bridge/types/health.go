package types

import "time"

// HealthStatus is the liveness payload. Like error envelopes it is
// self-constructed, so it carries the correlation id.
type HealthStatus struct {
	OK        bool   `json:"ok"`
	Service   string `json:"service"`
	Time      string `json:"time"`
	RequestID string `json:"requestId"`
}

// NewHealthStatus creates a liveness payload stamped with the current time.
func NewHealthStatus(service, requestID string) *HealthStatus {
	return &HealthStatus{
		OK:        true,
		Service:   service,
		Time:      time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// UpstreamErrorBody is the envelope for upstream responses with non-2xx
// status. The upstream status is echoed and the body is truncated so a
// misbehaving upstream cannot balloon error responses.
type UpstreamErrorBody struct {
	UpstreamStatus int    `json:"upstreamStatus"`
	Body           string `json:"body"`
	RequestID      string `json:"requestId"`
}

// NewUpstreamErrorBody creates an upstream error envelope.
func NewUpstreamErrorBody(status int, body, requestID string) *UpstreamErrorBody {
	return &UpstreamErrorBody{
		UpstreamStatus: status,
		Body:           body,
		RequestID:      requestID,
	}
}
