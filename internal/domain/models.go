package domain

import "time"

// Status is the classified health of the monitored target.
// The zero value is Unknown, which is the state before the first check.
type Status int

const (
	StatusUnknown Status = iota
	StatusHealthy
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "online"
	case StatusUnhealthy:
		return "offline"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult is the outcome of one probe. Status is the tag:
// Healthy results carry StatusCode and Latency, Unhealthy ones carry Reason.
type CheckResult struct {
	Status     Status        `json:"status"`
	URL        string        `json:"url"`
	StatusCode int           `json:"status_code,omitempty"` // 0 for transport errors
	StatusText string        `json:"status_text,omitempty"` // "200 - OK"
	Latency    time.Duration `json:"latency_ns,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	DNSClass   string        `json:"dns_class,omitempty"`
	CheckedAt  time.Time     `json:"checked_at"`
}

func Healthy(url string, code int, statusText string, latency time.Duration) CheckResult {
	return CheckResult{
		Status:     StatusHealthy,
		URL:        url,
		StatusCode: code,
		StatusText: statusText,
		Latency:    latency,
		CheckedAt:  time.Now().UTC(),
	}
}

// Unhealthy builds a failed result. code is 0 when no response arrived.
func Unhealthy(url string, code int, reason string) CheckResult {
	r := CheckResult{
		Status:     StatusUnhealthy,
		URL:        url,
		StatusCode: code,
		Reason:     reason,
		CheckedAt:  time.Now().UTC(),
	}
	if code != 0 {
		r.StatusText = reason
	}
	return r
}

// LatencyMS is the latency rounded down to whole milliseconds.
func (r CheckResult) LatencyMS() int64 {
	return r.Latency.Milliseconds()
}

// MonitorState is the last observed and last announced status.
// The zero value is {Unknown, Unknown}.
type MonitorState struct {
	Current       Status `json:"current"`
	LastAnnounced Status `json:"last_announced"`
}
