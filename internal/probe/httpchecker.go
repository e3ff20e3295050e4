package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hamed0406/statuswatch/internal/domain"
)

// DefaultTimeout bounds one probe when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// drainLimit caps how much of a response body is read before closing.
const drainLimit = 64 << 10

type HTTPChecker struct {
	Client *http.Client
	// DNS enables host classification when the transport fails. The lookups
	// share the probe's deadline, so they never extend a probe past Client.Timeout.
	DNS bool

	lookup func(ctx context.Context, host string) DNSStatus
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
		lookup: CheckDNS,
	}
}

func (h *HTTPChecker) Check(ctx context.Context, target string) domain.CheckResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.Unhealthy(target, 0, err.Error())
	}

	start := time.Now()
	resp, err := h.Client.Do(req)
	latency := time.Since(start)
	if err != nil {
		out := domain.Unhealthy(target, 0, err.Error())
		if h.DNS {
			out.DNSClass = h.diagnose(ctx, target, start)
		}
		return out
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))

	text := statusText(resp)
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return domain.Healthy(target, resp.StatusCode, text, latency)
	}
	return domain.Unhealthy(target, resp.StatusCode, text)
}

// statusText renders "<code> - <reason phrase>", e.g. "500 - Internal Server Error".
func statusText(resp *http.Response) string {
	phrase := http.StatusText(resp.StatusCode)
	if phrase == "" {
		// non-standard code: take whatever the server sent after the number
		phrase = strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode)))
	}
	return fmt.Sprintf("%d - %s", resp.StatusCode, phrase)
}

// diagnose classifies the target host within whatever is left of the probe's
// budget. It returns "" when nothing is left.
func (h *HTTPChecker) diagnose(ctx context.Context, target string, start time.Time) string {
	if h.lookup == nil {
		return ""
	}
	if h.Client.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, start.Add(h.Client.Timeout))
		defer cancel()
	}
	if ctx.Err() != nil {
		return ""
	}
	return h.lookup(ctx, extractHost(target)).Class
}
