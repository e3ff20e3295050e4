package probe

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/statuswatch/internal/domain"
)

func statusServer(code int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		w.Write([]byte("ok"))
	}))
}

func TestHTTPChecker_StatusOK(t *testing.T) {
	s := statusServer(200)
	defer s.Close()

	out := NewHTTPChecker(2*time.Second).Check(context.Background(), s.URL)
	require.Equal(t, domain.StatusHealthy, out.Status, "got %+v", out)
	assert.Equal(t, 200, out.StatusCode)
	assert.Equal(t, "200 - OK", out.StatusText)
	assert.Equal(t, s.URL, out.URL)
	assert.GreaterOrEqual(t, out.Latency, time.Duration(0))
	assert.Empty(t, out.Reason)
}

func TestHTTPChecker_Status500(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	out := NewHTTPChecker(2*time.Second).Check(context.Background(), s.URL)
	require.Equal(t, domain.StatusUnhealthy, out.Status)
	assert.Equal(t, 500, out.StatusCode)
	assert.Equal(t, "500 - Internal Server Error", out.Reason)
}

func TestHTTPChecker_ClassificationBoundary(t *testing.T) {
	cases := []struct {
		code int
		want domain.Status
	}{
		{200, domain.StatusHealthy},
		{204, domain.StatusHealthy},
		{304, domain.StatusHealthy},
		{399, domain.StatusHealthy},
		{400, domain.StatusUnhealthy},
		{404, domain.StatusUnhealthy},
		{503, domain.StatusUnhealthy},
	}
	for _, c := range cases {
		s := statusServer(c.code)
		out := NewHTTPChecker(2*time.Second).Check(context.Background(), s.URL)
		s.Close()
		assert.Equal(t, c.want, out.Status, "code %d", c.code)
		assert.Equal(t, c.code, out.StatusCode)
	}
}

func TestHTTPChecker_NonStandardCodeKeepsServerPhrase(t *testing.T) {
	s := statusServer(599)
	defer s.Close()

	out := NewHTTPChecker(2*time.Second).Check(context.Background(), s.URL)
	assert.Equal(t, domain.StatusUnhealthy, out.Status)
	assert.Contains(t, out.Reason, "599 - ")
}

func TestHTTPChecker_TimeoutIsUnhealthyWithErrorText(t *testing.T) {
	// Server sleeps longer than client timeout
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	out := NewHTTPChecker(50*time.Millisecond).Check(context.Background(), s.URL)
	require.Equal(t, domain.StatusUnhealthy, out.Status)
	assert.Equal(t, 0, out.StatusCode)
	assert.Contains(t, out.Reason, "Client.Timeout exceeded")
}

func TestHTTPChecker_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	chk := NewHTTPChecker(time.Second)
	chk.DNS = true
	out := chk.Check(context.Background(), "http://"+addr)
	require.Equal(t, domain.StatusUnhealthy, out.Status)
	assert.NotEmpty(t, out.Reason)
	assert.Equal(t, DNSResolves, out.DNSClass)
}

func TestHTTPChecker_MalformedURLDoesNotPanic(t *testing.T) {
	out := NewHTTPChecker(time.Second).Check(context.Background(), "http://[::1")
	assert.Equal(t, domain.StatusUnhealthy, out.Status)
	assert.NotEmpty(t, out.Reason)
}

func TestNewHTTPChecker_DefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewHTTPChecker(0).Client.Timeout)
}

// refusedURL returns an address nothing is listening on.
func refusedURL(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()
	return "http://" + addr
}

func TestHTTPChecker_NoDNSLookupWhenDisabled(t *testing.T) {
	calls := 0
	chk := NewHTTPChecker(time.Second)
	chk.lookup = func(ctx context.Context, host string) DNSStatus {
		calls++
		return DNSStatus{Class: DNSResolves}
	}

	out := chk.Check(context.Background(), refusedURL(t))
	assert.Equal(t, domain.StatusUnhealthy, out.Status)
	assert.Equal(t, 0, calls)
	assert.Empty(t, out.DNSClass)
}

func TestHTTPChecker_DNSLookupSharesRequestDeadline(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	chk := NewHTTPChecker(time.Second)
	chk.DNS = true
	chk.lookup = func(ctx context.Context, host string) DNSStatus {
		deadline, hasDeadline = ctx.Deadline()
		return DNSStatus{Class: DNSNXDomain}
	}

	before := time.Now()
	out := chk.Check(context.Background(), refusedURL(t))
	assert.Equal(t, DNSNXDomain, out.DNSClass)
	require.True(t, hasDeadline)
	assert.False(t, deadline.After(before.Add(time.Second+50*time.Millisecond)))
}

func TestHTTPChecker_NoDNSLookupAfterTimeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer s.Close()

	calls := 0
	chk := NewHTTPChecker(50 * time.Millisecond)
	chk.DNS = true
	chk.lookup = func(ctx context.Context, host string) DNSStatus {
		calls++
		return DNSStatus{}
	}
	out := chk.Check(context.Background(), s.URL)
	assert.Equal(t, domain.StatusUnhealthy, out.Status)
	assert.Equal(t, 0, calls, "budget already spent")
}
