package rules

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/githubnext/pkgvet/pkg/validation"
)

var proberLog = logger.New("rules:http_prober")

// DefaultURLTimeout bounds a single probe.
const DefaultURLTimeout = 10 * time.Second

// HTTPProber probes URLs with a HEAD request, retrying with GET when the
// server rejects HEAD.
type HTTPProber struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPProber returns a prober with the given per-probe timeout.
// A zero timeout uses DefaultURLTimeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultURLTimeout
	}
	return &HTTPProber{Client: http.DefaultClient, Timeout: timeout}
}

// Probe implements validation.URLProber.
func (p *HTTPProber) Probe(ctx context.Context, url string) validation.URLStatus {
	if strings.TrimSpace(url) == "" {
		return validation.URLNone
	}

	code, err := p.do(ctx, http.MethodHead, url)
	if err == nil && (code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented) {
		proberLog.Printf("HEAD %s returned %d, retrying with GET", url, code)
		code, err = p.do(ctx, http.MethodGet, url)
	}
	if err != nil {
		proberLog.Printf("Probe of %s failed: %v", url, err)
		return validation.URLUnreachable
	}
	if code < 200 || code > 299 {
		proberLog.Printf("Probe of %s returned %d", url, code)
		return validation.URLUnreachable
	}
	return validation.URLReachable
}

func (p *HTTPProber) do(ctx context.Context, method, url string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
