package checks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/http/httpproxy"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// NetworkCheck verifies that rawURL answers an HTTP HEAD request within
// timeout. A nil client gets one that honours the HTTP(S)_PROXY and
// NO_PROXY environment variables.
func NetworkCheck(rawURL string, timeout time.Duration, client *http.Client) Func {
	return func(ctx context.Context) models.CheckResult {
		const name = "network"
		if rawURL == "" {
			return skip(name, "no probe URL configured")
		}
		httpClient := client
		if httpClient == nil {
			httpClient = newProbeClient()
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
		if err != nil {
			return fail(name, fmt.Sprintf("invalid probe URL %s: %v", rawURL, err), "")
		}
		req.Header.Set("User-Agent", "envdoctor")

		startTime := time.Now()
		resp, err := httpClient.Do(req)
		if err != nil {
			return fail(name,
				fmt.Sprintf("%s is unreachable: %v", rawURL, err),
				"check network connectivity, DNS and proxy settings")
		}
		_ = resp.Body.Close()
		elapsed := time.Since(startTime).Round(time.Millisecond)

		if resp.StatusCode >= http.StatusInternalServerError {
			return warn(name,
				fmt.Sprintf("%s answered HTTP %d in %s", rawURL, resp.StatusCode, elapsed),
				"the endpoint is reachable but unhealthy; retry later")
		}
		return pass(name, fmt.Sprintf("%s reachable (HTTP %d in %s)", rawURL, resp.StatusCode, elapsed))
	}
}

func newProbeClient() *http.Client {
	proxyFunc := httpproxy.FromEnvironment().ProxyFunc()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = func(req *http.Request) (*url.URL, error) {
		return proxyFunc(req.URL)
	}

	return &http.Client{Transport: transport}
}
