package esplora

import (
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/orangesats/orangesats-wallet/pkg/circuitbreaker"
	"github.com/orangesats/orangesats-wallet/pkg/explorer"
	"github.com/orangesats/orangesats-wallet/pkg/httputil"
)

// DefaultRequestsPerSecond caps the rate of calls towards the esplora
// endpoint, public instances ban clients hammering them.
const DefaultRequestsPerSecond = 10

type esplora struct {
	apiURL  string
	limiter ratelimit.Limiter
	cb      *gobreaker.CircuitBreaker
}

// NewService returns a new esplora service as an explorer.Service
// interface. The service is rate limited at the given number of requests
// per second and stops hitting the endpoint while the circuit is open.
func NewService(apiURL string, requestsPerSecond int) (explorer.Service, error) {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	service := &esplora{
		apiURL:  apiURL,
		limiter: ratelimit.New(requestsPerSecond),
		cb:      circuitbreaker.NewCircuitBreaker("esplora"),
	}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (e *esplora) healthCheck() error {
	url := fmt.Sprintf("%s/blocks/tip/height", e.apiURL)
	status, resp, err := e.request("GET", url, "", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf(resp)
	}
	return nil
}

type httpResponse struct {
	status int
	body   string
}

func (e *esplora) request(
	method, url, body string, headers map[string]string,
) (int, string, error) {
	e.limiter.Take()

	res, err := e.cb.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest(method, url, body, headers)
		if err != nil {
			return nil, err
		}
		return httpResponse{status, resp}, nil
	})
	if err != nil {
		return 0, "", err
	}

	httpRes := res.(httpResponse)
	return httpRes.status, httpRes.body, nil
}
