package gateway

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-lineup/internal/platform/logging"
	"github.com/riskibarqy/club-lineup/internal/platform/resilience"
	"github.com/riskibarqy/club-lineup/internal/usecase"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultBackoff    = 200 * time.Millisecond
	maxBackoff        = 2 * time.Second
	maxLoggedBodySize = 2048
)

var (
	errGatewayTransient = crerr.New("match service transient failure")
	errNotFound         = crerr.New("match service resource not found")
	errPrecondition     = crerr.New("match service precondition failed")
)

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Breaker    resilience.BreakerConfig
	// Transport overrides the fasthttp client, mainly for tests.
	Transport *fasthttp.Client
}

// Client talks JSON to the remote match service. Each call passes through
// the circuit breaker; transient failures are retried with backoff.
type Client struct {
	http       *fasthttp.Client
	baseURL    string
	token      string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
	breaker    *resilience.Breaker
	reads      resilience.Flight[[]byte]
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid GATEWAY_BASE_URL")
	}
	if err := cfg.Breaker.Validate(); err != nil {
		return nil, crerr.Wrap(err, "invalid GATEWAY_CIRCUIT settings")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &fasthttp.Client{
			Name:                "club-lineup",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
		}
	}

	c := &Client{
		http:       transport,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    defaultBackoff,
		logger:     logger,
	}
	c.breaker = resilience.NewBreaker(cfg.Breaker,
		resilience.WithFailureFilter(isCircuitFailure),
		resilience.WithStateChange(func(from, to resilience.State) {
			c.logger.Warn("match service circuit state changed", "from", from.String(), "to", to.String())
		}),
	)
	return c, nil
}

type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	headers map[string]string
	// noRetry marks calls that must not be repeated once sent.
	noRetry bool
}

type response struct {
	status int
	body   []byte
}

// get runs idempotent reads through a flight so concurrent callers for the
// same URL share one round trip. The shared call ignores the first caller's
// cancellation; each caller still stops waiting when its own ctx ends.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.url(path, query)
	raw, _, err := c.reads.Do(ctx, target, func() ([]byte, error) {
		resp, err := c.do(context.WithoutCancel(ctx), request{method: fasthttp.MethodGet, path: path, query: query})
		if err != nil {
			return nil, err
		}
		return resp.body, nil
	})
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := decode(raw, out); err != nil {
		return crerr.Wrapf(err, "decode %s", path)
	}
	return nil
}

func decode(raw []byte, out any) error {
	return sonic.Unmarshal(raw, out)
}

func (c *Client) do(ctx context.Context, req request) (response, error) {
	var body []byte
	if req.body != nil {
		encoded, err := sonic.Marshal(req.body)
		if err != nil {
			return response{}, crerr.Wrap(err, "marshal request body")
		}
		body = encoded
	}

	target := c.url(req.path, req.query)
	c.annotateSpan(ctx, req.method, target, body)
	c.logger.DebugContext(ctx, "match service request",
		"method", req.method,
		"path", req.path,
		"curl_preview", buildCurlPreview(req.method, target, req.headers, body, c.token != ""),
	)

	attempts := c.maxRetries + 1
	if req.noRetry {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, backoffFor(c.backoff, attempt)); err != nil {
				return response{}, err
			}
		}
		if err := ctx.Err(); err != nil {
			return response{}, err
		}

		var resp response
		err := c.breaker.Do(ctx, func(ctx context.Context) error {
			var callErr error
			resp, callErr = c.roundTrip(ctx, req.method, target, req.headers, body)
			return callErr
		})
		if err == nil {
			return resp, nil
		}
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "match service circuit breaker rejected request", "path", req.path, "state", c.breaker.State().String())
			return response{}, c.unavailable(req, err)
		}
		if !isCircuitFailure(err) {
			return response{}, err
		}

		lastErr = err
		c.logger.WarnContext(ctx, "match service call failed",
			"method", req.method,
			"path", req.path,
			"attempt", attempt+1,
			"max_attempts", attempts,
			"error", err,
		)
	}

	return response{}, c.unavailable(req, lastErr)
}

func (c *Client) roundTrip(ctx context.Context, method, target string, headers map[string]string, body []byte) (response, error) {
	freq := fasthttp.AcquireRequest()
	fresp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(freq)
	defer fasthttp.ReleaseResponse(fresp)

	freq.SetRequestURI(target)
	freq.Header.SetMethod(method)
	freq.Header.Set(fasthttp.HeaderAccept, "application/json")
	if c.token != "" {
		freq.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.token)
	}
	for k, v := range headers {
		freq.Header.Set(k, v)
	}
	if body != nil {
		freq.Header.SetContentType("application/json")
		freq.SetBodyRaw(body)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(freq, fresp, deadline); err != nil {
		return response{}, crerr.Mark(crerr.Wrapf(err, "%s %s", method, target), errGatewayTransient)
	}

	status := fresp.StatusCode()
	payload := append([]byte(nil), fresp.Body()...)
	out := response{status: status, body: payload}

	switch {
	case status >= 200 && status < 300:
		return out, nil
	case status == fasthttp.StatusNotFound:
		return out, crerr.Mark(crerr.Newf("%s %s status=%d", method, target, status), errNotFound)
	case status == fasthttp.StatusPreconditionFailed || status == fasthttp.StatusConflict:
		return out, crerr.Mark(crerr.Newf("%s %s status=%d", method, target, status), errPrecondition)
	case isRetryableStatus(status):
		return out, crerr.Mark(
			crerr.Newf("%s %s status=%d body=%s", method, target, status, truncateForLog(string(payload), maxLoggedBodySize)),
			errGatewayTransient,
		)
	default:
		return out, crerr.Newf("%s %s status=%d body=%s", method, target, status, truncateForLog(string(payload), maxLoggedBodySize))
	}
}

func (c *Client) unavailable(req request, cause error) error {
	if cause == nil {
		cause = errGatewayTransient
	}
	return fmt.Errorf("%w: match service %s %s: %w", usecase.ErrDependencyUnavailable, req.method, req.path, cause)
}

func (c *Client) url(path string, query url.Values) string {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (c *Client) annotateSpan(ctx context.Context, method, target string, body []byte) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String("match_service.method", method),
		attribute.String("match_service.url", target),
		attribute.Int("match_service.request_bytes", len(body)),
	)
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errGatewayTransient)
}

func isNotFound(err error) bool {
	return crerr.Is(err, errNotFound)
}

func isPreconditionFailed(err error) bool {
	return crerr.Is(err, errPrecondition)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}

func backoffFor(base time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func versionHeader(version int64) map[string]string {
	return map[string]string{"If-Match": strconv.Quote(strconv.FormatInt(version, 10))}
}
