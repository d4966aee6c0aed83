package osrm

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"route-planner-service/internal/domain"

	"golang.org/x/time/rate"
)

const (
	DefaultProfile        = "driving"
	DefaultAttemptTimeout = 8 * time.Second
	DefaultMaxRetries     = 2
	DefaultRetryBackoff   = 200 * time.Millisecond
)

// Options configures a Client. Zero values select the defaults above.
type Options struct {
	HTTPClient     *http.Client
	Profile        string
	AttemptTimeout time.Duration
	// Retries after the first attempt against one host.
	MaxRetries   int
	RetryBackoff time.Duration
	// Requests per second allowed per host; zero disables limiting.
	RateLimit float64
}

// Client implements ports.RouteProvider for OSRM-compatible HTTP services.
//
// Every call targets exactly one host. Each attempt runs under its own
// timeout; transient failures (transport errors, timeouts, 429 and 5xx) are
// retried with exponential backoff up to MaxRetries times. Moving to another
// host is left to the caller.
//
// The client is safe for concurrent use.
type Client struct {
	session        *http.Client
	profile        string
	attemptTimeout time.Duration
	maxRetries     int
	backoff        time.Duration
	rateLimit      rate.Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewClient(opts Options) *Client {
	c := &Client{
		session:        opts.HTTPClient,
		profile:        opts.Profile,
		attemptTimeout: opts.AttemptTimeout,
		maxRetries:     opts.MaxRetries,
		backoff:        opts.RetryBackoff,
		limiters:       make(map[string]*rate.Limiter),
	}

	if c.session == nil {
		c.session = &http.Client{}
	}
	if c.profile == "" {
		c.profile = DefaultProfile
	}
	if c.attemptTimeout <= 0 {
		c.attemptTimeout = DefaultAttemptTimeout
	}
	if c.maxRetries <= 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.backoff <= 0 {
		c.backoff = DefaultRetryBackoff
	}
	if opts.RateLimit > 0 {
		c.rateLimit = rate.Limit(opts.RateLimit)
	}

	return c
}

// limiter returns the per-host limiter, or nil when limiting is disabled.
func (c *Client) limiter(host string) *rate.Limiter {
	if c.rateLimit == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[host]
	if !ok {
		l = rate.NewLimiter(c.rateLimit, 1)
		c.limiters[host] = l
	}
	return l
}

// coordsPath formats points as "lng,lat;lng,lat" for the URL path.
func coordsPath(points []domain.Coordinates) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.FormatFloat(p.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
	}
	return strings.Join(parts, ";")
}

func baseURL(host string) string {
	return strings.TrimRight(host, "/")
}
