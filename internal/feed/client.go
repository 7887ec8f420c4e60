package feed

import (
	"context"
	"esports-digest/internal/constants"
	"esports-digest/internal/metrics"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Request describes one upstream GET. Source labels logs and metrics.
type Request struct {
	Source  string
	URL     string
	Headers map[string]string
	Query   map[string]string

	// Inspect, when set, sees the response headers of every completed
	// exchange, including non-200 ones.
	Inspect func(h *fasthttp.ResponseHeader)
}

// Client is a single-attempt JSON fetcher. Failures never escape as errors:
// they are logged, counted, and reported as an absent result.
type Client struct {
	client  *fasthttp.Client
	logger  zerolog.Logger
	metrics metrics.Metrics
}

func NewClient(logger zerolog.Logger, m metrics.Metrics) *Client {
	return &Client{
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger:  logger,
		metrics: m,
	}
}

// get returns a copy of the response body, or false on transport error or
// non-200 status.
func (c *Client) get(ctx context.Context, r Request) ([]byte, bool) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.URL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	if len(r.Query) > 0 {
		args := req.URI().QueryArgs()
		for k, v := range r.Query {
			args.Set(k, v)
		}
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		c.fail(r, err).Msg("feed request failed")
		return nil, false
	}

	if r.Inspect != nil {
		r.Inspect(&resp.Header)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.fail(r, nil).Int("status", resp.StatusCode()).Msg("feed returned non-OK status")
		return nil, false
	}

	body := append([]byte(nil), resp.Body()...)
	return body, true
}

// Fetch decodes the response of r into T. A malformed payload counts as
// absent, same as a transport failure.
func Fetch[T any](ctx context.Context, c *Client, r Request) (*T, bool) {
	body, ok := c.get(ctx, r)
	if !ok {
		return nil, false
	}

	var result T
	if err := sonic.Unmarshal(body, &result); err != nil {
		c.fail(r, err).Int("bytes", len(body)).Msg("feed returned malformed payload")
		return nil, false
	}

	c.metrics.IncFeedFetch(r.Source, true)
	c.logger.Debug().Str("source", r.Source).Int("bytes", len(body)).Msg("feed fetched")
	return &result, true
}

func (c *Client) fail(r Request, err error) *zerolog.Event {
	c.metrics.IncFeedFetch(r.Source, false)
	ev := c.logger.Warn().Str("source", r.Source).Str("url", r.URL)
	if err != nil {
		ev = ev.Err(err)
	}
	return ev
}
