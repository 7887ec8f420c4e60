package api

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"esports-digest/internal/config"
	"esports-digest/internal/constants"
	"esports-digest/internal/metrics"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const SourceCapture = "capture"

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// CaptureRequest asks the render endpoint for a screenshot of the first
// element matching Selector on the page at URL.
type CaptureRequest struct {
	URL         string `json:"url"`
	Selector    string `json:"selector"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ColorScheme string `json:"color_scheme"`
	// Unclip widens the element to its content before the shot.
	Unclip bool `json:"unclip"`
}

// CaptureClient talks to a remote headless-browser render service.
type CaptureClient struct {
	client   *fasthttp.Client
	endpoint string
	logger   zerolog.Logger
	metrics  metrics.Metrics
}

func NewCaptureClient(cfg *config.Config, logger zerolog.Logger, m metrics.Metrics) *CaptureClient {
	return &CaptureClient{
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         constants.CaptureTimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		endpoint: cfg.CaptureURL,
		logger:   logger,
		metrics:  m,
	}
}

// Capture returns the PNG bytes produced by the render endpoint.
func (c *CaptureClient) Capture(ctx context.Context, r CaptureRequest) ([]byte, error) {
	png, err := c.capture(ctx, r)
	c.metrics.IncFeedFetch(SourceCapture, err == nil)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", r.URL).Msg("bracket capture failed")
		return nil, err
	}
	return png, nil
}

func (c *CaptureClient) capture(ctx context.Context, r CaptureRequest) ([]byte, error) {
	payload, err := sonic.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode capture request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "image/png")
	req.SetBody(payload)

	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		return nil, fmt.Errorf("capture request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("capture error: %d", resp.StatusCode())
	}

	body := resp.Body()
	if !bytes.HasPrefix(body, pngMagic) {
		return nil, fmt.Errorf("capture returned %d bytes that are not a PNG", len(body))
	}
	return append([]byte(nil), body...), nil
}
