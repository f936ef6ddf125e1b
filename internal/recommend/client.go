package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"advisor/internal/intake"
	"advisor/internal/recommend/metrics"
	dErrors "advisor/pkg/domain-errors"
	"advisor/pkg/phi"
)

const recommendPath = "/recommend-carriers"

// genericServiceMessage is shown when the service gives no detail of its own.
const genericServiceMessage = "Error getting recommendations. Please try again."

// Client calls the external recommendation service. It is safe for
// concurrent use; identical concurrent submissions are collapsed into a
// single upstream call.
type Client struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	log     *log.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	group   singleflight.Group
}

// NewClient builds a Client. logger and m may be nil; the client then skips
// logging and metrics.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		timeout: timeout,
		log:     logger,
		metrics: m,
		tracer:  otel.Tracer("advisor/internal/recommend"),
	}
}

// Recommend submits a profile request and returns the decoded items in the
// service's ranking order.
//
// Errors carry CodeServiceUnavailable with the service's detail message when
// it provides one, a generic message otherwise. A caller abandoning via ctx
// (supersession) gets ctx.Err(); the upstream flight itself is detached from
// the caller's ctx so other callers sharing it are unaffected.
func (c *Client) Recommend(ctx context.Context, req intake.Request) ([]Item, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "encode recommendation request", err)
	}

	requestID := shortID()
	c.logf("[%s] recommendation request: %v", requestID, phi.Redact(map[string]any{
		"age":               req.Age,
		"state":             req.State,
		"smoker":            req.Smoker,
		"coverage_type":     req.CoverageType,
		"desired_coverage":  req.DesiredCoverage,
		"health_conditions": req.HealthConditions,
		"medications":       req.Medications,
	}))

	ctx, span := c.tracer.Start(ctx, "recommend.Request", trace.WithAttributes(
		attribute.String("request.id", requestID),
		attribute.String("coverage.type", req.CoverageType),
	))
	defer span.End()

	ch := c.group.DoChan(string(payload), func() (any, error) {
		// The flight may outlive the caller that started it.
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.post(callCtx, payload)
	})

	select {
	case <-ctx.Done():
		c.metrics.IncrementOutcome("superseded")
		c.logf("[%s] abandoned: %v", requestID, ctx.Err())
		span.SetStatus(otelcodes.Error, "abandoned")
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			c.logf("[%s] failed: %v", requestID, res.Err)
			span.RecordError(res.Err)
			span.SetStatus(otelcodes.Error, "request failed")
			return nil, res.Err
		}
		items := res.Val.([]Item)
		c.logf("[%s] received %d recommendations", requestID, len(items))
		span.SetAttributes(attribute.Int("result.count", len(items)))
		return items, nil
	}
}

func (c *Client) post(ctx context.Context, payload []byte) ([]Item, error) {
	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+recommendPath, bytes.NewReader(payload))
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "build recommendation request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		c.metrics.IncrementOutcome("network_error")
		return nil, dErrors.Wrap(dErrors.CodeServiceUnavailable, genericServiceMessage, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveRequestLatency(time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.metrics.IncrementOutcome("network_error")
		return nil, dErrors.Wrap(dErrors.CodeServiceUnavailable, genericServiceMessage, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncrementOutcome("service_error")
		return nil, dErrors.New(dErrors.CodeServiceUnavailable, detailMessage(body))
	}

	var decoded struct {
		Recommendations []wireItem `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		c.metrics.IncrementOutcome("service_error")
		return nil, dErrors.Wrap(dErrors.CodeServiceUnavailable, genericServiceMessage, err)
	}

	items := make([]Item, 0, len(decoded.Recommendations))
	for _, w := range decoded.Recommendations {
		items = append(items, w.decode())
	}
	c.metrics.IncrementOutcome("ok")
	c.metrics.ObserveResultCount(len(items))
	return items, nil
}

// detailMessage prefers the service's own detail field over the generic
// message.
func detailMessage(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Detail) != "" {
		return payload.Detail
	}
	return genericServiceMessage
}

func (c *Client) logf(format string, args ...any) {
	if c.log != nil {
		c.log.Printf(format, args...)
	}
}

func shortID() string {
	return uuid.NewString()[:8]
}
