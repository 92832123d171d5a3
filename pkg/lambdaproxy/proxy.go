package lambdaproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/cardmia/ecgportal/handler"
	"github.com/cardmia/ecgportal/pkg/formdata"
	"github.com/cardmia/ecgportal/pkg/logger"
	"github.com/cardmia/ecgportal/pkg/requestid"
)

// Adapter serves API Gateway proxy events with an http.Handler.
type Adapter struct {
	handler http.Handler
	log     *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger for events that cannot be turned into requests.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

func New(h http.Handler, opts ...Option) *Adapter {
	a := &Adapter{
		handler: h,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type eventProbe struct {
	Version    string `json:"version"`
	HTTPMethod string `json:"httpMethod"`
	RouteKey   string `json:"routeKey"`
}

// Handle accepts either payload format and answers in the same format.
// It is the function passed to lambda.Start.
func (a *Adapter) Handle(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	var probe eventProbe
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownEvent, err)
	}

	var (
		resp any
		err  error
	)
	switch {
	case probe.Version == "2.0" || (probe.HTTPMethod == "" && probe.RouteKey != ""):
		var ev events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnknownEvent, err)
		}
		resp, err = a.ProxyV2(ctx, ev)
	default:
		var ev events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnknownEvent, err)
		}
		resp, err = a.ProxyV1(ctx, ev)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}

// ProxyV1 serves a REST API (payload format 1.0) event.
func (a *Adapter) ProxyV1(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	method := firstNonEmpty(ev.HTTPMethod, ev.RequestContext.HTTPMethod)

	query := url.Values{}
	for k, vs := range ev.MultiValueQueryStringParameters {
		query[k] = append(query[k], vs...)
	}
	for k, v := range ev.QueryStringParameters {
		if _, ok := query[k]; !ok {
			query.Set(k, v)
		}
	}

	header := make(http.Header)
	for k, vs := range ev.MultiValueHeaders {
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	for k, v := range ev.Headers {
		if header.Get(k) == "" {
			header.Set(k, v)
		}
	}

	w, err := a.serve(ctx, inbound{
		method:    method,
		path:      firstNonEmpty(ev.Path, "/"),
		rawQuery:  query.Encode(),
		header:    header,
		body:      ev.Body,
		base64:    ev.IsBase64Encoded,
		requestID: ev.RequestContext.RequestID,
		sourceIP:  ev.RequestContext.Identity.SourceIP,
	})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	body, encoded := w.encodedBody()
	return events.APIGatewayProxyResponse{
		StatusCode:        w.statusCode(),
		Headers:           singleValued(w.header),
		MultiValueHeaders: w.header,
		Body:              body,
		IsBase64Encoded:   encoded,
	}, nil
}

// ProxyV2 serves an HTTP API (payload format 2.0) event.
func (a *Adapter) ProxyV2(ctx context.Context, ev events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := ev.RequestContext.HTTP.Method
	if method == "" {
		method, _, _ = strings.Cut(ev.RouteKey, " ")
	}

	header := make(http.Header)
	for k, v := range ev.Headers {
		header.Set(k, v)
	}
	if len(ev.Cookies) > 0 {
		header.Set("Cookie", strings.Join(ev.Cookies, "; "))
	}

	w, err := a.serve(ctx, inbound{
		method:    method,
		path:      firstNonEmpty(ev.RawPath, ev.RequestContext.HTTP.Path, "/"),
		rawQuery:  ev.RawQueryString,
		header:    header,
		body:      ev.Body,
		base64:    ev.IsBase64Encoded,
		requestID: ev.RequestContext.RequestID,
		sourceIP:  ev.RequestContext.HTTP.SourceIP,
	})
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}

	cookies := w.header.Values("Set-Cookie")
	w.header.Del("Set-Cookie")

	headers := make(map[string]string, len(w.header))
	for k, vs := range w.header {
		headers[k] = strings.Join(vs, ", ")
	}

	body, encoded := w.encodedBody()
	return events.APIGatewayV2HTTPResponse{
		StatusCode:      w.statusCode(),
		Headers:         headers,
		Body:            body,
		IsBase64Encoded: encoded,
		Cookies:         cookies,
	}, nil
}

type inbound struct {
	method    string
	path      string
	rawQuery  string
	header    http.Header
	body      string
	base64    bool
	requestID string
	sourceIP  string
}

func (a *Adapter) serve(ctx context.Context, in inbound) (*responseWriter, error) {
	if in.method == "" {
		return nil, ErrMissingMethod
	}

	w := newResponseWriter()

	body, decodeErr := formdata.RawBody(in.body, in.base64)
	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(in.method), in.path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingRequest, err)
	}
	req.URL.RawQuery = in.rawQuery
	req.RequestURI = req.URL.RequestURI()
	req.Header = in.header
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Length", strconv.Itoa(len(body)))
	if in.sourceIP != "" {
		req.RemoteAddr = in.sourceIP
	}
	if in.requestID != "" && req.Header.Get(requestid.GatewayHeader) == "" {
		req.Header.Set(requestid.GatewayHeader, in.requestID)
	}

	if decodeErr != nil {
		a.log.WarnContext(ctx, "rejecting event with undecodable body",
			logger.RequestID(in.requestID),
			logger.Error(decodeErr),
			logger.Component("lambdaproxy"),
		)
		if err := handler.JSONError(handler.ClassifyError(decodeErr).HTTPError).Render(w, req); err != nil {
			return nil, err
		}
		return w, nil
	}

	a.handler.ServeHTTP(w, req)
	return w, nil
}

func singleValued(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) > 0 {
			out[k] = vs[len(vs)-1]
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
