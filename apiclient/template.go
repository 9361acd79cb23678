// Package apiclient provides the shared request template that every test uses to talk to the
// API under test, and a response type with JSON path lookups for making assertions.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/foodics/user-api-contract-tests/config"
	"github.com/foodics/user-api-contract-tests/framework"

	"github.com/pkg/errors"
)

const (
	ContentTypeHeader    = "Content-Type"
	ApplicationJSONValue = "application/json"
)

// RequestTemplate holds the settings shared by all requests in a test run: the base URI,
// default headers, and tracing filters. It is built once, before any test runs, and is never
// modified afterward, so a single instance can be used by every test.
type RequestTemplate struct {
	baseURI      string
	headers      http.Header
	filters      []Filter
	logOnFailure bool
	httpClient   *http.Client
}

// TemplateBuilder assembles a RequestTemplate.
type TemplateBuilder struct {
	baseURI      string
	headers      http.Header
	filters      []Filter
	logOnFailure bool
	timeout      time.Duration
}

// BuildTemplate creates the standard template for a test run: JSON content type, any headers
// from the configuration, request and response tracing, and request/response details shown
// for tests that fail.
func BuildTemplate(cfg config.Configuration) *RequestTemplate {
	b := NewTemplateBuilder(cfg.BaseURI()).
		WithTimeout(cfg.Timeout()).
		LogIfValidationFails().
		AddHeader(ContentTypeHeader, ApplicationJSONValue)
	for name, value := range cfg.DefaultHeaders() {
		b.AddHeader(name, value)
	}
	return b.
		AddFilter(RequestLoggingFilter()).
		AddFilter(ResponseLoggingFilter()).
		Build()
}

func NewTemplateBuilder(baseURI string) *TemplateBuilder {
	return &TemplateBuilder{
		baseURI: baseURI,
		headers: make(http.Header),
		timeout: time.Duration(config.DefaultTimeoutMillis) * time.Millisecond,
	}
}

// AddHeader sets a default header. A later call with the same name replaces the value.
func (b *TemplateBuilder) AddHeader(name, value string) *TemplateBuilder {
	b.headers.Set(name, value)
	return b
}

func (b *TemplateBuilder) AddFilter(f Filter) *TemplateBuilder {
	b.filters = append(b.filters, f)
	return b
}

// LogIfValidationFails marks the template so that request/response details are reported
// for any test that fails.
func (b *TemplateBuilder) LogIfValidationFails() *TemplateBuilder {
	b.logOnFailure = true
	return b
}

func (b *TemplateBuilder) WithTimeout(timeout time.Duration) *TemplateBuilder {
	b.timeout = timeout
	return b
}

func (b *TemplateBuilder) Build() *RequestTemplate {
	return &RequestTemplate{
		baseURI:      strings.TrimSuffix(b.baseURI, "/"),
		headers:      b.headers.Clone(),
		filters:      append([]Filter(nil), b.filters...),
		logOnFailure: b.logOnFailure,
		httpClient:   &http.Client{Timeout: b.timeout},
	}
}

func (t *RequestTemplate) BaseURI() string {
	return t.baseURI
}

// Headers returns a copy of the default headers.
func (t *RequestTemplate) Headers() http.Header {
	return t.headers.Clone()
}

// LogsOnFailure returns true if request/response details should be shown for failed tests.
func (t *RequestTemplate) LogsOnFailure() bool {
	return t.logOnFailure
}

func (t *RequestTemplate) Timeout() time.Duration {
	return t.httpClient.Timeout
}

// URL resolves a path against the base URI.
func (t *RequestTemplate) URL(path string) string {
	if path == "" {
		return t.baseURI
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return t.baseURI + path
}

// Get is shorthand for Send with no body.
func (t *RequestTemplate) Get(ctx context.Context, logger framework.Logger, path string) (*Response, error) {
	return t.Send(ctx, logger, http.MethodGet, path, nil)
}

func (t *RequestTemplate) Post(ctx context.Context, logger framework.Logger, path string, body interface{}) (*Response, error) {
	return t.Send(ctx, logger, http.MethodPost, path, body)
}

func (t *RequestTemplate) Put(ctx context.Context, logger framework.Logger, path string, body interface{}) (*Response, error) {
	return t.Send(ctx, logger, http.MethodPut, path, body)
}

// Send makes a request and reads the whole response. The body may be nil, a []byte or
// string to be sent as-is, or any other value to be marshaled as JSON. Filters receive the
// logger, which is normally the debug logger of the current test.
//
// A non-nil error means no response was received (I/O error, timeout, or cancellation).
// Any HTTP status, including 4xx and 5xx, is a successful result.
func (t *RequestTemplate) Send(
	ctx context.Context,
	logger framework.Logger,
	method string,
	path string,
	body interface{},
) (*Response, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	bodyData, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Method:  method,
		URL:     t.URL(path),
		Headers: t.headers.Clone(),
		Body:    bodyData,
	}
	for _, f := range t.filters {
		f.BeforeRequest(req, logger)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid request %s %s", req.Method, req.URL)
	}
	httpReq.Header = req.Headers

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		logger.Printf("Request %s %s failed: %s", req.Method, req.URL, err)
		return nil, errors.Wrapf(err, "%s %s failed", req.Method, req.URL)
	}
	respData, err := ioutil.ReadAll(httpResp.Body)
	_ = httpResp.Body.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "error reading response body from %s %s", req.Method, req.URL)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       respData,
	}
	for _, f := range t.filters {
		f.AfterResponse(req, resp, logger)
	}
	return resp, nil
}

func encodeBody(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, errors.Wrap(err, "could not serialize request body")
		}
		return data, nil
	}
}
