package apiclient

import (
	"net/http"
	"sort"
	"strings"

	"github.com/foodics/user-api-contract-tests/framework"

	"github.com/alessio/shellescape"
)

// Request is what a Filter sees before a request is sent. Filters may modify it.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// Filter is called around every request made through a RequestTemplate.
type Filter interface {
	BeforeRequest(req *Request, logger framework.Logger)
	AfterResponse(req *Request, resp *Response, logger framework.Logger)
}

type requestLoggingFilter struct{}

type responseLoggingFilter struct{}

// RequestLoggingFilter logs the request line, headers, body, and an equivalent curl command.
func RequestLoggingFilter() Filter { return requestLoggingFilter{} }

// ResponseLoggingFilter logs the status line and the pretty-printed response body.
func ResponseLoggingFilter() Filter { return responseLoggingFilter{} }

func (requestLoggingFilter) BeforeRequest(req *Request, logger framework.Logger) {
	logger.Printf(">> %s %s", req.Method, req.URL)
	for _, name := range sortedHeaderNames(req.Headers) {
		logger.Printf(">> %s: %s", name, strings.Join(req.Headers.Values(name), ", "))
	}
	if len(req.Body) > 0 {
		logger.Printf(">> %s", string(req.Body))
	}
	logger.Printf("curl equivalent: %s", CurlCommand(req))
}

func (requestLoggingFilter) AfterResponse(*Request, *Response, framework.Logger) {}

func (responseLoggingFilter) BeforeRequest(*Request, framework.Logger) {}

func (responseLoggingFilter) AfterResponse(req *Request, resp *Response, logger framework.Logger) {
	logger.Printf("<< %s (%s %s)", resp.Status, req.Method, req.URL)
	if len(resp.Body) > 0 {
		logger.Printf("<< %s", resp.PrettyBody())
	}
}

// CurlCommand returns a shell command that reproduces the request.
func CurlCommand(req *Request) string {
	var b commandBuilder
	b.add("curl", "-sS", "-X", req.Method)
	for _, name := range sortedHeaderNames(req.Headers) {
		for _, value := range req.Headers.Values(name) {
			b.add("-H", name+": "+value)
		}
	}
	if len(req.Body) > 0 {
		b.add("--data-raw", string(req.Body))
	}
	b.add(req.URL)
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

func sortedHeaderNames(h http.Header) []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
