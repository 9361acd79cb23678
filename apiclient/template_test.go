package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foodics/user-api-contract-tests/config"
	"github.com/foodics/user-api-contract-tests/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

func templateFor(server *httptest.Server) *RequestTemplate {
	return NewTemplateBuilder(server.URL).
		AddHeader(ContentTypeHeader, ApplicationJSONValue).
		Build()
}

func TestSendUsesBaseURIAndDefaultHeaders(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(201))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		template := NewTemplateBuilder(server.URL+"/").
			AddHeader(ContentTypeHeader, ApplicationJSONValue).
			AddHeader("x-api-key", "secret").
			Build()

		resp, err := template.Post(context.Background(), nil, "/api/users", payload{Name: "a", Job: "b"})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "/api/users", r.Request.URL.Path)
		assert.Equal(t, ApplicationJSONValue, r.Request.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Request.Header.Get("x-api-key"))
		assert.JSONEq(t, `{"name":"a","job":"b"}`, string(r.Body))
	})
}

func TestSendPassesRawBodiesThrough(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		template := templateFor(server)

		_, err := template.Put(context.Background(), nil, "api/users/1", `{"raw":true}`)
		require.NoError(t, err)
		r := <-requestsCh
		assert.Equal(t, "PUT", r.Request.Method)
		assert.Equal(t, "/api/users/1", r.Request.URL.Path)
		assert.Equal(t, `{"raw":true}`, string(r.Body))

		_, err = template.Get(context.Background(), nil, "/api/users/2")
		require.NoError(t, err)
		r = <-requestsCh
		assert.Equal(t, "GET", r.Request.Method)
		assert.Len(t, r.Body, 0)
	})
}

func TestErrorStatusIsNotAnError(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(404), func(server *httptest.Server) {
		resp, err := templateFor(server).Get(context.Background(), nil, "/api/users/200")
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestTimeoutIsAnError(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
		w.WriteHeader(200)
	})
	httphelpers.WithServer(slow, func(server *httptest.Server) {
		template := NewTemplateBuilder(server.URL).WithTimeout(50 * time.Millisecond).Build()
		_, err := template.Get(context.Background(), nil, "/")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GET "+server.URL+"/ failed")
	})
}

func TestUnreachableHostIsAnError(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	_, err := NewTemplateBuilder(url).Build().Get(context.Background(), nil, "/api/users")
	assert.Error(t, err)
}

func TestBuildTemplateFromConfiguration(t *testing.T) {
	template := BuildTemplate(config.Configuration{}.WithBaseURI("http://localhost:1/"))
	assert.Equal(t, "http://localhost:1", template.BaseURI())
	assert.Equal(t, ApplicationJSONValue, template.Headers().Get(ContentTypeHeader))
	assert.True(t, template.LogsOnFailure())
	assert.Equal(t, 10*time.Second, template.Timeout())
	assert.Equal(t, "http://localhost:1/api/users", template.URL("/api/users"))
}

func TestTemplateIsNotAffectedByBuilderOrCallers(t *testing.T) {
	b := NewTemplateBuilder("http://x").AddHeader("a", "1")
	template := b.Build()
	b.AddHeader("a", "2")
	template.Headers().Set("a", "3")
	assert.Equal(t, "1", template.Headers().Get("a"))
}

func TestTracingFiltersWriteToLogger(t *testing.T) {
	body := []byte(`{"id":"7","name":"a"}`)
	httphelpers.WithServer(httphelpers.HandlerWithResponse(201, nil, body), func(server *httptest.Server) {
		template := NewTemplateBuilder(server.URL).
			AddHeader(ContentTypeHeader, ApplicationJSONValue).
			AddFilter(RequestLoggingFilter()).
			AddFilter(ResponseLoggingFilter()).
			Build()
		var logger framework.CapturingLogger

		_, err := template.Post(context.Background(), &logger, "/api/users", payload{Name: "a"})
		require.NoError(t, err)

		messages := logger.Output().Messages()
		assert.Contains(t, messages, ">> POST "+server.URL+"/api/users")
		assert.Contains(t, messages, ">> Content-Type: application/json")
		assert.Contains(t, messages, `>> {"name":"a","job":""}`)
		assert.Contains(t, messages, "<< 201 Created (POST "+server.URL+"/api/users)")
		assert.Contains(t, messages, "<< {\n  \"id\": \"7\",\n  \"name\": \"a\"\n}")
	})
}

func TestCurlCommand(t *testing.T) {
	req := &Request{
		Method:  "POST",
		URL:     "http://localhost/api/users",
		Headers: http.Header{"Content-Type": []string{"application/json"}},
		Body:    []byte(`{"name":"Janet's"}`),
	}
	assert.Equal(t,
		`curl -sS -X POST -H 'Content-Type: application/json' --data-raw '{"name":"Janet'"'"'s"}' http://localhost/api/users`,
		CurlCommand(req))
}
