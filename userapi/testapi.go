package userapi

import (
	"context"

	"github.com/foodics/user-api-contract-tests/apiclient"
	"github.com/foodics/user-api-contract-tests/framework"

	"github.com/stretchr/testify/require"
)

type environment struct {
	template *apiclient.RequestTemplate
	state    *RunState
}

// T represents a test or subtest in the user API test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, with per-test debug logging provided by the framework
// package. To make assertions, use the assert and require packages, passing the *T as if it
// were a *testing.T.
//
// It also gives the test access to the shared request template and to the RunState of the
// current run. Requests made through T log their details into the test's debug output, and
// cause the test to fail immediately if no response is received.
type T struct {
	context *framework.Context
	env     *environment
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// DebugLogger returns a Logger that writes to this test's debug output.
func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

// Defer schedules a function to run when the test finishes.
func (t *T) Defer(fn func()) {
	t.context.Defer(fn)
}

// State returns the state shared by all tests in this run.
func (t *T) State() *RunState {
	return t.env.state
}

// Template returns the request template shared by all tests in this run.
func (t *T) Template() *apiclient.RequestTemplate {
	return t.env.template
}

// RequireCreatedUserID returns the ID stored by the user creation test. If there is none,
// because that test was excluded, has not run yet, or did not get an ID back, the current
// test fails immediately with an explanation.
func (t *T) RequireCreatedUserID() string {
	id, ok := t.env.state.CreatedUserID()
	if !ok {
		require.FailNow(t, "no created user ID is available",
			"this test updates the user created by %q, which did not run or did not return an id",
			createUserWithValidPayload)
	}
	return id
}

// Get sends a GET request through the shared template.
func (t *T) Get(path string) *apiclient.Response {
	resp, err := t.env.template.Get(context.Background(), t.DebugLogger(), path)
	require.NoError(t, err)
	t.logResponseDetails(resp)
	return resp
}

// Post sends a POST request with a JSON body through the shared template.
func (t *T) Post(path string, payload UserPayload) *apiclient.Response {
	t.logRequestDetails(payload)
	resp, err := t.env.template.Post(context.Background(), t.DebugLogger(), path, payload)
	require.NoError(t, err)
	t.logResponseDetails(resp)
	return resp
}

// Put sends a PUT request with a JSON body through the shared template.
func (t *T) Put(path string, payload UserPayload) *apiclient.Response {
	t.logRequestDetails(payload)
	resp, err := t.env.template.Put(context.Background(), t.DebugLogger(), path, payload)
	require.NoError(t, err)
	t.logResponseDetails(resp)
	return resp
}

func (t *T) logRequestDetails(payload UserPayload) {
	t.Debug("=== Request ===\n%s", payload)
}

func (t *T) logResponseDetails(resp *apiclient.Response) {
	t.Debug("=== Response ===\n%s", resp.PrettyBody())
}

// RequireStringField fails the test immediately if the JSON response has no value at the
// given path, and otherwise returns it as a string.
func (t *T) RequireStringField(resp *apiclient.Response, path string) string {
	value, ok := resp.PathString(path)
	if !ok {
		require.FailNow(t, "missing field in response", "expected a value for %q in: %s", path, string(resp.Body))
	}
	return value
}
