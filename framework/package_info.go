// Package framework contains the low-level test infrastructure that the user API contract
// tests are built on. It knows nothing about users or HTTP.
//
// The general model is:
//
// 1. A test run is started with Run, which receives a filter and a TestLogger.
//
// 2. Tests are nested with Context.Run. Each Context is similar to Go's *testing.T: it
// implements the Errorf and FailNow methods that the testify assert and require packages
// need, and it accumulates success/failure results.
//
// 3. Each test has its own debug logger. Whatever is written to it is handed to the
// TestLogger when the test finishes, so that it can be shown only for failed tests.
//
// Tests are always run one at a time, in the order they were declared.
package framework
