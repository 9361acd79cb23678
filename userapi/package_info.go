// Package userapi contains the user API contract tests themselves and their supporting API.
//
// Infrastructure that is not specific to users, such as test contexts and results, is in the
// lower-level framework package; the HTTP request template is in apiclient.
package userapi
