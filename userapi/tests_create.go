package userapi

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoCreateUserWithValidPayloadTest(t *T) {
	payload := NewUserPayload(DefaultUserName, DefaultUserJobTitle)

	resp := t.Post(UsersEndpoint, payload)

	// The ID is recorded before any assertion so that a wrong status code does not also break
	// the update test, as long as the API did create a user. A response without an ID must not
	// leave an ID from an earlier run in place.
	createdUserID, hasID := resp.PathString("id")
	if hasID {
		t.State().SetCreatedUserID(createdUserID)
	} else {
		t.State().ClearCreatedUserID()
	}

	assert.Equal(t, http.StatusCreated, resp.StatusCode, "Unexpected status code")
	require.True(t, hasID, "User ID should not be null")
	name, _ := resp.PathString("name")
	assert.Equal(t, payload.Name(), name, "Name mismatch")
	job, _ := resp.PathString("job")
	assert.Equal(t, payload.Job(), job, "Job title mismatch")
}

func DoCreateUserWithEmptyPayloadTest(t *T) {
	resp := t.Post(UsersEndpoint, NewUserPayload("", ""))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "API should reject empty required fields")
}
