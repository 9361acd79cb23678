package userapi

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoGetUserWithExistingIDTest(t *T) {
	resp := t.Get(UserPath(PreexistingUserID))

	require.Equal(t, http.StatusOK, resp.StatusCode, "User not found")
	assert.Equal(t, PreexistingUserID, t.RequireStringField(resp, "data.id"), "User ID mismatch")
	firstName, _ := resp.PathString("data.first_name")
	assert.Equal(t, PreexistingUserFirstName, firstName, "First name mismatch")
}

func DoGetUserWithNonexistentIDTest(t *T) {
	resp := t.Get(UserPath(NonexistentUserID))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "API should return not found for invalid user ID")
}
