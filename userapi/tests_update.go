package userapi

import (
	"net/http"

	"github.com/stretchr/testify/assert"
)

func DoUpdateUserWithValidPayloadTest(t *T) {
	userID := t.RequireCreatedUserID()
	payload := NewUserPayload(UpdatedUserName, UpdatedUserJob)

	resp := t.Put(UserPath(userID), payload)

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Update failed")
	name, _ := resp.PathString("name")
	assert.Equal(t, payload.Name(), name, "Name not updated")
	job, _ := resp.PathString("job")
	assert.Equal(t, payload.Job(), job, "Job title not updated")
}
