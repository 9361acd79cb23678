package userapi

// UsersEndpoint is the collection resource for users.
const UsersEndpoint = "/api/users"

// Reference data used by the tests.
const (
	// PreexistingUserID is a user that the API under test always has.
	PreexistingUserID        = "2"
	PreexistingUserFirstName = "Janet"

	NonexistentUserID = "200"

	DefaultUserName     = "Mariam Abd Elmoneim Elsaid"
	DefaultUserJobTitle = "Software Tester"

	UpdatedUserName = "Updated Name"
	UpdatedUserJob  = "Updated Job"
)

// UserPath returns the resource path for a single user.
func UserPath(id string) string {
	return UsersEndpoint + "/" + id
}
