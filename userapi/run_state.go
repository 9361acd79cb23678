package userapi

// RunState carries data produced by one test and consumed by a later one within the same
// run. Currently that is only the ID of the user created by the "create user" test, which
// the "update user" test modifies.
//
// Tests run one at a time, so there is no locking.
type RunState struct {
	createdUserID    string
	hasCreatedUserID bool
}

func NewRunState() *RunState {
	return &RunState{}
}

// SetCreatedUserID stores the ID of a newly created user, replacing any previous value.
func (s *RunState) SetCreatedUserID(id string) {
	s.createdUserID = id
	s.hasCreatedUserID = true
}

// ClearCreatedUserID returns the state to having no created user ID, as if none had been
// stored.
func (s *RunState) ClearCreatedUserID() {
	s.createdUserID = ""
	s.hasCreatedUserID = false
}

// CreatedUserID returns the most recently stored user ID. The second return value is false
// if no ID has been stored in this run.
func (s *RunState) CreatedUserID() (string, bool) {
	return s.createdUserID, s.hasCreatedUserID
}
