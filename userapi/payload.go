package userapi

import "encoding/json"

// UserPayload is the JSON body of a create or update request. It is a value type; two
// payloads are equal if both fields are equal.
type UserPayload struct {
	name string
	job  string
}

type userPayloadJSON struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

func NewUserPayload(name, job string) UserPayload {
	return UserPayload{name: name, job: job}
}

func (p UserPayload) Name() string { return p.name }

func (p UserPayload) Job() string { return p.job }

func (p UserPayload) String() string {
	data, _ := json.Marshal(p)
	return string(data)
}

// MarshalJSON always writes both fields, even when empty, since an empty name or job is
// itself something the tests send.
func (p UserPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(userPayloadJSON{Name: p.name, Job: p.job})
}

func (p *UserPayload) UnmarshalJSON(data []byte) error {
	var fields userPayloadJSON
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*p = UserPayload{name: fields.Name, job: fields.Job}
	return nil
}
