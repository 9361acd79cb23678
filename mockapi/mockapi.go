// Package mockapi is an in-process imitation of the public user API that the contract tests
// target. It lets the suite be checked without network access, and is used by the -mock
// option of the command-line tool.
package mockapi

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/foodics/user-api-contract-tests/framework"

	"github.com/google/uuid"
)

const usersPath = "/api/users"

// User is a seeded user record, in the same shape as the real API's "data" object.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

type createdUser struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type userRequest struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type singleUserResponse struct {
	Data    interface{} `json:"data"`
	Support support     `json:"support"`
}

type support struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

var supportInfo = support{
	URL:  "https://example.com/support",
	Text: "This response was produced by the in-process mock user API.",
}

var seededNames = [][2]string{
	{"George", "Bluth"}, {"Janet", "Weaver"}, {"Emma", "Wong"}, {"Eve", "Holt"},
	{"Charles", "Morris"}, {"Tracey", "Ramos"}, {"Michael", "Lawson"}, {"Lindsay", "Ferguson"},
	{"Tobias", "Funke"}, {"Byron", "Fields"}, {"George", "Edwards"}, {"Rachel", "Howell"},
}

// SeededUsers returns the users that every Handler starts with. User 2 is Janet Weaver.
func SeededUsers() []User {
	ret := make([]User, 0, len(seededNames))
	for i, n := range seededNames {
		id := i + 1
		ret = append(ret, User{
			ID:        id,
			Email:     fmt.Sprintf("%s.%s@reqres.in", strings.ToLower(n[0]), strings.ToLower(n[1])),
			FirstName: n[0],
			LastName:  n[1],
			Avatar:    fmt.Sprintf("https://reqres.in/img/faces/%d-image.jpg", id),
		})
	}
	return ret
}

// Handler serves the user API. It is safe for concurrent use.
type Handler struct {
	seeded  map[string]User
	created map[string]createdUser
	now     func() time.Time
	logger  framework.Logger
	lock    sync.Mutex
}

func NewHandler() *Handler {
	h := &Handler{
		seeded:  make(map[string]User),
		created: make(map[string]createdUser),
		now:     time.Now,
		logger:  framework.NullLogger(),
	}
	for _, u := range SeededUsers() {
		h.seeded[strconv.Itoa(u.ID)] = u
	}
	return h
}

// WithLogger makes the handler log every request it receives. It must be called before the
// handler starts serving.
func (h *Handler) WithLogger(logger framework.Logger) *Handler {
	if logger == nil {
		logger = framework.NullLogger()
	}
	h.logger = logger
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("Mock user API received %s %s", r.Method, r.URL.Path)
	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == usersPath:
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
			return
		}
		h.createUser(w, r)
	case strings.HasPrefix(path, usersPath+"/") && !strings.Contains(path[len(usersPath)+1:], "/"):
		id := path[len(usersPath)+1:]
		switch r.Method {
		case http.MethodGet:
			h.getUser(w, id)
		case http.MethodPut:
			h.updateUser(w, r, id)
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		}
	default:
		writeJSON(w, http.StatusNotFound, struct{}{})
	}
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	fields, ok := readUserRequest(w, r)
	if !ok {
		return
	}
	if fields.Name == "" || fields.Job == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing name or job"})
		return
	}
	id := uuid.NewString()
	h.lock.Lock()
	h.created[id] = createdUser{Name: fields.Name, Job: fields.Job}
	h.lock.Unlock()
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":        id,
		"name":      fields.Name,
		"job":       fields.Job,
		"createdAt": h.timestamp(),
	})
}

func (h *Handler) getUser(w http.ResponseWriter, id string) {
	h.lock.Lock()
	seeded, isSeeded := h.seeded[id]
	created, isCreated := h.created[id]
	h.lock.Unlock()
	switch {
	case isSeeded:
		writeJSON(w, http.StatusOK, singleUserResponse{Data: seeded, Support: supportInfo})
	case isCreated:
		data := map[string]string{"id": id, "name": created.Name, "job": created.Job}
		writeJSON(w, http.StatusOK, singleUserResponse{Data: data, Support: supportInfo})
	default:
		writeJSON(w, http.StatusNotFound, struct{}{})
	}
}

// updateUser behaves like the public API, which accepts an update for any ID and echoes it.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request, id string) {
	fields, ok := readUserRequest(w, r)
	if !ok {
		return
	}
	h.lock.Lock()
	if _, isCreated := h.created[id]; isCreated {
		h.created[id] = createdUser{Name: fields.Name, Job: fields.Job}
	}
	h.lock.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{
		"name":      fields.Name,
		"job":       fields.Job,
		"updatedAt": h.timestamp(),
	})
}

// CreatedUser returns the current name and job of a user created through the API.
func (h *Handler) CreatedUser(id string) (name, job string, ok bool) {
	h.lock.Lock()
	defer h.lock.Unlock()
	u, ok := h.created[id]
	return u.Name, u.Job, ok
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func readUserRequest(w http.ResponseWriter, r *http.Request) (userRequest, bool) {
	var fields userRequest
	data, err := ioutil.ReadAll(r.Body)
	if err == nil && len(data) > 0 {
		err = json.Unmarshal(data, &fields)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request body"})
		return fields, false
	}
	return fields, true
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	data, _ := json.Marshal(value)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
