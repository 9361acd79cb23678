package userapi

import (
	"github.com/foodics/user-api-contract-tests/apiclient"
	"github.com/foodics/user-api-contract-tests/framework"
)

const (
	createUserWithValidPayload = "create user with valid payload"
	createUserWithEmptyPayload = "create user with empty payload"
	getUserWithExistingID      = "get user with existing ID"
	getUserWithNonexistentID   = "get user with nonexistent ID"
	updateUserWithValidPayload = "update user with valid payload"
)

// Scenario is one top-level test in the suite.
type Scenario struct {
	Name   string
	Action func(*T)
}

// AllScenarios is the suite in execution order. Order matters: the update test works on the
// user that the first test creates.
var AllScenarios = []Scenario{
	{createUserWithValidPayload, DoCreateUserWithValidPayloadTest},
	{createUserWithEmptyPayload, DoCreateUserWithEmptyPayloadTest},
	{getUserWithExistingID, DoGetUserWithExistingIDTest},
	{getUserWithNonexistentID, DoGetUserWithNonexistentIDTest},
	{updateUserWithValidPayload, DoUpdateUserWithValidPayloadTest},
}

// RunTestSuite runs all scenarios once, in order, sharing one template and one RunState.
func RunTestSuite(
	template *apiclient.RequestTemplate,
	state *RunState,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return RunScenarios(AllScenarios, template, state, filter, testLogger)
}

// RunScenarios is like RunTestSuite but with an explicit list of scenarios.
func RunScenarios(
	scenarios []Scenario,
	template *apiclient.RequestTemplate,
	state *RunState,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	if state == nil {
		state = NewRunState()
	}
	env := &environment{template: template, state: state}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}
		for _, s := range scenarios {
			t.Run(s.Name, s.Action)
		}
	})
}
