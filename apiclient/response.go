package apiclient

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte

	parsed    bool
	jsonValue ldvalue.Value
}

// JSON returns the body parsed as JSON, or a null value if it is not valid JSON.
func (r *Response) JSON() ldvalue.Value {
	if !r.parsed {
		r.jsonValue = ldvalue.Parse(r.Body)
		r.parsed = true
	}
	return r.jsonValue
}

// Path looks up a value in the JSON body with a dot-separated path such as "data.first_name".
// A path segment that is a number selects an array element. The result is a null value if
// any part of the path does not exist.
func (r *Response) Path(expr string) ldvalue.Value {
	return LookupPath(r.JSON(), expr)
}

// PathString is like Path, but converts the result to a string: strings as-is, numbers in
// their shortest form ("2" rather than "2.0"), booleans as "true"/"false", and arrays or
// objects as JSON. The second return value is false if the value is null or missing.
func (r *Response) PathString(expr string) (string, bool) {
	return valueAsString(r.Path(expr))
}

// PrettyBody returns the body indented if it is JSON, or unchanged otherwise.
func (r *Response) PrettyBody() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Body, "", "  "); err != nil {
		return string(r.Body)
	}
	return buf.String()
}

// LookupPath evaluates a dot-separated path against a JSON value.
func LookupPath(value ldvalue.Value, expr string) ldvalue.Value {
	if expr == "" {
		return value
	}
	current := value
	for _, segment := range strings.Split(expr, ".") {
		switch current.Type() {
		case ldvalue.ObjectType:
			current = current.GetByKey(segment)
		case ldvalue.ArrayType:
			index, err := strconv.Atoi(segment)
			if err != nil {
				return ldvalue.Null()
			}
			current = current.GetByIndex(index)
		default:
			return ldvalue.Null()
		}
	}
	return current
}

func valueAsString(v ldvalue.Value) (string, bool) {
	switch v.Type() {
	case ldvalue.NullType:
		return "", false
	case ldvalue.StringType:
		return v.StringValue(), true
	case ldvalue.NumberType:
		if v.IsInt() {
			return strconv.Itoa(v.IntValue()), true
		}
		return strconv.FormatFloat(v.Float64Value(), 'f', -1, 64), true
	case ldvalue.BoolType:
		return strconv.FormatBool(v.BoolValue()), true
	default:
		return v.JSONString(), true
	}
}
