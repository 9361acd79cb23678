package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by their full ID (for instance "get user with existing ID").
// These are set from the -run and -skip command-line options.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	if r.MustMatch.IsDefined() && !r.MustMatch.AnyMatch(name) {
		return false
	}
	return !r.MustNotMatch.AnyMatch(name)
}

func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

// RegexList is a flag.Value that accumulates patterns; the flag can be given more than once.
type RegexList []*regexp.Regexp

func (r RegexList) String() string {
	quoted := make([]string, 0, len(r))
	for _, p := range r {
		quoted = append(quoted, fmt.Sprintf("%q", p.String()))
	}
	return strings.Join(quoted, " or ")
}

func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex %q: %w", value, err)
	}
	*r = append(*r, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// PrintFilterDescription explains, before the run starts, why some tests may show as skipped.
func PrintFilterDescription(w io.Writer, filters RegexFilters) {
	if !filters.IsDefined() {
		return
	}
	fmt.Fprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(w, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(w, "  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Fprintln(w)
}
