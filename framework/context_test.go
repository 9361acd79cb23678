package framework

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	finished []string
	failed   []string
	skipped  []string
	output   map[string]CapturedOutput
}

func (r *recordingTestLogger) TestStarted(id TestID) { r.started = append(r.started, id.String()) }

func (r *recordingTestLogger) TestError(TestID, error) {}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	r.finished = append(r.finished, id.String())
	if failed {
		r.failed = append(r.failed, id.String())
	}
	if r.output == nil {
		r.output = make(map[string]CapturedOutput)
	}
	r.output[id.String()] = debugOutput
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.skipped = append(r.skipped, id.String())
}

func TestRunExecutesSubtestsInOrder(t *testing.T) {
	var order []string
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) { order = append(order, "a") })
		c.Run("b", func(c *Context) { order = append(order, "b") })
		c.Run("c", func(c *Context) { order = append(order, "c") })
	})
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.True(t, results.OK())
	assert.Len(t, results.Tests, 3)
}

func TestFailureInOneTestDoesNotStopTheNext(t *testing.T) {
	logger := &recordingTestLogger{}
	ranLast := false
	results := Run(nil, logger, func(c *Context) {
		c.Run("fails", func(c *Context) {
			require.Equal(c, 1, 2)
			t.Error("should not get here after require failed")
		})
		c.Run("panics", func(c *Context) {
			var m map[string]int
			m["x"] = 1
		})
		c.Run("passes", func(c *Context) { ranLast = true })
	})

	assert.True(t, ranLast)
	assert.False(t, results.OK())
	require.Len(t, results.Failures, 2)
	assert.Equal(t, "fails", results.Failures[0].TestID.String())
	assert.Equal(t, "panics", results.Failures[1].TestID.String())
	assert.Contains(t, results.Failures[1].Errors[0].Error(), "unexpected panic")
	assert.Equal(t, []string{"fails", "panics"}, logger.failed)
	assert.Equal(t, []string{"fails", "panics", "passes"}, logger.finished)
}

func TestErrorfDoesNotStopTheTest(t *testing.T) {
	reachedEnd := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("soft failure", func(c *Context) {
			assert.Equal(c, "x", "y")
			reachedEnd = true
		})
	})
	assert.True(t, reachedEnd)
	require.Len(t, results.Failures, 1)
}

func TestFilterExcludesTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^get"))
	logger := &recordingTestLogger{}
	var ran []string

	results := Run(filters.AsFilter, logger, func(c *Context) {
		c.Run("create user", func(c *Context) { ran = append(ran, "create user") })
		c.Run("get user", func(c *Context) { ran = append(ran, "get user") })
	})

	assert.Equal(t, []string{"create user"}, ran)
	assert.Equal(t, []string{"get user"}, logger.skipped)
	passed, failed, skipped := results.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 0, failed)
	assert.Equal(t, 1, skipped)
}

func TestSkipWithReason(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not today")
			t.Error("should not get here after Skip")
		})
	})
	assert.True(t, results.OK())
	assert.Equal(t, []string{"skipped"}, logger.skipped)
	assert.True(t, results.Tests[0].Skipped)
}

func TestDeferredFunctionsRunInReverseOrderEvenOnFailure(t *testing.T) {
	var calls []int
	Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Defer(func() { calls = append(calls, 1) })
			c.Defer(func() { calls = append(calls, 2) })
			c.FailNow()
		})
	})
	assert.Equal(t, []int{2, 1}, calls)
}

func TestDebugOutputIsPassedToTestLogger(t *testing.T) {
	logger := &recordingTestLogger{}
	Run(nil, logger, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Debug("hello %s", "world")
			c.DebugLogger().Printf("second line")
		})
	})
	output := logger.output["x"]
	require.Len(t, output, 2)
	assert.Equal(t, "hello world", output[0].Message)

	var buf bytes.Buffer
	output.Dump(&buf, "  ")
	assert.Contains(t, buf.String(), "] hello world\n")
	assert.Equal(t, []string{"hello world", "second line"}, output.Messages())
}

func TestDumpIndentsContinuationLines(t *testing.T) {
	var logger CapturingLogger
	logger.Printf("<< {\n  \"id\": \"7\"\n}")

	var buf bytes.Buffer
	logger.Output().Dump(&buf, "> ")
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "> ["))
	assert.True(t, strings.HasSuffix(lines[0], "] << {"))
	stampWidth := len("[" + timestampFormat + "]")
	assert.Equal(t, "> "+strings.Repeat(" ", stampWidth)+`   "id": "7"`, lines[1])
	assert.Equal(t, "> "+strings.Repeat(" ", stampWidth)+" }", lines[2])
}

func TestNestedTestIDs(t *testing.T) {
	var id TestID
	Run(nil, nil, func(c *Context) {
		c.Run("outer", func(c *Context) {
			c.Run("inner", func(c *Context) { id = c.ID() })
		})
	})
	assert.Equal(t, "outer/inner", id.String())
}

func TestReformatErrorDropsTrace(t *testing.T) {
	err := errors.New("\n\tError Trace:\tfoo.go:12\n\t            \tbar.go:3\n\tError:      \tNot equal\n\tMessages:   \tName mismatch\n")
	assert.Equal(t, "Error: Not equal\nMessages: Name mismatch", reformatError(err).Error())

	plain := errors.New("plain")
	assert.Equal(t, plain, reformatError(plain))
}
