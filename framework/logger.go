package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal logging interface used throughout the test suite. A *log.Logger
// and a *zerolog.Logger both satisfy it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return discardLogger{} }

// CapturedMessage is one line of debug output.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is the debug output of one test, oldest first.
type CapturedOutput []CapturedMessage

// CapturingLogger keeps everything written to it in memory. Each test has one; its contents
// go to the TestLogger when the test finishes. The zero value is ready to use.
type CapturingLogger struct {
	lock     sync.Mutex
	messages CapturedOutput
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	m := CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.messages = append(l.messages, m)
}

// Output returns a snapshot of the messages captured so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append(CapturedOutput(nil), l.messages...)
}

// Messages returns just the text of each message.
func (output CapturedOutput) Messages() []string {
	ret := make([]string, 0, len(output))
	for _, m := range output {
		ret = append(ret, m.Message)
	}
	return ret
}

// Dump writes the captured messages with a timestamp. Continuation lines of a multi-line
// message, such as a pretty-printed response body, are indented under the first line.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		stamp := "[" + m.Time.Format(timestampFormat) + "]"
		for i, line := range splitLines(m.Message) {
			if i > 0 {
				stamp = fmt.Sprintf("%*s", len(stamp), "")
			}
			fmt.Fprintf(dest, "%s%s %s\n", prefix, stamp, line)
		}
	}
}
