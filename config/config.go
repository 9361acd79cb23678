// Package config loads the settings that tell the test suite which API to talk to.
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/magiconair/properties"
	"github.com/pkg/errors"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultPath is where the configuration file is expected, relative to the working directory.
const DefaultPath = "config.properties"

// DefaultTimeoutMillis is used when the configuration file has no timeout property.
const DefaultTimeoutMillis = 10000

const (
	baseURIKey      = "baseURI"
	timeoutKey      = "timeout"
	headerKeyPrefix = "header."
)

// Configuration is the immutable result of Load.
type Configuration struct {
	baseURI   string
	timeoutMS ldvalue.OptionalInt
	headers   map[string]string
}

// Load reads a properties file. The file must exist and must define baseURI; a test run
// cannot do anything useful without it, so callers should treat any error as fatal.
//
// Recognized properties:
//
//     baseURI=https://reqres.in     (required)
//     timeout=10000                 (milliseconds, optional)
//     header.x-api-key=some-value   (any number of extra request headers, optional)
func Load(path string) (Configuration, error) {
	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Configuration{}, errors.Wrapf(err, "failed to load configuration file %q", path)
	}
	config, err := fromProperties(props)
	if err != nil {
		return Configuration{}, errors.Wrapf(err, "invalid configuration file %q", path)
	}
	return config, nil
}

func fromProperties(props *properties.Properties) (Configuration, error) {
	var c Configuration

	baseURI, ok := props.Get(baseURIKey)
	if !ok || strings.TrimSpace(baseURI) == "" {
		return c, errors.Errorf("%s is required", baseURIKey)
	}
	c.baseURI = baseURI

	if s, ok := props.Get(timeoutKey); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return c, errors.Wrapf(err, "%s must be an integer number of milliseconds", timeoutKey)
		}
		if n <= 0 {
			return c, errors.Errorf("%s must be greater than zero, was %d", timeoutKey, n)
		}
		c.timeoutMS = ldvalue.NewOptionalInt(n)
	}

	headerProps := props.FilterStripPrefix(headerKeyPrefix)
	for _, name := range headerProps.Keys() {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[name] = headerProps.GetString(name, "")
	}

	return c, nil
}

// BaseURI returns the root that all request paths are resolved against.
func (c Configuration) BaseURI() string {
	return c.baseURI
}

// TimeoutMillis returns the configured request timeout, or DefaultTimeoutMillis.
func (c Configuration) TimeoutMillis() int {
	return c.timeoutMS.OrElse(DefaultTimeoutMillis)
}

func (c Configuration) Timeout() time.Duration {
	return time.Duration(c.TimeoutMillis()) * time.Millisecond
}

// DefaultHeaders returns a copy of the headers declared with the "header." prefix.
func (c Configuration) DefaultHeaders() map[string]string {
	ret := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		ret[k] = v
	}
	return ret
}

// WithBaseURI returns a copy of the configuration that targets a different host.
func (c Configuration) WithBaseURI(baseURI string) Configuration {
	c1 := c
	c1.baseURI = baseURI
	c1.headers = c.DefaultHeaders()
	return c1
}
