package main

import (
	"fmt"
	"net/http/httptest"
	"os"

	"github.com/foodics/user-api-contract-tests/apiclient"
	"github.com/foodics/user-api-contract-tests/config"
	"github.com/foodics/user-api-contract-tests/framework"
	"github.com/foodics/user-api-contract-tests/mockapi"
	"github.com/foodics/user-api-contract-tests/userapi"

	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 1
	}

	logLevel := zerolog.InfoLevel
	if params.debugAll {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logLevel).
		With().Timestamp().Logger()

	cfg, err := config.Load(params.configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Cannot start test run")
		return 1
	}

	if params.mock {
		server := httptest.NewServer(mockapi.NewHandler().WithLogger(&logger))
		defer server.Close()
		logger.Info().Str("url", server.URL).Msg("Started mock user API")
		cfg = cfg.WithBaseURI(server.URL)
	}

	template := apiclient.BuildTemplate(cfg)
	logger.Info().
		Str("baseURI", template.BaseURI()).
		Dur("timeout", template.Timeout()).
		Msg("Request template ready")
	for name, values := range template.Headers() {
		logger.Debug().Str("header", name).Strs("values", values).Msg("Default request header")
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := newConsoleTestLogger(params, template)

	results := userapi.RunTestSuite(template, userapi.NewRunState(), params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		return 1
	}
	return 0
}

// newConsoleTestLogger decides which tests get their debug output printed. Failed tests do,
// if the template asks for it, unless -quiet is set; -debug-all turns it on for every test.
func newConsoleTestLogger(params commandParams, template *apiclient.RequestTemplate) *ConsoleTestLogger {
	return &ConsoleTestLogger{
		DebugOutputOnFailure: params.debugAll || (template.LogsOnFailure() && !params.quiet),
		DebugOutputOnSuccess: params.debugAll,
	}
}
