package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/foodics/user-api-contract-tests/config"
	"github.com/foodics/user-api-contract-tests/framework"
)

type commandParams struct {
	configPath string
	filters    framework.RegexFilters
	quiet      bool
	debugAll   bool
	mock       bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.configPath, "config", config.DefaultPath, "path of the configuration properties file")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.quiet, "quiet", false, "do not show request/response details for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.mock, "mock", false, "run against an in-process mock of the user API instead of baseURI")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	return true
}
