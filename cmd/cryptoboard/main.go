// Package main is the cryptoboard entrypoint.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rshade/cryptoboard/internal/cli"
	"github.com/rshade/cryptoboard/internal/config"
	"github.com/rshade/cryptoboard/internal/market"
	"github.com/rshade/cryptoboard/pkg/version"
)

// Process exit codes.
const (
	exitOK            = 0
	exitError         = 1
	exitInvalidConfig = 2
	exitFetchFailed   = 3
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCodeFor(err))
	}
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SilenceErrors = true
	return root.Execute()
}

// exitCodeFor maps an error returned by run to the process exit code.
func exitCodeFor(err error) int {
	var fetchErr *market.FetchError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrInvalidConfig):
		return exitInvalidConfig
	case errors.As(err, &fetchErr):
		return exitFetchFailed
	default:
		return exitError
	}
}
