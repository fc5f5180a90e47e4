// Package cli implements the command-line interface for trendsnap.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/jminnion/trendsnap/pkg/dbf"
)

// encodingEnvVar lets operators set the code page once for a whole shell
// session instead of repeating -encoding on every call.
const encodingEnvVar = "TRENDSNAP_ENCODING"

// Run executes the CLI with the given arguments.
func Run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: trendsnap <command> [options]\ncommands: convert, info, fetch")
	}

	switch args[0] {
	case "convert":
		return runConvert(args[1:])
	case "info":
		return runInfo(args[1:])
	case "fetch":
		return runFetch(args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// resolveEncoding picks the code page: the -encoding flag wins, then
// TRENDSNAP_ENCODING, then the cp850 default built into the decoder.
func resolveEncoding(flagValue string) (string, error) {
	if flagValue != "" {
		if _, err := dbf.LookupCharmap(flagValue); err != nil {
			return "", fmt.Errorf("-encoding: %w", err)
		}
		return flagValue, nil
	}

	if env := os.Getenv(encodingEnvVar); env != "" {
		if _, err := dbf.LookupCharmap(env); err != nil {
			return "", fmt.Errorf("%s: %w", encodingEnvVar, err)
		}
		return env, nil
	}

	return "", nil
}
