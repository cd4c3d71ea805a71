// Command envprint resolves the environment descriptor exactly as the server
// would, validates it, and prints it as JSON. Build tooling uses it to emit
// the front-end's environment file; a non-zero exit means the configuration
// is invalid.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dalemusser/frontenv/internal/app/bootstrap"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		fmt.Fprintln(os.Stderr, "envprint:", err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	coreCfg, appCfg, err := bootstrap.LoadConfig(logger)
	if err != nil {
		return err
	}
	if err := bootstrap.ValidateConfig(coreCfg, appCfg, logger); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(appCfg.Environment)
}
