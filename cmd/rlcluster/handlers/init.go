package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/imamik/rlcluster/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	runWizard = config.RunWizard

	writeConfig = config.Save
)

// Init runs the configuration wizard and writes the result to outputPath.
func Init(ctx context.Context, out io.Writer, outputPath string) error {
	if outputPath == "" {
		outputPath = config.DefaultConfigFilename
	}
	if fileExists(outputPath) {
		fmt.Fprintf(out, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg, err := result.ToConfig()
	if err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(out, outputPath, cfg)
	return nil
}

func printInitSuccess(out io.Writer, outputPath string, cfg *config.Config) {
	fmt.Fprintf(out, "Configuration saved to %s\n\n", outputPath)
	fmt.Fprintf(out, "  Name:      %s\n", cfg.Name)
	fmt.Fprintf(out, "  Env:       %s\n", cfg.EnvID)
	fmt.Fprintf(out, "  Instances: %d\n", cfg.Instances)
	fmt.Fprintf(out, "  Platform:  %s\n", cfg.Platform.Driver)
	fmt.Fprintf(out, "  Affinity:  %s\n\n", cfg.Affinity)

	if cfg.Platform.Driver == config.DriverHCloud {
		fmt.Fprintf(out, "Set %s (and optionally %s / %s) before deploying.\n",
			config.EnvHCloudToken, config.EnvS3AccessKey, config.EnvS3SecretKey)
	}
	fmt.Fprintln(out, "Next: rlcluster plan, then rlcluster deploy")
}
