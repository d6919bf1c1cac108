package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-pastac/internal/config"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configPath   string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "pastac",
	Short: "Compiler front end for a small Pascal-like language",
	Long: `pastac compiles a small Pascal-like imperative language down to
optimized three-address intermediate code.

The pipeline has four stages:
  - a scanner producing a token stream with source positions
  - a recursive-descent parser with interleaved semantic analysis
  - an IR generator lowering the typed AST to three-address code
  - an optimizer iterating five local dataflow passes to a fixed point

Each stage is exposed as its own subcommand so intermediate results can
be inspected.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a pastac.yaml settings file")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "output format for diagnostics: text or json")
}

// readSource reads the single source-file argument.
func readSource(args []string) (source, filename string, err error) {
	filename = args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return string(content), filename, nil
}

// loadConfig resolves the settings for compiling filename: the --config
// file if given, else a pastac.yaml next to the source, else defaults.
// The --format flag overrides the configured output format.
func loadConfig(filename string) (config.Config, error) {
	var cfg config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadNear(filename)
	}
	if err != nil {
		return config.Config{}, err
	}
	if outputFormat != "" {
		if outputFormat != "text" && outputFormat != "json" {
			return config.Config{}, fmt.Errorf("unknown output format %q", outputFormat)
		}
		cfg.Output.Format = outputFormat
	}
	return cfg, nil
}
