// Package cmd implements the zxinglight command line.
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thotypous/zxinglight/internal/config"
	"github.com/thotypous/zxinglight/multi"
)

// ExitError ends the command with Code after its output has been written.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// NewRootCommand builds the zxinglight command. Each call returns an
// independent command with its own configuration.
func NewRootCommand() *cobra.Command {
	var cfgFile string
	loader := config.NewLoader()

	root := &cobra.Command{
		Use:   "zxinglight [flags] <image>...",
		Short: "Decode the barcodes in image files",
		Long: `Decode every 1-D and 2-D barcode found in the given images.

Each symbol is printed as "[FORMAT] text", prefixed by the file name when
more than one image is given. Supported inputs are JPEG, PNG, GIF, BMP, TIFF
and WebP.

Settings can also come from ZXINGLIGHT_* environment variables or a
zxinglight.yaml file; flags take precedence.

Examples:
  zxinglight label.png
  zxinglight --format qr_code --try-harder photo.jpg
  zxinglight --hybrid --max-size 1600 *.jpg`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd, loader, cfgFile)
			if err != nil {
				return err
			}
			return scan(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, args)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd, loader, cfgFile)
			if err != nil {
				return err
			}
			return cfg.WriteYAML(cmd.OutOrStdout())
		},
	})

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./zxinglight.yaml, then $XDG_CONFIG_HOME/zxinglight/)")
	flags.StringP("format", "f", "all", "symbology to look for, by name (qr_code, ean_13, ...) or id")
	flags.Bool("try-harder", false, "spend more time looking for barcodes")
	flags.Bool("hybrid", false, "use local thresholding, better for uneven lighting")
	flags.Int("max-size", 0, "shrink images whose longest edge exceeds this many pixels (0 disables)")
	flags.Int("max-attempts", multi.DefaultMaxAttempts, "maximum decode passes per image")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("metrics-file", "", "write Prometheus metrics to this file after scanning")
	return root
}

func load(cmd *cobra.Command, loader *config.Loader, configFile string) (*config.Config, error) {
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return loader.Load(configFile)
}

// Run executes the command with args and returns the process exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
