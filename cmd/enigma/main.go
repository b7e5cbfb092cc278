// Command enigma enciphers and deciphers text on a simulated Enigma I.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-enigma/pkg/config"
	"github.com/dd0wney/cluso-enigma/pkg/logging"
	"github.com/dd0wney/cluso-enigma/pkg/metrics"
	"github.com/dd0wney/cluso-enigma/pkg/validation"
)

var (
	// Global flags
	configPath  string
	metricsFile string
	verbose     bool

	// Key flags, applied over the key sheet
	keyRotors    string
	keyRings     string
	keyPositions string
	keyReflector string
	keyPlugs     string

	// Set up in PersistentPreRunE
	cfg      *config.Config
	logger   logging.Logger = logging.NewNopLogger()
	registry                = metrics.NewRegistry()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "Enigma I cipher machine simulator",
	Long: `enigma simulates the Enigma I with wheels I to V, reflectors A, B and C
and a plugboard.

The key comes from defaults, then the YAML key sheet (--config), then
ENIGMA_* environment variables, then the key flags. Rotors are listed
fastest first: the first rotor is the rightmost wheel, next to the entry
plate.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		level := cfg.Level()
		if verbose {
			level = logging.DebugLevel
		}
		logging.SetDefaultLogger(logging.NewJSONLogger(cmd.ErrOrStderr(), level))
		logger = logging.With(logging.Component("cli"), logging.String("command", cmd.Name()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return writeMetrics()
	},
}

// loadConfig layers the flags over the sheet and environment.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := applyKeyFlags(&c.Machine); err != nil {
		return nil, err
	}
	if metricsFile != "" {
		c.MetricsFile = metricsFile
	}
	if err := validation.ValidateConfig(c); err != nil {
		return nil, err
	}
	return c, nil
}

func writeMetrics() error {
	if cfg == nil || cfg.MetricsFile == "" {
		return nil
	}
	if err := registry.WriteTextfile(cfg.MetricsFile); err != nil {
		return err
	}
	logger.Debug("metrics written", logging.Path(cfg.MetricsFile))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Key sheet (YAML)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentFlags().StringVar(&keyRotors, "rotors", "", "Wheel order, fastest first (e.g. I,II,III)")
	rootCmd.PersistentFlags().StringVar(&keyRings, "rings", "", "Ring settings, one letter per rotor (e.g. AAA)")
	rootCmd.PersistentFlags().StringVar(&keyPositions, "positions", "", "Start positions, one letter per rotor (e.g. AAA)")
	rootCmd.PersistentFlags().StringVar(&keyReflector, "reflector", "", "Reflector model (A, B or C)")
	rootCmd.PersistentFlags().StringVar(&keyPlugs, "plugs", "", `Plugboard pairs (e.g. "AB CD")`)

	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(selftestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.ErrorLog("command failed", logging.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
