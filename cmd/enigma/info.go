package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-enigma/pkg/config"
	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"github.com/dd0wney/cluso-enigma/pkg/health"
	"github.com/dd0wney/cluso-enigma/pkg/logging"
	"github.com/dd0wney/cluso-enigma/pkg/validation"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List rotor and reflector models",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

var validateCmd = &cobra.Command{
	Use:   "validate <sheet.yaml>",
	Short: "Check a key sheet",
	Long: `Loads a key sheet, applies the environment, and reports every problem
found. A sheet that repeats a wheel is accepted with a warning, since the
simulator can run it but a real box holds one of each wheel.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Check the wheel tables and the configured key",
	Long: `Verifies every wheel wiring, enciphers a pinned known answer, and
round-trips a sample message through the configured key. Prints the results as JSON
and fails if any check is unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runSelftest,
}

func runModels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ROTOR\tWIRING\tNOTCH")
	for _, model := range enigma.RotorModels() {
		wiring, notch, _ := enigma.RotorSpec(model)
		fmt.Fprintf(w, "%s\t%s\t%c\n", model, wiring, notch)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "REFLECTOR\tWIRING\t")
	for _, model := range enigma.ReflectorModels() {
		wiring, _ := enigma.ReflectorSpec(model)
		fmt.Fprintf(w, "%s\t%s\t\n", model, wiring)
	}
	return w.Flush()
}

func runValidate(cmd *cobra.Command, args []string) error {
	sheet, err := config.Load(args[0])
	if err != nil {
		logger.Error("key sheet rejected", logging.Path(args[0]), logging.Error(err))
		return err
	}

	if err := validation.ValidateRotorOrder(&sheet.Machine); err != nil {
		logger.Warn("key sheet repeats a wheel", logging.Path(args[0]), logging.Error(err))
	}

	m, err := enigma.New(sheet.Machine)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", args[0], describe(m))
	return nil
}

// describe renders a machine's key the way it is read off the machine:
// reflector, wheels slowest first, rings, windows and plugs.
func describe(m *enigma.Machine) string {
	s := m.Settings()
	n := len(s.Rotors)
	wheels := make([]string, n)
	rings := make([]byte, n)
	windows := make([]byte, n)
	for i, r := range s.Rotors {
		wheels[n-1-i] = r.Model
		rings[n-1-i] = r.Ring[0]
		windows[n-1-i] = r.Position[0]
	}
	plugs := s.Plugboard
	if plugs == "" {
		plugs = "none"
	}
	return fmt.Sprintf("UKW-%s %v rings %s start %s plugs %s", s.Reflector, wheels, rings, windows, plugs)
}

var errSelftestFailed = errors.New("self-test failed")

func runSelftest(cmd *cobra.Command, args []string) error {
	hc := health.SelfTest(cfg.Machine)
	hc.OnResult(registry.SetSelfTest)

	resp := hc.Check()
	if err := resp.WriteJSON(cmd.OutOrStdout()); err != nil {
		return err
	}

	for name, c := range resp.Checks {
		if c.Status != health.StatusHealthy {
			logger.Warn("self-test check not healthy",
				logging.String("check", name),
				logging.String("status", string(c.Status)),
				logging.String("message", c.Message),
			)
		}
	}

	if !resp.Healthy() {
		return errSelftestFailed
	}
	return nil
}
