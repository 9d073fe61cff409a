// Package cmd wires the cobra CLI driving the simulator: a scenario
// config, a task stream (CSV or a synthetic Poisson generator), and a
// policy choice, run to a given virtual-time horizon.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	scenarioPath    string
	runtimePath     string
	taskStreamPath  string
	policyName      string
	horizon         float64
	refreshRate     float64
	energyUnit      float64
	execEnergyModel string
	logLevel        string
	arrivalRate     float64
	arrivalSeed     int64
	arrivalCount    int
	arrivalSrcName  string
)

var rootCmd = &cobra.Command{
	Use:   "fabricsim",
	Short: "Discrete-event simulator for task offloading across an edge/fog/cloud fabric",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario to a virtual-time horizon",
	RunE:  runScenario,
}

// Execute runs the CLI, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "path to the scenario config (required)")
	runCmd.Flags().StringVar(&runtimePath, "runtime", "", "path to the optional runtime config")
	runCmd.Flags().StringVar(&taskStreamPath, "tasks", "", "path to a task stream CSV; takes precedence over --arrival-rate when both are given")
	runCmd.Flags().StringVar(&policyName, "policy", "random", "offloading policy: random, round-robin, greedy, dqn")
	runCmd.Flags().Float64Var(&horizon, "horizon", 100, "virtual-time horizon to run to")
	runCmd.Flags().Float64Var(&refreshRate, "refresh-rate", 1, "energy tick interval (completions are drained immediately)")
	runCmd.Flags().Float64Var(&energyUnit, "energy-unit", 1, "divisor applied to reported accumulated energy")
	runCmd.Flags().StringVar(&execEnergyModel, "exec-energy-model", "linear", "execution energy formula: linear or cubic")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 0, "Poisson arrival rate (tasks per virtual-time unit); 0 disables the generator")
	runCmd.Flags().Int64Var(&arrivalSeed, "arrival-seed", 1, "seed for the synthetic Poisson arrival generator")
	runCmd.Flags().IntVar(&arrivalCount, "arrival-count", 100, "number of synthetic tasks to generate")
	runCmd.Flags().StringVar(&arrivalSrcName, "arrival-src", "", "source node name for synthetic arrivals (required with --arrival-rate)")

	rootCmd.AddCommand(runCmd)
}

func mustParseLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	return level
}
