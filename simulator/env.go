// Package simulator is the top-level programmatic surface: load a
// scenario, drive the virtual clock, and read back outcomes. It wraps
// scenario.Scenario with the runtime config and logger wiring a caller
// would otherwise have to assemble by hand.
package simulator

import (
	"github.com/fabricsim/fabricsim/internal/config"
	"github.com/fabricsim/fabricsim/internal/infra"
	"github.com/fabricsim/fabricsim/internal/kernel"
	"github.com/fabricsim/fabricsim/internal/logger"
	"github.com/fabricsim/fabricsim/scenario"
)

// Options configures a new Env.
type Options struct {
	RefreshRate     float64
	Verbose         bool
	EnergyUnit      float64
	ExecEnergyModel kernel.ExecEnergyModel
}

// Env is the simulator's programmatic entry point: a Scenario plus the
// runtime config and logger a driver program reads outcomes from.
type Env struct {
	Scenario *scenario.Scenario
	Runtime  *config.RuntimeConfig
	Logger   *logger.Logger
}

// NewEnv loads the scenario config at scenarioPath and the runtime config
// at runtimePath, and starts the kernel. An empty runtimePath yields a
// zero-valued runtime config, in which case the frame recorder is disabled.
func NewEnv(scenarioPath string, runtimePath string, opts Options) (*Env, error) {
	runtime, err := config.LoadRuntimeConfig(runtimePath)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{Verbose: opts.Verbose})

	sc, err := scenario.NewScenario(scenarioPath, log, kernel.Config{
		RefreshRate:     opts.RefreshRate,
		EnergyUnit:      opts.EnergyUnit,
		ExecEnergyModel: opts.ExecEnergyModel,
	})
	if err != nil {
		return nil, err
	}
	sc.Kernel.Start()

	return &Env{Scenario: sc, Runtime: runtime, Logger: log}, nil
}

// Submit admits task, targeting the node named dstName.
func (e *Env) Submit(task *infra.Task, dstName string) error {
	return e.Scenario.Submit(task, dstName)
}

// Run advances the virtual clock to untilT.
func (e *Env) Run(untilT float64) {
	e.Scenario.Kernel.Run(untilT)
}

// Reset resets the scenario and logger to their initial state.
func (e *Env) Reset() {
	e.Scenario.Reset()
	e.Scenario.Kernel.Start()
}

// Close finalizes the env, recording each node's closing outcome in the
// logger.
func (e *Env) Close() {
	for _, n := range e.Scenario.Graph.Nodes() {
		e.Logger.CloseNode(n)
	}
}

// Now returns the current virtual clock value.
func (e *Env) Now() float64 {
	return e.Scenario.Kernel.Now()
}

// ActiveCount returns the number of tasks currently in flight.
func (e *Env) ActiveCount() int {
	return e.Scenario.Kernel.ActiveCount()
}

// ProcessedCount returns the number of tasks that have reached a terminal
// state since the env was created or last Reset.
func (e *Env) ProcessedCount() int {
	return e.Scenario.Kernel.ProcessedCount()
}

// Status returns the whole-infrastructure snapshot.
func (e *Env) Status() scenario.InfraSnapshot {
	return e.Scenario.Status()
}

// NodeEnergy returns the named node's normalized accumulated energy.
func (e *Env) NodeEnergy(name string) (float64, error) {
	return e.Scenario.NodeEnergy(name)
}

// AverageNodeEnergy averages NodeEnergy across names, or every node when
// names is empty.
func (e *Env) AverageNodeEnergy(names []string) (float64, error) {
	return e.Scenario.AverageNodeEnergy(names)
}

// DoneTaskInfo drains and returns the completion tuples accumulated since
// the last call.
func (e *Env) DoneTaskInfo() []logger.DoneTuple {
	return e.Logger.Drain()
}
