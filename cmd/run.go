package cmd

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fabricsim/fabricsim/internal/config"
	"github.com/fabricsim/fabricsim/internal/infra"
	"github.com/fabricsim/fabricsim/internal/kernel"
	"github.com/fabricsim/fabricsim/internal/policy"
	"github.com/fabricsim/fabricsim/simerr"
	"github.com/fabricsim/fabricsim/simulator"
)

type arrival struct {
	generationTime float64
	task           *infra.Task
}

func runScenario(cmd *cobra.Command, args []string) error {
	logrus.SetLevel(mustParseLogLevel())

	if scenarioPath == "" {
		return fmt.Errorf("--scenario is required")
	}
	if taskStreamPath == "" && arrivalRate <= 0 {
		return fmt.Errorf("either --tasks or --arrival-rate must be given")
	}

	env, err := simulator.NewEnv(scenarioPath, runtimePath, simulator.Options{
		RefreshRate:     refreshRate,
		Verbose:         logLevel == "debug",
		EnergyUnit:      energyUnit,
		ExecEnergyModel: kernel.ExecEnergyModel(execEnergyModel),
	})
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	arrivals, err := loadArrivals()
	if err != nil {
		return err
	}

	pol, err := newPolicy(policyName)
	if err != nil {
		return err
	}

	logrus.Infof("starting run: %d tasks, horizon=%.3f, policy=%s", len(arrivals), horizon, policyName)

	idx := 0
	for idx < len(arrivals) && arrivals[idx].generationTime <= horizon {
		env.Run(arrivals[idx].generationTime)
		dst, err := pol.Decide(env.Scenario, policy.TaskInfo{
			Id:      arrivals[idx].task.Id,
			Size:    arrivals[idx].task.Size,
			SrcName: arrivals[idx].task.SrcName,
		})
		if err != nil {
			logrus.Warnf("policy could not place task %d: %v", arrivals[idx].task.Id, err)
			idx++
			continue
		}
		if err := env.Submit(arrivals[idx].task, dst); err != nil {
			var simErr *simerr.Error
			if errors.As(err, &simErr) && !simerr.IsKnown(simErr.Kind) {
				return fmt.Errorf("task %d: unknown failure kind %q: %w", arrivals[idx].task.Id, simErr.Kind, err)
			}
			logrus.Debugf("task %d submission ended: %v", arrivals[idx].task.Id, err)
		}
		idx++
	}
	env.Run(horizon)
	env.Close()

	logrus.Infof("run complete: processed=%d active=%d", env.ProcessedCount(), env.ActiveCount())
	for _, done := range env.DoneTaskInfo() {
		logrus.Debugf("task %d status=%d dst=%s at=%.3f", done.TaskId, done.Status, done.Dst, done.At)
	}
	return nil
}

func loadArrivals() ([]arrival, error) {
	if taskStreamPath != "" {
		records, err := config.LoadTaskStream(taskStreamPath)
		if err != nil {
			return nil, err
		}
		out := make([]arrival, len(records))
		for i, r := range records {
			out[i] = arrival{
				generationTime: r.GenerationTime,
				task:           infra.NewTask(r.TaskID, r.TaskName, r.TaskSize, r.CyclesPerBit, r.TransBitRate, r.DDL, r.SrcName),
			}
		}
		return out, nil
	}
	if arrivalSrcName == "" {
		return nil, fmt.Errorf("--arrival-src is required with --arrival-rate")
	}
	return generatePoissonArrivals(arrivalRate, arrivalCount, arrivalSeed, arrivalSrcName), nil
}

func newPolicy(name string) (policy.Policy, error) {
	switch name {
	case "random":
		return policy.NewRandom(arrivalSeed), nil
	case "round-robin":
		return policy.NewRoundRobin(), nil
	case "greedy":
		return policy.NewGreedy(), nil
	case "dqn":
		return policy.NewDQN(), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}
