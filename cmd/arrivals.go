package cmd

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/fabricsim/fabricsim/internal/infra"
)

// generatePoissonArrivals synthesizes count tasks with exponentially
// distributed interarrival times (a Poisson arrival process at the given
// rate), deterministic for a given seed. Each task is named with a UUID
// drawn from the same seeded stream, so two runs with the same seed
// produce byte-identical names as well as byte-identical timings.
func generatePoissonArrivals(rate float64, count int, seed int64, srcName string) []arrival {
	rng := rand.New(rand.NewSource(seed))

	out := make([]arrival, 0, count)
	currentTime := 0.0
	for i := 0; i < count; i++ {
		currentTime += exponentialInterarrival(rng, rate)
		id, err := uuid.NewRandomFromReader(rng)
		name := "task"
		if err == nil {
			name = id.String()
		}
		task := infra.NewTask(int64(i), name, 8_000_000, 1.0, 1_000_000, 0, srcName)
		out = append(out, arrival{generationTime: currentTime, task: task})
	}
	return out
}

func exponentialInterarrival(rng *rand.Rand, rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	return -math.Log(u) / rate
}
