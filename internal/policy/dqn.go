package policy

// DQN is a placeholder for a learned offloading policy. It satisfies both
// Policy and Trainable so a kernel wired against the Trainable capability
// can exercise the StoreTransition/Update call sites, but it carries no
// learned weights: Decide falls back to Greedy until an actual model is
// plugged in behind these same two methods.
type DQN struct {
	fallback   *Greedy
	transitions []dqnTransition
}

type dqnTransition struct {
	task    TaskInfo
	chosen  string
	reward  float64
}

// NewDQN builds a DQN policy with an empty transition buffer.
func NewDQN() *DQN {
	return &DQN{fallback: NewGreedy()}
}

// Decide implements Policy.
func (p *DQN) Decide(env Env, task TaskInfo) (string, error) {
	return p.fallback.Decide(env, task)
}

// StoreTransition implements Trainable by appending to an in-memory
// replay buffer. No training loop consumes it yet.
func (p *DQN) StoreTransition(task TaskInfo, chosen string, reward float64) {
	p.transitions = append(p.transitions, dqnTransition{task: task, chosen: chosen, reward: reward})
}

// Update implements Trainable. It is a no-op: wiring the capability ahead
// of an actual gradient step keeps callers agnostic to when training
// lands.
func (p *DQN) Update() {}

// ReplaySize reports how many transitions have been buffered, mostly
// useful for tests asserting StoreTransition was actually called.
func (p *DQN) ReplaySize() int {
	return len(p.transitions)
}
