package loop

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/epirun/epirun/internal/llm"
	"github.com/epirun/epirun/internal/logging"
	"github.com/epirun/epirun/internal/memory"
	"github.com/epirun/epirun/internal/prompt"
	"github.com/epirun/epirun/internal/results"
	"github.com/epirun/epirun/internal/task"
)

// DefaultMethod selects the per-method prompt template when the
// configuration does not name one.
const DefaultMethod = "direct"

// ExitReason indicates why a run stopped.
type ExitReason int

const (
	ExitReasonUnknown   ExitReason = iota
	ExitReasonBudgetMet            // Configured episode budget reached
	ExitReasonExhausted            // Dataset ran out of examples
	ExitReasonError                // Configuration or transport failure
)

// String returns a human-readable description of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonBudgetMet:
		return "budget met"
	case ExitReasonExhausted:
		return "dataset exhausted"
	case ExitReasonError:
		return "error"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a run. Budget-met and exhausted runs are
// both successful; they differ only in how many rewards were collected.
type Result struct {
	Reason   ExitReason
	Episodes int
	Rewards  []float64
	Error    error
}

// MeanReward returns the average collected reward, or 0 for an empty run.
func (r Result) MeanReward() float64 {
	if len(r.Rewards) == 0 {
		return 0
	}
	var sum float64
	for _, reward := range r.Rewards {
		sum += reward
	}
	return sum / float64(len(r.Rewards))
}

// controller run states.
const (
	stateIdle = iota
	stateRunning
	stateFinished
)

// Options holds the controller's dependencies. Task, Resolver, Memory, and
// Client are required; Results is optional.
type Options struct {
	Task     task.Task
	Resolver *prompt.Resolver
	Memory   *memory.Store
	Client   llm.Client
	Results  *results.Store

	// MaxEpisodes is the episode budget. Must be positive.
	MaxEpisodes int
	// Method selects the per-method prompt template (<method>_prompt).
	// Defaults to DefaultMethod.
	Method string
	// Logger defaults to the package-level logger.
	Logger *logging.Logger
}

// Controller drives a task through episodes up to the configured budget.
// It owns the task's mutable episode state for the duration of a run and
// must not be shared across goroutines.
type Controller struct {
	task     task.Task
	resolver *prompt.Resolver
	store    *memory.Store
	client   llm.Client
	results  *results.Store

	maxEpisodes int
	method      string
	logger      *logging.Logger
	state       int
}

// NewController creates a Controller from opts.
func NewController(opts Options) (*Controller, error) {
	if opts.Task == nil {
		return nil, errors.New("task is required")
	}
	if opts.Resolver == nil {
		return nil, errors.New("template resolver is required")
	}
	if opts.Memory == nil {
		return nil, errors.New("memory store is required")
	}
	if opts.Client == nil {
		return nil, errors.New("llm client is required")
	}
	if opts.MaxEpisodes <= 0 {
		return nil, fmt.Errorf("episode budget must be positive, got %d", opts.MaxEpisodes)
	}
	method := opts.Method
	if method == "" {
		method = DefaultMethod
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{
		task:        opts.Task,
		resolver:    opts.Resolver,
		store:       opts.Memory,
		client:      opts.Client,
		results:     opts.Results,
		maxEpisodes: opts.MaxEpisodes,
		method:      method,
		logger:      logger,
		state:       stateIdle,
	}, nil
}

// PromptNames returns the logical template names rendered each episode, in
// dispatch order.
func (c *Controller) PromptNames() []string {
	return []string{"system_prompt", c.method + "_prompt", "trajectory"}
}

// RenderData is the data value passed to every template render.
type RenderData struct {
	Method  string
	Episode int
}

// Run executes episodes until the budget is met or the dataset is
// exhausted. A Controller runs once; calling Run again returns an error
// result.
func (c *Controller) Run(ctx context.Context) Result {
	if c.state != stateIdle {
		return Result{Reason: ExitReasonError, Error: errors.New("controller has already run")}
	}
	c.state = stateRunning
	defer func() { c.state = stateFinished }()

	rewards := make([]float64, 0, c.maxEpisodes)
	for episode := 0; episode < c.maxEpisodes; episode++ {
		if err := ctx.Err(); err != nil {
			return Result{Reason: ExitReasonError, Episodes: episode, Rewards: rewards, Error: err}
		}

		reward, err := c.runEpisode(ctx, episode)
		if err != nil {
			if errors.Is(err, task.ErrDatasetOutOfBounds) {
				// Graceful end of the run; collected rewards remain valid.
				c.logger.Info("dataset exhausted", "episodes", episode)
				return Result{Reason: ExitReasonExhausted, Episodes: episode, Rewards: rewards}
			}
			return Result{Reason: ExitReasonError, Episodes: episode, Rewards: rewards, Error: err}
		}
		rewards = append(rewards, reward)
		c.logger.Info("episode complete", "episode", episode, "reward", reward)
	}

	return Result{Reason: ExitReasonBudgetMet, Episodes: c.maxEpisodes, Rewards: rewards}
}

// runEpisode executes one reset-to-terminal cycle and returns its reward.
func (c *Controller) runEpisode(ctx context.Context, episode int) (float64, error) {
	obs, err := c.task.Reset(ctx, -1)
	if err != nil {
		return 0, err
	}
	c.store.Write(obs.Key, obs.Text)

	data := RenderData{Method: c.method, Episode: episode}
	names := c.PromptNames()
	prompts := make([]string, 0, len(names))
	for _, name := range names {
		rendered, err := c.resolver.Render(name, data)
		if err != nil {
			// Includes ErrTemplateNotFound: a configuration error, fatal
			// to the run.
			return 0, err
		}
		prompts = append(prompts, rendered)
	}

	response, err := c.client.Complete(ctx, prompts)
	if err != nil {
		return 0, fmt.Errorf("llm request failed: %w", err)
	}
	c.store.Write(memory.KeyResponse, response)

	action := c.task.AnswerParser(response)
	c.store.Write(memory.KeyAction, action)

	_, reward, _ := c.task.Step(action)
	c.store.Write(memory.KeyReward, strconv.FormatFloat(reward, 'g', -1, 64))

	if c.results != nil {
		record := results.RewardRecord{Episode: episode, Action: action, Reward: reward}
		if err := c.results.AppendReward(record); err != nil {
			// Recording is a supplement; the run goes on.
			c.logger.Warn("failed to record reward", "episode", episode, "error", err)
		}
	}
	return reward, nil
}
