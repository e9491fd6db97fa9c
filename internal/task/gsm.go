package task

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/epirun/epirun/internal/dataset"
	"github.com/epirun/epirun/internal/memory"
)

// answerDelimiter separates the worked solution from the final numeric
// answer in a record's answer field (the GSM8K convention).
const answerDelimiter = "####"

// numberPattern matches a signed decimal number.
var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

func init() {
	Register("gsm8k", func(cfg Config) (Task, error) {
		if cfg.Provider == nil {
			return nil, errors.New("gsm8k task requires a dataset provider")
		}
		if cfg.Subtask < 0 {
			return nil, fmt.Errorf("starting subtask must be non-negative, got %d", cfg.Subtask)
		}
		return NewGSM8K(cfg.Provider, cfg.Subtask), nil
	})
}

// GSM8K is a dataset-driven numeric QA task with single-step episodes: each
// reset presents one question, the following step scores the proposed
// answer against the ground truth and terminates the episode.
type GSM8K struct {
	provider dataset.Provider
	eval     Evaluator

	// episode-local state, owned by the controller/task pair
	subtask int
	answer  float64
}

// NewGSM8K creates a GSM8K task over provider, starting at episode index
// start, with the default evaluator tolerances.
func NewGSM8K(provider dataset.Provider, start int) *GSM8K {
	return &GSM8K{
		provider: provider,
		eval:     DefaultEvaluator(),
		subtask:  start,
	}
}

// Subtask returns the current episode counter.
func (t *GSM8K) Subtask() int {
	return t.subtask
}

// Reset loads the next example and derives its ground-truth answer. The
// counter check keeps the original harness's strict-greater comparison, so
// a counter equal to the dataset length slips past it and fails at the
// indexed load instead; both paths surface ErrDatasetOutOfBounds and end
// the run gracefully.
func (t *GSM8K) Reset(ctx context.Context, next int) (Observation, error) {
	if err := ctx.Err(); err != nil {
		return Observation{}, err
	}
	if next >= 0 {
		t.subtask = next
	}
	if t.subtask > t.provider.Len() {
		return Observation{}, fmt.Errorf("%w: episode %d, dataset length %d",
			ErrDatasetOutOfBounds, t.subtask, t.provider.Len())
	}

	rec, err := t.provider.Get(t.subtask)
	if err != nil {
		if errors.Is(err, dataset.ErrIndexOutOfRange) {
			return Observation{}, fmt.Errorf("%w: episode %d, dataset length %d",
				ErrDatasetOutOfBounds, t.subtask, t.provider.Len())
		}
		return Observation{}, fmt.Errorf("failed to load example %d: %w", t.subtask, err)
	}

	truth, err := parseGroundTruth(rec.Answer)
	if err != nil {
		return Observation{}, fmt.Errorf("example %d: %w", t.subtask, err)
	}
	t.answer = truth

	return Observation{Key: memory.KeyObservation, Text: rec.Question}, nil
}

// AnswerParser strips thousands separators and returns the last
// signed-decimal substring of raw, or the empty string when none exists.
// Absence is representable, so this never fails.
func (t *GSM8K) AnswerParser(raw string) string {
	cleaned := strings.ReplaceAll(raw, ",", "")
	matches := numberPattern.FindAllString(cleaned, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}

// Step scores action against the stored ground truth, advances the episode
// counter, and terminates the episode. Malformed actions score 0.
func (t *GSM8K) Step(action string) (Observation, float64, bool) {
	reward := t.eval.Score(action, t.answer)
	t.subtask++
	return Observation{}, reward, true
}

// parseGroundTruth extracts the numeric answer trailing the last
// answerDelimiter, with thousands separators stripped.
func parseGroundTruth(answer string) (float64, error) {
	idx := strings.LastIndex(answer, answerDelimiter)
	if idx < 0 {
		return 0, fmt.Errorf("answer field has no %q delimiter", answerDelimiter)
	}
	raw := strings.TrimSpace(answer[idx+len(answerDelimiter):])
	raw = strings.ReplaceAll(raw, ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("ground truth %q is not numeric: %w", raw, err)
	}
	return value, nil
}
