// Package loop provides the episode controller binding the task, the
// memory store, the template resolver, and the LLM collaborator.
//
// Each episode follows the same sequence:
//   - reset the task and write the returned observation into memory
//   - render the system, per-method, and trajectory templates
//   - send the rendered prompts to the LLM and write back the raw response
//   - parse the response into an action, step the task, record the reward
//
// A run ends when the configured episode budget is met or the task reports
// dataset exhaustion; both are successful terminations. There is no retry
// logic: malformed model output scores 0 and the loop advances.
package loop
