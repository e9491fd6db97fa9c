// Package testutil provides shared test fixtures and environment helpers
// for epirun: sample question/answer records, template tree builders, and
// a full run-directory setup (config, templates, dataset) for end-to-end
// command tests.
package testutil
