package testutil

import "github.com/epirun/epirun/internal/dataset"

// SampleRecords returns a small arithmetic dataset in the GSM8K layout.
// Returns a new slice each time to prevent test interference.
func SampleRecords() dataset.Slice {
	return dataset.Slice{
		{
			Question: "A warehouse holds 20,000 boxes and ships 2,000. How many remain?",
			Answer:   "20,000 - 2,000 = 18,000\n#### 18,000",
		},
		{
			Question: "The shop had 5 items, then sold 2. How many are left?",
			Answer:   "5 - 2 = 3\n#### 3",
		},
	}
}

// SampleRecordsJSONL is SampleRecords in JSON-lines form, for tests that
// exercise file loading.
const SampleRecordsJSONL = `{"question": "A warehouse holds 20,000 boxes and ships 2,000. How many remain?", "answer": "20,000 - 2,000 = 18,000\n#### 18,000"}
{"question": "The shop had 5 items, then sold 2. How many are left?", "answer": "5 - 2 = 3\n#### 3"}
`

// SampleTemplates is a minimal template set covering the names a direct
// run requires.
func SampleTemplates() map[string]string {
	return map[string]string{
		"system_prompt": "You answer arithmetic questions with a single number.",
		"direct_prompt": "Answer directly with the final number only.",
		"trajectory":    "Question: {{latest \"observation\"}}",
	}
}
