package config

// TaskConfig selects and parameterizes the Task implementation.
type TaskConfig struct {
	Name    string `yaml:"name"`
	Split   string `yaml:"split"`
	Subtask int    `yaml:"subtask"`
	Method  string `yaml:"method"`
	Version string `yaml:"version,omitempty"`
}

// Dataset source values for DatasetConfig.Source.
const (
	SourceJSONL  = "jsonl"
	SourceSQLite = "sqlite"
)

// DatasetConfig declares the dataset collaborator backing the task.
type DatasetConfig struct {
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
}

// TemplatesConfig declares the template root and the ordered tier list,
// most specific first. The last tier is conventionally "default".
type TemplatesConfig struct {
	Root  string   `yaml:"root"`
	Tiers []string `yaml:"tiers"`
}

// Limits defines operational boundaries for a run.
type Limits struct {
	MaxEpisodes int `yaml:"max_episodes"`
}

// LLMConfig declares the language-model collaborator endpoint. The API key
// is read from the environment variable named by APIKeyEnv, never from the
// config file itself.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float32 `yaml:"temperature,omitempty"`
}

// ResultsConfig controls optional run-result recording. An empty Dir
// disables recording.
type ResultsConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// Config represents an epirun run configuration file.
type Config struct {
	Task      TaskConfig      `yaml:"task"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Templates TemplatesConfig `yaml:"templates"`
	Limits    Limits          `yaml:"limits"`
	LLM       LLMConfig       `yaml:"llm"`
	Results   ResultsConfig   `yaml:"results,omitempty"`
}
