package domain

// Config is the process-wide configuration. It is loaded once at startup and
// passed by value into every component that needs it; there is no ambient
// global.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Index    IndexConfig    `yaml:"index"`
	Behavior BehaviorConfig `yaml:"behavior"`
	Safety   SafetyConfig   `yaml:"safety"`
}

// LLMConfig selects the model endpoint used for generation and embeddings.
// The embedding model must stay stable between indexing and querying; a
// mismatch silently degrades ranking quality.
type LLMConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	EmbedModel string `yaml:"embed_model"`
}

// IndexConfig controls which documentation sources the catalog builder
// consults. Each source is best-effort and can be disabled independently.
type IndexConfig struct {
	ManPages bool `yaml:"man_pages"`
	Tldr     bool `yaml:"tldr"`
	Help     bool `yaml:"help"`
	MaxTools int  `yaml:"max_tools"`
}

// BehaviorConfig tunes the interactive loop.
type BehaviorConfig struct {
	YoloMode      bool `yaml:"yolo_mode"`
	HistoryWindow int  `yaml:"history_window"`
	TopK          int  `yaml:"top_k"`
}

// SafetyConfig feeds the risk classifier. SafeCommands is an allowlist of
// program names; DangerousPatterns are literal substrings matched against the
// joined command set.
type SafetyConfig struct {
	SafeCommands      []string `yaml:"safe_commands"`
	DangerousPatterns []string `yaml:"dangerous_patterns"`
	MaxOutputLines    int      `yaml:"max_output_lines"`
}

// DefaultConfig returns the built-in defaults, written to disk on first run.
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			Endpoint:   "http://localhost:11434",
			Model:      "llama3.1",
			EmbedModel: "nomic-embed-text",
		},
		Index: IndexConfig{
			ManPages: true,
			Tldr:     true,
			Help:     true,
			MaxTools: 200,
		},
		Behavior: BehaviorConfig{
			YoloMode:      false,
			HistoryWindow: 10,
			TopK:          8,
		},
		Safety: SafetyConfig{
			SafeCommands: []string{
				"ls", "cat", "head", "tail", "wc", "grep", "find", "du", "df",
				"ps", "echo", "date", "pwd", "whoami", "which", "file", "stat",
				"uname", "hostname", "uptime", "free", "id", "env", "printenv",
			},
			DangerousPatterns: []string{
				"rm -rf /", "rm -rf /*", "dd if=", "mkfs", "> /dev/sd",
				"chmod -R 777 /", "curl | sh", "wget | sh", ":(){ :|:& };:",
			},
			MaxOutputLines: 100,
		},
	}
}
