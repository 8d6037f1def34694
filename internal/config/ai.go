package config

type AIConfig struct {
	OpenAI     *OpenAIConfig     `yaml:"openai"`
	Perplexity *PerplexityConfig `yaml:"perplexity"`
	MaxTokens  int               `yaml:"max_tokens"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type PerplexityConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

func loadAIConfig() *AIConfig {
	return &AIConfig{
		OpenAI: &OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Perplexity: &PerplexityConfig{
			APIKey: getEnv("PERPLEXITY_API_KEY", ""),
			Model:  getEnv("PERPLEXITY_MODEL", "sonar"),
		},
		MaxTokens: getEnvAsInt("AI_MAX_TOKENS", 4096),
	}
}
