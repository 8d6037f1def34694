package config

type AutomationConfig struct {
	GitHubToken    string `yaml:"github_token"`
	RepoOwner      string `yaml:"repo_owner"`
	RepoName       string `yaml:"repo_name"`
	WorkflowFile   string `yaml:"workflow_file"`
	WorkflowRef    string `yaml:"workflow_ref"`
	CallbackSecret string `yaml:"callback_secret"`
}

func loadAutomationConfig() *AutomationConfig {
	return &AutomationConfig{
		GitHubToken:    getEnv("AUTOMATION_GITHUB_TOKEN", ""),
		RepoOwner:      getEnv("AUTOMATION_REPO_OWNER", ""),
		RepoName:       getEnv("AUTOMATION_REPO_NAME", ""),
		WorkflowFile:   getEnv("AUTOMATION_WORKFLOW_FILE", "tm30-submit.yml"),
		WorkflowRef:    getEnv("AUTOMATION_WORKFLOW_REF", "main"),
		CallbackSecret: getEnv("AUTOMATION_CALLBACK_SECRET", ""),
	}
}
