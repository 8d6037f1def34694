package config

type KlaviyoConfig struct {
	APIKey           string `yaml:"api_key"`
	NewsletterListID string `yaml:"newsletter_list_id"`
}

func loadKlaviyoConfig() *KlaviyoConfig {
	return &KlaviyoConfig{
		APIKey:           getEnv("KLAVIYO_API_KEY", ""),
		NewsletterListID: getEnv("KLAVIYO_NEWSLETTER_LIST_ID", ""),
	}
}
