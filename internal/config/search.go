package config

type SearchConfig struct {
	IndexingCredentialsJSON string `yaml:"indexing_credentials_json"`
	SitemapPingEnabled      bool   `yaml:"sitemap_ping_enabled"`
}

func loadSearchConfig() *SearchConfig {
	return &SearchConfig{
		IndexingCredentialsJSON: getEnv("GOOGLE_INDEXING_CREDENTIALS_JSON", ""),
		SitemapPingEnabled:      getEnvAsBool("SITEMAP_PING_ENABLED", true),
	}
}
