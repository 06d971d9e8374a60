package config

import (
	"os"
	"strconv"
	"time"
)

// Config contém as configurações da aplicação.
type Config struct {
	Port         string
	Content      ContentConfig
	JWTSecret    string
	SessionTTL   time.Duration
	WatchEnabled bool
}

type ContentConfig struct {
	// CampaignPath é o caminho do documento de campanha (JSON).
	CampaignPath string
	// ContentRoot é a raiz dos fragmentos de conteúdo ("content/...").
	ContentRoot string
	// AssetsRoot é a raiz dos demais assets (resolvidos via meta.assets_base).
	AssetsRoot string
	// CacheVersion é a tag de versão usada como chave de cache (cache busting).
	CacheVersion string
}

// Load carrega as configurações das variáveis de ambiente ou usa padrões.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),
		Content: ContentConfig{
			CampaignPath: getEnv("CAMPAIGN_PATH", "./content/campaign.json"),
			ContentRoot:  getEnv("CONTENT_ROOT", "."),
			AssetsRoot:   getEnv("ASSETS_ROOT", "."),
			CacheVersion: getEnv("CONTENT_CACHE_VERSION", "v1"),
		},
		JWTSecret:    getEnv("JWT_SECRET", "segredo_padrao_para_desenvolvimento"),
		SessionTTL:   time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		WatchEnabled: getEnvBool("CAMPAIGN_WATCH", true),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
