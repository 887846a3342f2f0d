package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBUrl          string
	JWTSecret      string
	SupabaseURL    string
	SupabaseAnon   string
	SupabaseSecret string // service role key

	GeminiAPIKey  string
	GeminiBaseURL string
	PromptsFile   string

	StorageBucket    string
	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string

	AdminEmails        []string
	RateLimitPerMinute int
}

const (
	defaultPort          = "8080"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultBucket        = "images"
	defaultRegion        = "us-east-1"
	defaultRateLimit     = 10
)

// Load charge le .env (s'il existe) puis lit la configuration depuis l'environnement
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", defaultPort),
		DBUrl:            os.Getenv("SUPABASE_DB_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SupabaseURL:      strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseAnon:     os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseSecret:   os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:    strings.TrimRight(getEnv("GEMINI_BASE_URL", defaultGeminiBaseURL), "/"),
		PromptsFile:      os.Getenv("PROMPTS_FILE"),
		StorageBucket:    getEnv("STORAGE_BUCKET", defaultBucket),
		StorageEndpoint:  os.Getenv("STORAGE_S3_ENDPOINT"),
		StorageRegion:    getEnv("STORAGE_REGION", defaultRegion),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY_ID"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
		AdminEmails:      splitList(os.Getenv("ADMIN_EMAILS")),
	}

	// Supabase expose un endpoint compatible S3 sous /storage/v1/s3
	if cfg.StorageEndpoint == "" && cfg.SupabaseURL != "" {
		cfg.StorageEndpoint = cfg.SupabaseURL + "/storage/v1/s3"
	}

	cfg.RateLimitPerMinute = defaultRateLimit
	if raw := os.Getenv("RATE_LIMIT_PER_MINUTE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE invalide: %q", raw)
		}
		cfg.RateLimitPerMinute = n
	}

	var missing []string
	for name, value := range map[string]string{
		"SUPABASE_DB_URL":   cfg.DBUrl,
		"JWT_SECRET":        cfg.JWTSecret,
		"SUPABASE_URL":      cfg.SupabaseURL,
		"SUPABASE_ANON_KEY": cfg.SupabaseAnon,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("variables manquantes: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
