package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

const Production = "production"

type Config struct {
	Addr               string        `env:"APP_ADDR" envDefault:":8080"`
	Environment        string        `env:"APP_ENV" envDefault:"development"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	JWTSecret          string        `env:"JWT_SECRET"`
	DataEncryptionKey  string        `env:"DATA_ENCRYPTION_KEY"`
	JWTExpiresIn       time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	TemplatesDir       string        `env:"TEMPLATES_DIR" envDefault:"templates"`
	PayslipPDFTemplate string        `env:"PAYSLIP_PDF_TEMPLATE" envDefault:"payslip-template.pdf"`
	ChromePath         string        `env:"CHROME_PATH"`
	BrowserTimeout     time.Duration `env:"BROWSER_TIMEOUT" envDefault:"30s"`
	RedisURL           string        `env:"REDIS_URL"`
	CompanyCacheTTL    time.Duration `env:"COMPANY_CACHE_TTL" envDefault:"5m"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	RunMigrations      bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	MigrationsDir      string        `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	RunSeed            bool          `env:"RUN_SEED" envDefault:"true"`
	SeedTenantName     string        `env:"SEED_TENANT_NAME" envDefault:"UtamaHR"`
	SeedAdminEmail     string        `env:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword  string        `env:"SEED_ADMIN_PASSWORD"`
	MetricsEnabled     bool          `env:"METRICS_ENABLED" envDefault:"true"`
	AuditRetention     time.Duration `env:"AUDIT_RETENTION" envDefault:"8760h"`
	RetentionInterval  time.Duration `env:"RETENTION_INTERVAL" envDefault:"24h"`
}

// Load reads .env files when present and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env", ".env.local"}
	}
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, errors.Wrap(err, "load env files")
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == Production
}

func (c Config) PayslipTemplatePath() string {
	if filepath.IsAbs(c.PayslipPDFTemplate) || strings.ContainsRune(c.PayslipPDFTemplate, filepath.Separator) {
		return c.PayslipPDFTemplate
	}
	return filepath.Join(c.TemplatesDir, c.PayslipPDFTemplate)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.IsProduction() {
		if len(strings.TrimSpace(c.JWTSecret)) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return errors.New("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return errors.New("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return errors.New("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.BrowserTimeout <= 0 {
		return errors.New("BROWSER_TIMEOUT must be positive")
	}
	info, err := os.Stat(c.TemplatesDir)
	if err != nil || !info.IsDir() {
		return errors.Errorf("TEMPLATES_DIR %q must be an existing directory", c.TemplatesDir)
	}
	return nil
}
