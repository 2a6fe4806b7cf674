package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const EnvProduction = "production"

type Config struct {
	Port        string   `env:"PORT,        default=3001"`
	Env         string   `env:"ENV,         default=development"`
	JWTSecret   string   `env:"JWT_SECRET,  required"`
	LogLevel    string   `env:"LOG_LEVEL,   default=info"`
	LogPretty   bool     `env:"LOG_PRETTY,  default=false"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:3000,http://127.0.0.1:3000"`

	Database  DatabaseConfig
	Directory DirectoryConfig
	Redis     RedisConfig
	Mongo     MongoConfig
	Uploads   UploadsConfig
	Portal    PortalConfig
	Sync      SyncConfig
}

type DatabaseConfig struct {
	URL         string `env:"DATABASE_URL, default=file:portal.db?cache=shared"`
	AutoMigrate bool   `env:"AUTO_MIGRATE, default=false"`
}

// DirectoryConfig selects and configures the directory client. Mode "static"
// reads accounts from a local YAML file and is meant for development.
type DirectoryConfig struct {
	Mode               string        `env:"DIRECTORY_MODE,          default=ldap"`
	URL                string        `env:"AD_URL"`
	BaseDN             string        `env:"AD_BASE_DN"`
	BindUser           string        `env:"AD_USER"`
	BindPassword       string        `env:"AD_PASSWORD"`
	UPNSuffix          string        `env:"AD_UPN_SUFFIX"`
	UserFilter         string        `env:"AD_USER_FILTER,          default=(&(objectClass=user)(objectCategory=person))"`
	Timeout            time.Duration `env:"AD_TIMEOUT,              default=10s"`
	InsecureSkipVerify bool          `env:"AD_INSECURE_SKIP_VERIFY, default=false"`
	StaticFile         string        `env:"DIRECTORY_STATIC_FILE,   default=directory.yaml"`
}

// RedisConfig enables token revocation when Addr is set.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// MongoConfig enables the login audit trail when URI is set.
type MongoConfig struct {
	URI                string `env:"MONGO_URI"`
	Database           string `env:"MONGO_DB,                   default=portal"`
	AuditRetentionDays int32  `env:"MONGO_AUDIT_RETENTION_DAYS, default=90"`
}

type UploadsConfig struct {
	Dir      string `env:"UPLOADS_DIR,       default=uploads"`
	MaxBytes int64  `env:"UPLOADS_MAX_BYTES, default=5242880"`
}

type PortalConfig struct {
	// CarouselEditorRoles restricts slide creation. Empty leaves it open.
	CarouselEditorRoles []string `env:"CAROUSEL_EDITOR_ROLES"`
	LoginRatePerMinute  int      `env:"LOGIN_RATE_PER_MINUTE, default=20"`
	BirthdayTimeZone    string   `env:"BIRTHDAY_TZ,           default=Local"`
	ResourcesFile       string   `env:"RESOURCES_FILE"`
}

type SyncConfig struct {
	Workers     int    `env:"SYNC_WORKERS,      default=4"`
	DefaultRole string `env:"SYNC_DEFAULT_ROLE, default=Empleado"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Directory.Mode {
	case "ldap":
		if c.Directory.URL == "" {
			return errors.New("AD_URL is required when DIRECTORY_MODE=ldap")
		}
	case "static":
		if c.IsProduction() {
			return errors.New("DIRECTORY_MODE=static is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown DIRECTORY_MODE %q", c.Directory.Mode)
	}
	if c.Sync.Workers <= 0 {
		return errors.New("SYNC_WORKERS must be positive")
	}
	return nil
}
