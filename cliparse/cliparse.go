package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported store backends
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

const (
	DefaultPort        = 5000
	DefaultDatabaseURL = "file:stackit.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	SecretKey      string
	AdminUsernames []string
	SecureCookies  bool
}

// ParseFlags validates flags and falls back to env variables for anything unset
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var admins string
	var secure string

	fs := flag.NewFlagSet("stackit", flag.ContinueOnError)

	// Network and store config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SecretKey, "secret", "", "Session signing key (prefer env)")

	fs.StringVar(&admins, "admins", "", "Comma separated usernames promoted to admin at startup")
	fs.StringVar(&secure, "secure-cookies", "", "Mark the session cookie Secure (true/false)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultDatabaseURL
	}

	// Secret - MUST be provided
	if cfg.SecretKey == "" {
		cfg.SecretKey = os.Getenv("SECRET_KEY")
	}
	if cfg.SecretKey == "" {
		return Config{}, errors.New("SECRET_KEY required")
	}

	if admins == "" {
		admins = os.Getenv("ADMIN_USERNAMES")
	}
	cfg.AdminUsernames = parseUsernames(admins)

	if secure == "" {
		secure = os.Getenv("COOKIE_SECURE")
	}
	if secure != "" {
		v, err := strconv.ParseBool(secure)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COOKIE_SECURE value %q", secure)
		}
		cfg.SecureCookies = v
	}

	return cfg, nil
}

func parseUsernames(raw string) []string {
	var res []string
	seen := make(map[string]struct{})
	for _, p := range strings.Split(raw, ",") {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		res = append(res, name)
	}
	return res
}
