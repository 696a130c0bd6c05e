package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Admin    AdminConfig
	Accounts AccountsConfig
	Dues     DuesConfig
	Cache    CacheConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// AdminConfig holds the credential set for the admin API login
type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt hash
}

// AccountEntry pairs an account code with its display name for seeding
// and posting-time resolution
type AccountEntry struct {
	Code string
	Name string
}

// AccountsConfig is the explicit event-to-account directory. Every
// posting site resolves its debit/credit accounts through this mapping,
// never through hardcoded codes or name heuristics.
type AccountsConfig struct {
	Cash             AccountEntry
	Bank             AccountEntry
	DonationRevenue  AccountEntry
	DuesRevenue      AccountEntry
	RentalRevenue    AccountEntry
	EducationRevenue AccountEntry
	GeneralExpense   AccountEntry
}

// DuesConfig holds membership dues settings
type DuesConfig struct {
	DefaultMonthlyAmount decimal.Decimal
}

// CacheConfig holds report cache settings
type CacheConfig struct {
	Enabled    bool
	SummaryTTL time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with MMS_ prefix (e.g., MMS_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("MMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	duesAmount := decimal.Zero
	if s := v.GetString("dues.default_monthly_amount"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid dues.default_monthly_amount: %w", err)
		}
		duesAmount = d
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("jwt.secret"),
			ExpirationHours: v.GetInt("jwt.expiration_hours"),
			Issuer:          v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Admin: AdminConfig{
			Username:     v.GetString("admin.username"),
			PasswordHash: v.GetString("admin.password_hash"),
		},
		Accounts: AccountsConfig{
			Cash:             AccountEntry{Code: v.GetString("accounts.cash_code"), Name: v.GetString("accounts.cash_name")},
			Bank:             AccountEntry{Code: v.GetString("accounts.bank_code"), Name: v.GetString("accounts.bank_name")},
			DonationRevenue:  AccountEntry{Code: v.GetString("accounts.donation_revenue_code"), Name: v.GetString("accounts.donation_revenue_name")},
			DuesRevenue:      AccountEntry{Code: v.GetString("accounts.dues_revenue_code"), Name: v.GetString("accounts.dues_revenue_name")},
			RentalRevenue:    AccountEntry{Code: v.GetString("accounts.rental_revenue_code"), Name: v.GetString("accounts.rental_revenue_name")},
			EducationRevenue: AccountEntry{Code: v.GetString("accounts.education_revenue_code"), Name: v.GetString("accounts.education_revenue_name")},
			GeneralExpense:   AccountEntry{Code: v.GetString("accounts.general_expense_code"), Name: v.GetString("accounts.general_expense_name")},
		},
		Dues: DuesConfig{
			DefaultMonthlyAmount: duesAmount,
		},
		Cache: CacheConfig{
			Enabled:    v.GetBool("cache.enabled"),
			SummaryTTL: v.GetDuration("cache.summary_ttl"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "mms-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "mms"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.ExpirationHours == 0 {
		cfg.JWT.ExpirationHours = 24
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "mms-backend"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
	}

	applyAccountDefaults(&cfg.Accounts)

	if cfg.Dues.DefaultMonthlyAmount.IsZero() {
		cfg.Dues.DefaultMonthlyAmount = decimal.NewFromFloat(10.00)
	}
	if cfg.Cache.SummaryTTL == 0 {
		cfg.Cache.SummaryTTL = 5 * time.Minute
	}
}

// applyAccountDefaults fills the standard chart of accounts for any
// entry not configured explicitly
func applyAccountDefaults(a *AccountsConfig) {
	def := func(e *AccountEntry, code, name string) {
		if e.Code == "" {
			e.Code = code
		}
		if e.Name == "" {
			e.Name = name
		}
	}
	def(&a.Cash, "1001", "Main Cash")
	def(&a.Bank, "1002", "Bank Account")
	def(&a.DonationRevenue, "4001", "Donations Revenue")
	def(&a.DuesRevenue, "4002", "Membership Dues Revenue")
	def(&a.RentalRevenue, "4003", "Asset Rental Revenue")
	def(&a.EducationRevenue, "4004", "Education Fees Revenue")
	def(&a.GeneralExpense, "5001", "General Expenses")
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Dues.DefaultMonthlyAmount.IsNegative() {
		return fmt.Errorf("dues.default_monthly_amount cannot be negative")
	}

	codes := map[string]string{}
	for _, e := range []struct {
		key   string
		entry AccountEntry
	}{
		{"accounts.cash", c.Accounts.Cash},
		{"accounts.bank", c.Accounts.Bank},
		{"accounts.donation_revenue", c.Accounts.DonationRevenue},
		{"accounts.dues_revenue", c.Accounts.DuesRevenue},
		{"accounts.rental_revenue", c.Accounts.RentalRevenue},
		{"accounts.education_revenue", c.Accounts.EducationRevenue},
		{"accounts.general_expense", c.Accounts.GeneralExpense},
	} {
		if e.entry.Code == "" {
			return fmt.Errorf("%s code cannot be empty", e.key)
		}
		if prev, dup := codes[e.entry.Code]; dup {
			return fmt.Errorf("%s and %s share account code %s", prev, e.key, e.entry.Code)
		}
		codes[e.entry.Code] = e.key
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("admin.password_hash is required in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisAddr returns the host:port address of the Redis server
func (r *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
