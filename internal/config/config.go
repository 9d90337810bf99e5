package config

import (
	"fmt"
	"os"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Notify     NotifyConfig     `yaml:"notify"`
	SendGrid   SendGridConfig   `yaml:"sendgrid"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Log        LogConfig        `yaml:"log"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Property   PropertyConfig   `yaml:"property"`
	Pricing    PricingConfig    `yaml:"pricing"`
	Assignment AssignmentConfig `yaml:"assignment"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RedisConfig holds the proposal cache. An empty Addr keeps proposals in
// memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// NotifyConfig picks the guest e-mail provider: "sendgrid", "smtp" or "none".
type NotifyConfig struct {
	Provider string `yaml:"provider"`
}

type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// SMTPConfig contains email service settings
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	MarkArrivedBookings   string `yaml:"mark_arrived_bookings"`
	OptimizeAssignments   string `yaml:"optimize_assignments"`
	ExpirePendingBookings string `yaml:"expire_pending_bookings"`
}

type PropertyConfig struct {
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
	// PendingTTLHours is how long an unconfirmed booking is kept.
	PendingTTLHours        int  `yaml:"pending_ttl_hours"`
	ProposalTTLMinutes     int  `yaml:"proposal_ttl_minutes"`
	AutoApplyOptimizations bool `yaml:"auto_apply_optimizations"`
}

// PricingConfig holds rates in cents
type PricingConfig struct {
	DoubleRateCents    int32 `yaml:"double_rate_cents"`
	ThirdAdultCents    int32 `yaml:"third_adult_cents"`
	FourthAdultCents   int32 `yaml:"fourth_adult_cents"`
	ChildCents         int32 `yaml:"child_cents"`
	TaxHighSeasonCents int32 `yaml:"tax_high_season_cents"`
	TaxLowSeasonCents  int32 `yaml:"tax_low_season_cents"`
}

// AssignmentConfig overrides the room preference table. Empty keeps the
// built-in table.
type AssignmentConfig struct {
	Classes  []PreferenceClassConfig `yaml:"classes"`
	Fallback []int32                 `yaml:"fallback"`
}

type PreferenceClassConfig struct {
	Name      string  `yaml:"name"`
	MaxGuests int32   `yaml:"max_guests"`
	Order     []int32 `yaml:"order"`
}

// Load reads configuration from a YAML file. A .env file in the working
// directory, if present, is loaded into the environment first.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_USER"); val != "" {
		c.Redis.Username = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// Notifications
	if val := os.Getenv("NOTIFY_PROVIDER"); val != "" {
		c.Notify.Provider = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.SMTP.Password = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Property
	if val := os.Getenv("PROPERTY_TIMEZONE"); val != "" {
		c.Property.Timezone = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	// Notification validation
	switch c.Notify.Provider {
	case "", "none":
		c.Notify.Provider = "none"
	case "sendgrid":
		if c.SendGrid.APIKey == "" {
			return fmt.Errorf("sendgrid api key is required")
		}
		if c.SendGrid.FromEmail == "" {
			return fmt.Errorf("sendgrid from email is required")
		}
	case "smtp":
		if c.SMTP.Host == "" {
			return fmt.Errorf("SMTP host is required")
		}
		if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
			return fmt.Errorf("invalid SMTP port: %d", c.SMTP.Port)
		}
	default:
		return fmt.Errorf("unknown notify provider: %q", c.Notify.Provider)
	}

	// Property defaults
	if c.Property.Name == "" {
		c.Property.Name = "Guest House"
	}
	if c.Property.Timezone == "" {
		c.Property.Timezone = "Europe/Rome"
	}
	if _, err := time.LoadLocation(c.Property.Timezone); err != nil {
		return fmt.Errorf("invalid property timezone %q: %w", c.Property.Timezone, err)
	}
	if c.Property.PendingTTLHours == 0 {
		c.Property.PendingTTLHours = 48
	}
	if c.Property.ProposalTTLMinutes == 0 {
		c.Property.ProposalTTLMinutes = 30
	}

	// Pricing defaults
	defaults := utils.DefaultPricingSettings()
	if c.Pricing.DoubleRateCents == 0 {
		c.Pricing.DoubleRateCents = defaults.DoubleRateCents
	}
	if c.Pricing.ThirdAdultCents == 0 {
		c.Pricing.ThirdAdultCents = defaults.ThirdAdultCents
	}
	if c.Pricing.FourthAdultCents == 0 {
		c.Pricing.FourthAdultCents = defaults.FourthAdultCents
	}
	taxDefaults := utils.DefaultTouristTaxRates()
	if c.Pricing.TaxHighSeasonCents == 0 {
		c.Pricing.TaxHighSeasonCents = taxDefaults.HighSeasonCents
	}
	if c.Pricing.TaxLowSeasonCents == 0 {
		c.Pricing.TaxLowSeasonCents = taxDefaults.LowSeasonCents
	}

	// Assignment policy
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("invalid assignment policy: %w", err)
	}

	// Scheduler defaults
	if c.Scheduler.MarkArrivedBookings == "" {
		c.Scheduler.MarkArrivedBookings = "0 0 14 * * *" // Check-in time
	}
	if c.Scheduler.OptimizeAssignments == "" {
		c.Scheduler.OptimizeAssignments = "0 0 3 * * *" // 3 AM
	}
	if c.Scheduler.ExpirePendingBookings == "" {
		c.Scheduler.ExpirePendingBookings = "0 0 * * * *" // Hourly
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Location is the property's time zone; "today" is read there.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Property.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Policy builds the room preference table, falling back to the built-in one.
func (c *Config) Policy() (assignment.Policy, error) {
	if len(c.Assignment.Classes) == 0 {
		return assignment.DefaultPolicy(), nil
	}
	classes := make([]assignment.PreferenceClass, 0, len(c.Assignment.Classes))
	for _, pc := range c.Assignment.Classes {
		class, err := assignment.ParseRoomClass(pc.Name)
		if err != nil {
			return assignment.Policy{}, err
		}
		classes = append(classes, assignment.PreferenceClass{Class: class, MaxGuests: pc.MaxGuests, Order: pc.Order})
	}
	return assignment.NewPolicy(classes, c.Assignment.Fallback)
}

func (c *Config) PricingSettings() utils.PricingSettings {
	return utils.PricingSettings{
		DoubleRateCents:  c.Pricing.DoubleRateCents,
		ThirdAdultCents:  c.Pricing.ThirdAdultCents,
		FourthAdultCents: c.Pricing.FourthAdultCents,
		ChildCents:       c.Pricing.ChildCents,
	}
}

func (c *Config) TouristTaxRates() utils.TouristTaxRates {
	return utils.TouristTaxRates{
		HighSeasonCents: c.Pricing.TaxHighSeasonCents,
		LowSeasonCents:  c.Pricing.TaxLowSeasonCents,
	}
}

func (c *Config) PendingTTL() time.Duration {
	return time.Duration(c.Property.PendingTTLHours) * time.Hour
}

func (c *Config) ProposalTTL() time.Duration {
	return time.Duration(c.Property.ProposalTTLMinutes) * time.Minute
}
