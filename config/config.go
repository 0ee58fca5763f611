package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Port string `yaml:"port"`

	DBDriver   string `yaml:"db_driver"` // sqlite, postgres, mysql
	DBName     string `yaml:"db_name"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"-"`
	DBPassword string `yaml:"-"`

	JWTKey      string `yaml:"-"`
	JWTTTLHours int    `yaml:"jwt_ttl_hours"`
	SaltRound   int    `yaml:"salt_round"`

	UploadDir        string `yaml:"upload_dir"`
	MaxUploadFiles   int    `yaml:"max_upload_files"`
	MaxUploadSizeMB  int    `yaml:"max_upload_size_mb"`
	MaxRequestBodyMB int    `yaml:"max_request_body_mb"`

	ClientURL   string `yaml:"client_url"`
	CORSOrigins string `yaml:"cors_origins"`

	RootAdminEmail    string `yaml:"root_admin_email"`
	RootAdminPassword string `yaml:"-"`
	ProtectRootAdmin  bool   `yaml:"protect_root_admin"`

	MailProvider   string `yaml:"mail_provider"` // smtp, sendgrid, resend, log
	EmailSender    string `yaml:"email_sender"`
	Password       string `yaml:"-"` // SMTP Password
	SMTPHost       string `yaml:"smtp_host"`
	SMTPPort       string `yaml:"smtp_port"`
	SendGridAPIKey string `yaml:"-"`
	ResendAPIKey   string `yaml:"-"`

	OrphanSweepCron    string `yaml:"orphan_sweep_cron"`
	OrphanGraceMinutes int    `yaml:"orphan_grace_minutes"`
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = FromEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := AppConfig.ApplyYAMLFile(path); err != nil {
			log.Printf("Warning: could not apply config file %s: %v", path, err)
		}
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.RootAdminPassword == "admin123" {
		log.Println("Warning: Using default ROOT_ADMIN_PASSWORD. Update it in your environment.")
	}
}

// FromEnv builds a Config from the process environment.
func FromEnv() *Config {
	return &Config{
		Port: getEnv("PORT", "5000"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBName:     getEnv("DB_NAME", "school.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", ""),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),

		JWTKey:      getEnv("JWT_SECRET_KEY", "defaultSecret"),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 24),
		SaltRound:   getEnvInt("SALT_ROUND", 10),

		UploadDir:        getEnv("UPLOAD_DIR", "./public/uploads"),
		MaxUploadFiles:   getEnvInt("MAX_UPLOAD_FILES", 20),
		MaxUploadSizeMB:  getEnvInt("MAX_UPLOAD_SIZE_MB", 2048),
		MaxRequestBodyMB: getEnvInt("MAX_REQUEST_BODY_MB", 4096),

		ClientURL:   getEnv("CLIENT_URL", "http://localhost:5173"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RootAdminEmail:    getEnv("ROOT_ADMIN_EMAIL", "admin@lms.com"),
		RootAdminPassword: getEnv("ROOT_ADMIN_PASSWORD", "admin123"),
		ProtectRootAdmin:  getEnvBool("PROTECT_ROOT_ADMIN", false),

		MailProvider:   strings.ToLower(getEnv("MAIL_PROVIDER", "log")),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@lms.local"),
		Password:       getEnv("PASSWORD", ""),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),

		OrphanSweepCron:    getEnv("ORPHAN_SWEEP_CRON", "@hourly"),
		OrphanGraceMinutes: getEnvInt("ORPHAN_GRACE_MINUTES", 60),
	}
}

// ApplyYAMLFile overlays non-secret settings from a YAML file. Keys absent
// from the file keep their current value.
func (c *Config) ApplyYAMLFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, c)
}

// MaxUploadBytes is the per-file ceiling in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) * 1024 * 1024
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return b
}
