package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	Session struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
		CookieName      string `mapstructure:"cookie_name"`
	} `mapstructure:"session"`

	Media struct {
		Backend    string `mapstructure:"backend"` // "local" or "s3"
		UploadDir  string `mapstructure:"upload_dir"`
		PublicBase string `mapstructure:"public_base"`
		Bucket     string `mapstructure:"bucket"`
		Endpoint   string `mapstructure:"endpoint"`
		Region     string `mapstructure:"region"`
		AccessKey  string `mapstructure:"access_key"`
		SecretKey  string `mapstructure:"secret_key"`
		PublicURL  string `mapstructure:"public_url"`
	} `mapstructure:"media"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`

	Timezone string `mapstructure:"timezone"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "carwash_db")
	v.SetDefault("session.expiration_hours", 8)
	v.SetDefault("session.issuer", "carwash-backend")
	v.SetDefault("session.cookie_name", "session")
	v.SetDefault("media.backend", "local")
	v.SetDefault("media.upload_dir", "public/uploads")
	v.SetDefault("media.public_base", "/uploads")
	v.SetDefault("media.region", "auto")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("timezone", "America/Bogota")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Session secret must come from somewhere
	if cfg.Session.Secret == "" || cfg.Session.Secret == "${SESSION_SECRET}" {
		cfg.Session.Secret = os.Getenv("SESSION_SECRET")
		if cfg.Session.Secret == "" {
			log.Fatal("SESSION_SECRET not found in environment or config file")
		}
	}

	// Media credentials from environment
	if v := os.Getenv("MEDIA_BACKEND"); v != "" {
		cfg.Media.Backend = v
	}
	if v := os.Getenv("MEDIA_BUCKET"); v != "" {
		cfg.Media.Bucket = v
	}
	if v := os.Getenv("MEDIA_ENDPOINT"); v != "" {
		cfg.Media.Endpoint = v
	}
	if v := os.Getenv("MEDIA_ACCESS_KEY"); v != "" {
		cfg.Media.AccessKey = v
	}
	if v := os.Getenv("MEDIA_SECRET_KEY"); v != "" {
		cfg.Media.SecretKey = v
	}

	return &cfg
}
