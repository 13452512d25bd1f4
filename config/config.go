package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings the server needs to run.
// Values come from the environment, optionally seeded from a
// config/env/{GO_ENV}.env file.
type Configuration struct {
	InitMode bool   `env:"INITMODE" envDefault:"false"` // Seed default platform admin on startup
	Address  string `env:"ADDRESS" envDefault:":8080"`  // Listen address

	// Authentication
	JwtSecret     string `env:"JWT_SECRET,required"`            // HMAC secret for access tokens
	TokenLifetime int    `env:"TOKEN_LIFETIME" envDefault:"72"` // Access token lifetime (hours)

	// MongoDB
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`         // Connection URI
	MongoDB_DBName_Admin  string `env:"MONGODB_DBNAME_ADMIN,required"`           // Control-plane database name
	TenantDBPrefix        string `env:"TENANT_DB_PREFIX" envDefault:"NZY_"`      // Prefix for derived tenant database names

	// CORS
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`

	// Rate limiting
	RateLimit_Max     int  `env:"RATE_LIMIT_MAX" envDefault:"100"`      // Max requests per window (0 = disabled)
	RateLimit_Window  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"`    // Window length (seconds)
	RateLimit_Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"` // Toggle rate limiting

	// Default platform admin, created when InitMode is set
	AdminPhone    string `env:"ADMIN_PHONE" envDefault:"13000000000"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Static reference data
	RegionDataDir string `env:"REGION_DATA_DIR" envDefault:"config/region"` // Directory holding province/city/area JSON files

	// Local blob storage
	BlobStoreDir     string `env:"BLOB_STORE_DIR" envDefault:"data/blobs"` // Directory for stored binary objects
	BlobStoreBaseURL string `env:"BLOB_STORE_BASE_URL" envDefault:"http://localhost:8080/static"`

	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
}

// getEnvPath returns the env file path for the current GO_ENV,
// walking up from the working directory until a config/env dir is found.
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// fmt.Printf because the logger is not initialized yet at this point
		fmt.Printf("cannot determine working directory: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the env file (when present) and parses the
// Configuration from the environment.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// Missing env file is fine when the environment is already populated
			fmt.Printf("cannot load env file at %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("failed to parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
