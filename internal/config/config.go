package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os" // os provides access to environment variables

	"github.com/joho/godotenv" // godotenv loads a local .env file into the environment
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to verify (and mint) admin JWTs
	AccessTTLMin int    // default TTL in minutes for tokens minted by seatctl
}

// Load reads a .env file when one is present and then builds a Config from
// the environment.  Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.
func Load() Config {
	LoadDotEnv()
	return Config{
		Env:          envStr("APP_ENV", "dev"),         // environment (dev/test/prod)
		Port:         envStr("APP_PORT", "8080"),       // port to bind the HTTP server
		DBUser:       must("DB_USER"),                  // database user
		DBPass:       os.Getenv("DB_PASS"),             // database password (empty allowed)
		DBHost:       must("DB_HOST"),                  // database host
		DBPort:       envStr("DB_PORT", "3306"),        // database port
		DBName:       must("DB_NAME"),                  // database name
		JWTSecret:    must("JWT_SECRET"),               // secret used for signing JWTs
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 60), // TTL for minted tokens in minutes
	}
}

// LoadDotEnv loads .env from the working directory.  A missing file is not
// an error; variables already set in the environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}
}

// IsProd reports whether the service runs in production mode.
func (c Config) IsProd() bool { return c.Env == "prod" || c.Env == "production" }

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
