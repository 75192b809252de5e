package config // package config loads application configuration from environment variables

import (
	"log"  // log is used to report configuration errors and halt execution
	"os"   // os provides access to environment variables
	"time" // pool lifetime parsing
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The route CSV file is the only required
// data input; the database is optional so the service can run search-only
// without MySQL.
type Config struct {
	Env        string // application environment (e.g. "dev", "prod")
	Port       string // HTTP port to listen on
	RoutesCSV  string // path to the route timetable CSV file
	DBUser     string // database username (empty disables persistence)
	DBPass     string // database password (optional)
	DBHost     string // database host address
	DBPort     string // database port number
	DBName     string // database name
	DBEnabled  bool   // whether trip persistence is configured
	AMQPEnable bool   // whether the trip.booked consumer should start

	DBMaxOpenConns int           // connection pool ceiling
	DBMaxIdleConns int           // idle connections kept around
	DBConnMaxLife  time.Duration // recycle connections after this long
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must(); missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:        must("APP_ENV"),    // environment (dev/test/prod)
		Port:       must("APP_PORT"),   // port to bind the HTTP server
		RoutesCSV:  must("ROUTES_CSV"), // timetable file the catalogue is loaded from
		DBUser:     os.Getenv("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBName:     os.Getenv("DB_NAME"),
		AMQPEnable: getenv("AMQP_CONSUMER_ENABLED", "true") == "true",

		DBMaxOpenConns: atoi(getenv("DB_MAX_OPEN_CONNS", "25")),
		DBMaxIdleConns: atoi(getenv("DB_MAX_IDLE_CONNS", "25")),
		DBConnMaxLife:  parseDur(getenv("DB_CONN_MAX_LIFETIME", "30m")),
	}
	cfg.DBEnabled = cfg.DBUser != "" && cfg.DBHost != "" && cfg.DBPort != "" && cfg.DBName != ""
	if cfg.DBMaxOpenConns < 1 {
		cfg.DBMaxOpenConns = 25
	}
	if cfg.DBMaxIdleConns < 0 || cfg.DBMaxIdleConns > cfg.DBMaxOpenConns {
		cfg.DBMaxIdleConns = cfg.DBMaxOpenConns
	}
	if cfg.DBConnMaxLife <= 0 {
		cfg.DBConnMaxLife = 30 * time.Minute
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an environment variable or a default when
// it is unset.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
