package config

import (
	"log"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Physics holds the engine parameters. Defaults match the standard table; a
// TOML file named by PHYSICS_CONFIG overrides them, and env vars override both.
type Physics struct {
	BallRadius         float64 `toml:"ball_radius"`
	ShotPower          float64 `toml:"shot_power"`
	Drag               float64 `toml:"drag"`
	MinPower           float64 `toml:"min_power"`
	MaxContactsPerTick int     `toml:"max_contacts_per_tick"`
}

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Table sessions
	TickIntervalMS       int
	SessionExpiryMinutes int
	ExpiryPollSeconds    int

	// Security
	JWTSecret         string
	ShooterTokenHours int
	AdminTokenHash    string

	// Physics
	PhysicsConfigPath string
	Physics           Physics
}

// DefaultPhysics are the standard table parameters.
func DefaultPhysics() Physics {
	return Physics{
		BallRadius:         12.5,
		ShotPower:          40,
		Drag:               0.975,
		MinPower:           0.05,
		MaxContactsPerTick: 32,
	}
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/cuesim?sslmode=disable"),
		MigrateOnStart: getEnv("MIGRATE_ON_START", "false") == "true",

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Table sessions
		TickIntervalMS:       getEnvInt("TICK_INTERVAL_MS", 16),
		SessionExpiryMinutes: getEnvInt("SESSION_EXPIRY_MINUTES", 30),
		ExpiryPollSeconds:    getEnvInt("EXPIRY_POLL_SECONDS", 30),

		// Security
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		ShooterTokenHours: getEnvInt("SHOOTER_TOKEN_HOURS", 12),
		AdminTokenHash:    getEnv("ADMIN_TOKEN_HASH", ""),

		// Physics
		PhysicsConfigPath: getEnv("PHYSICS_CONFIG", ""),
	}

	physics, err := LoadPhysics(cfg.PhysicsConfigPath)
	if err != nil {
		log.Printf("[CONFIG] Failed to read physics config %s, using defaults: %v", cfg.PhysicsConfigPath, err)
		physics = DefaultPhysics()
	}
	cfg.Physics = applyPhysicsEnv(physics)

	return cfg
}

// LoadPhysics decodes a TOML physics file over the defaults. An empty path
// returns the defaults.
func LoadPhysics(path string) (Physics, error) {
	p := DefaultPhysics()
	if path == "" {
		return p, nil
	}
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return DefaultPhysics(), err
	}
	return p, nil
}

func applyPhysicsEnv(p Physics) Physics {
	p.BallRadius = getEnvFloat("PHYSICS_BALL_RADIUS", p.BallRadius)
	p.ShotPower = getEnvFloat("PHYSICS_SHOT_POWER", p.ShotPower)
	p.Drag = getEnvFloat("PHYSICS_DRAG", p.Drag)
	p.MinPower = getEnvFloat("PHYSICS_MIN_POWER", p.MinPower)
	p.MaxContactsPerTick = getEnvInt("PHYSICS_MAX_CONTACTS_PER_TICK", p.MaxContactsPerTick)
	return p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
