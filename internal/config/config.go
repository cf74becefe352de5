package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var AppEnv Config

type Config struct {
	MongoURI       string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	DBName         string        `envconfig:"DB_NAME" default:"teabar"`
	JWTSecret      string        `envconfig:"JWT_SECRET" default:"dev-secret"`
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"20m"`
	Port           string        `envconfig:"PORT" default:"8080"`
}

// Load reads .env if present and populates AppEnv from the environment.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	if err := envconfig.Process("", &AppEnv); err != nil {
		log.Fatal("config load failed:", err)
	}
}
