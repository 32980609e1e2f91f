package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config reads a key from .env, falling back to the process environment.
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
	return os.Getenv(key)
}

// Bool reads a key and treats "true"/"1"/"yes" as true.
func Bool(key string) bool {
	switch Config(key) {
	case "true", "1", "yes":
		return true
	}
	return false
}
