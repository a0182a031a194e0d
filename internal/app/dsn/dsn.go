package dsn

import (
	"fmt"
	"os"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// FromEnv builds a postgres DSN from DB_* variables.
func FromEnv() string {
	host := getenv("DB_HOST", "localhost")
	port := getenv("DB_PORT", "5432")
	user := getenv("DB_USER", "postgres")
	pass := getenv("DB_PASS", "postgres")
	dbname := getenv("DB_NAME", "riceguard")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbname)
}

// ForStorage returns the DSN for a gorm storage driver. sqlite uses the file path as is.
func ForStorage(driver, path string) string {
	if driver == "postgres" {
		return FromEnv()
	}
	return path
}
