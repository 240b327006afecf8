package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// StorageBackend selects the persistence gateway implementation at boot.
// Valid values are "postgres" (default) and "json".
func StorageBackend() string {
	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" {
		return "postgres"
	}
	return backend
}

// JSONStoreDir is the directory holding the records file when the json
// backend is selected.
func JSONStoreDir() string {
	dir := os.Getenv("JSON_STORE_DIR")
	if dir == "" {
		return "data"
	}
	return dir
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

var (
	API_ENV        = os.Getenv("API_ENV")
	SMTP_FROM      = os.Getenv("SMTP_FROM")
	OPS_EMAIL      = os.Getenv("OPS_EMAIL")
	S3_DOCS_BUCKET = os.Getenv("S3_DOCS_BUCKET")
)
