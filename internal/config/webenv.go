package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
)

// Variable names used by the Next.js web dashboard.
const (
	webURLKey     = "NEXT_PUBLIC_SUPABASE_URL"
	webAnonKeyKey = "NEXT_PUBLIC_SUPABASE_ANON_KEY"
)

// webEnvFiles are read in order; later files do not override earlier ones.
var webEnvFiles = []string{".env.local", ".env"}

// WebCredentials is the Supabase pair the web dashboard is configured with.
type WebCredentials struct {
	URL     string
	AnonKey string
}

// LoadWebCredentials reads the Supabase URL and anon key from the web
// project's env files in dir. Missing files are skipped.
func LoadWebCredentials(dir string) WebCredentials {
	var creds WebCredentials
	if dir == "" {
		return creds
	}

	for _, name := range webEnvFiles {
		values, err := godotenv.Read(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if creds.URL == "" {
			creds.URL = values[webURLKey]
		}
		if creds.AnonKey == "" {
			creds.AnonKey = values[webAnonKeyKey]
		}
	}

	return creds
}
