package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/semanticbi/tabsync/pkg/tabsync"
)

// Environment variables recognized as impersonation credential defaults.
// Credentials are collected just-in-time and never persisted; a .env file
// next to tabsync.yaml lets unattended runs pre-fill the credential
// callback without a prompt.
const (
	EnvImpersonationAccount  = "TABSYNC_IMPERSONATION_ACCOUNT"
	EnvImpersonationPassword = "TABSYNC_IMPERSONATION_PASSWORD"
)

// LoadEnvCredentials reads credential defaults from a .env file in the
// given directory, falling back to the process environment. Returns
// ok=false when no account is configured anywhere.
func LoadEnvCredentials(sourcePath string) (creds tabsync.Credentials, ok bool) {
	values := map[string]string{}
	if env, err := godotenv.Read(filepath.Join(sourcePath, ".env")); err == nil {
		values = env
	}

	account := values[EnvImpersonationAccount]
	if account == "" {
		account = os.Getenv(EnvImpersonationAccount)
	}
	if account == "" {
		return tabsync.Credentials{}, false
	}

	password := values[EnvImpersonationPassword]
	if password == "" {
		password = os.Getenv(EnvImpersonationPassword)
	}
	return tabsync.Credentials{Account: account, Password: password}, true
}
