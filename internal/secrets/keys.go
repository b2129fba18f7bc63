package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "leadgen"

	SearchAPIAccount     = "search_api_key"
	CompletionAPIAccount = "completion_api_key"
)

// Env fallbacks for headless machines without a keychain.
var envFallbacks = map[string]string{
	SearchAPIAccount:     "LEADGEN_SEARCH_API_KEY",
	CompletionAPIAccount: "LEADGEN_COMPLETION_API_KEY",
}

func Get(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}

	// 1) Keyring first (recommended)
	key, err := keyring.Get(KeyringService, account)
	if err == nil && strings.TrimSpace(key) != "" {
		return key, nil
	}

	// 2) Environment fallback
	if env := envFallbacks[account]; env != "" {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v, nil
		}
	}

	return "", errors.New("API key not found (set it in keychain or via env)")
}

func Set(account string, key string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(KeyringService, account, key)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

// Present reports whether a key is available without returning it.
func Present(account string) bool {
	_, err := Get(account)
	return err == nil
}
