package secrets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups jobboard secrets in the OS keychain
const KeyringService = "jobboard"

// ErrNotFound is returned when no key is stored for a project
var ErrNotFound = errors.New("secrets: anon key not found")

// AnonKeyAccount is the keyring account name for a project URL
func AnonKeyAccount(projectURL string) string {
	host := strings.TrimSpace(projectURL)
	if u, err := url.Parse(host); err == nil && u.Host != "" {
		host = u.Host
	}
	return "supabase:anon:" + host
}

// GetAnonKey reads the anon key stored for projectURL
func GetAnonKey(projectURL string) (string, error) {
	if strings.TrimSpace(projectURL) == "" {
		return "", errors.New("secrets: project url is empty")
	}

	key, err := keyring.Get(KeyringService, AnonKeyAccount(projectURL))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("secrets: keyring: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return "", ErrNotFound
	}
	return key, nil
}

func SetAnonKey(projectURL, key string) error {
	if strings.TrimSpace(projectURL) == "" {
		return errors.New("secrets: project url is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("secrets: key is empty")
	}
	return keyring.Set(KeyringService, AnonKeyAccount(projectURL), key)
}

func DeleteAnonKey(projectURL string) error {
	if strings.TrimSpace(projectURL) == "" {
		return errors.New("secrets: project url is empty")
	}
	err := keyring.Delete(KeyringService, AnonKeyAccount(projectURL))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
