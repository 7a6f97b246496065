// Package auth stores the catalog API key in the system keyring.
package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	service = "crosswatch"
	user    = "tmdb-api-key"
)

// SetAPIKey persists the catalog API key.
func SetAPIKey(apiKey string) error {
	return keyring.Set(service, user, apiKey)
}

// GetAPIKey returns the stored key, or an empty string when none is stored.
func GetAPIKey() (string, error) {
	apiKey, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return apiKey, err
}

// DeleteAPIKey removes the stored key. Deleting a missing key is not an error.
func DeleteAPIKey() error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
