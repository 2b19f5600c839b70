package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "planner-tui"
	userName    = "api-token"

	// TokenEnvVar is consulted when the keyring holds no token.
	TokenEnvVar = "PLANNER_API_TOKEN"
)

// ErrNotFound is returned when no API token is stored in the keyring
var ErrNotFound = errors.New("API token not found in keyring")

// keyringProvider defines the interface for keyring operations
// This allows for mocking in tests
type keyringProvider interface {
	Get(service, user string) (string, error)
	Set(service, user, password string) error
	Delete(service, user string) error
}

// systemKeyring is a wrapper around the go-keyring library
type systemKeyring struct{}

func (s *systemKeyring) Get(service, user string) (string, error) {
	secret, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return secret, nil
}

func (s *systemKeyring) Set(service, user, password string) error {
	return keyring.Set(service, user, password)
}

func (s *systemKeyring) Delete(service, user string) error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// KeyringStore manages the API bearer token in the system keyring
type KeyringStore struct {
	provider keyringProvider
	getenv   func(string) string
}

// NewKeyringStore creates a new KeyringStore with the system keyring
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{
		provider: &systemKeyring{},
		getenv:   os.Getenv,
	}
}

// SetToken stores the API token in the system keyring
func (k *KeyringStore) SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	if err := k.provider.Set(serviceName, userName, token); err != nil {
		return fmt.Errorf("failed to store API token in keyring: %w", err)
	}

	return nil
}

// GetToken retrieves the API token from the system keyring
func (k *KeyringStore) GetToken() (string, error) {
	token, err := k.provider.Get(serviceName, userName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to retrieve API token from keyring: %w", err)
	}

	return token, nil
}

// DeleteToken removes the API token from the system keyring.
// Deleting a token that does not exist is not an error.
func (k *KeyringStore) DeleteToken() error {
	if err := k.provider.Delete(serviceName, userName); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete API token from keyring: %w", err)
	}

	return nil
}

// ResolveToken returns the keyring token, falling back to PLANNER_API_TOKEN.
// An empty result means requests are sent without authorization. Keyring
// failures other than ErrNotFound are returned alongside the env fallback.
func (k *KeyringStore) ResolveToken() (string, error) {
	token, err := k.GetToken()
	if err == nil && token != "" {
		return token, nil
	}

	getenv := k.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	fallback := getenv(TokenEnvVar)

	if err != nil && !errors.Is(err, ErrNotFound) {
		return fallback, err
	}
	return fallback, nil
}
