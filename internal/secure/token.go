package secure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/systmms/opcred/internal/logging"
)

const (
	// KeyringService names opcred's entries in the OS keyring.
	KeyringService = "opcred"
	// ServiceAccountTokenKey is the keyring account holding the op token.
	ServiceAccountTokenKey = "op-service-account-token"
	// ServiceAccountTokenEnv is the variable op reads the token from.
	ServiceAccountTokenEnv = "OP_SERVICE_ACCOUNT_TOKEN"

	serviceAccountTokenPrefix = "ops_"
)

// ErrNoToken is returned when the keyring holds no token.
var ErrNoToken = errors.New("no 1Password service account token stored")

// TokenStore keeps a 1Password service account token in the OS keyring
// (Keychain, Secret Service or Windows Credential Manager).
type TokenStore struct {
	Service string
	Account string
}

// NewTokenStore returns the store opcred uses.
func NewTokenStore() *TokenStore {
	return &TokenStore{Service: KeyringService, Account: ServiceAccountTokenKey}
}

// Load returns the stored token, or ErrNoToken. The token prints as
// [REDACTED]; convert it with string() where the raw value is needed.
func (s *TokenStore) Load() (logging.Secret, error) {
	token, err := keyring.Get(s.Service, s.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("keyring read failed: %w", err)
	}
	return logging.Secret(token), nil
}

// Save stores token, replacing any previous one.
func (s *TokenStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, serviceAccountTokenPrefix) {
		return fmt.Errorf("not a 1Password service account token: expected the %q prefix", serviceAccountTokenPrefix)
	}
	if err := keyring.Set(s.Service, s.Account, token); err != nil {
		return fmt.Errorf("keyring write failed: %s", logging.Redact(err.Error(), []string{token}))
	}
	return nil
}

// Delete removes the stored token. Deleting a missing token returns ErrNoToken.
func (s *TokenStore) Delete() error {
	if err := keyring.Delete(s.Service, s.Account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNoToken
		}
		return fmt.Errorf("keyring delete failed: %w", err)
	}
	return nil
}

// Env returns the KEY=value pair that hands the stored token to op.
func (s *TokenStore) Env() (string, error) {
	token, err := s.Load()
	if err != nil {
		return "", err
	}
	return ServiceAccountTokenEnv + "=" + string(token), nil
}
