package testutil

import (
	"context"
	"errors"
)

// StaticAccount resolves to a fixed AWS account ID. The empty value fails,
// like an STS call for credentials that belong to no account.
type StaticAccount string

// AccountID returns the fixed account ID.
func (s StaticAccount) AccountID(ctx context.Context) (string, error) {
	if s == "" {
		return "", errors.New("no account ID configured")
	}
	return string(s), nil
}
