package secure

import (
	"encoding/base64"
	"fmt"

	"github.com/awnumar/memguard"
)

// PasswordBytes is the number of random bytes behind a generated password.
// Base64 encoding turns them into a 32 character string.
const PasswordBytes = 24

// GeneratePassword returns PasswordBytes of cryptographically strong
// randomness encoded as standard base64.
func GeneratePassword() (string, error) {
	buf := memguard.NewBufferRandom(PasswordBytes)
	defer buf.Destroy()

	if buf.Size() != PasswordBytes {
		return "", fmt.Errorf("failed to allocate %d random bytes", PasswordBytes)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
