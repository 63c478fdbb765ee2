package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"

	"github.com/talentscout/candidatevault/internal/common"
)

// KeySize is the master secret length in bytes.
const KeySize = 32

// LoadOrCreateKey returns the master secret stored at path. When the file is
// absent a fresh random secret is generated and persisted with owner-only
// permission; when present it is reused as-is. Any other filesystem outcome
// wraps common.ErrKeyUnavailable and is fatal to store construction — there
// is no retry and no escrow.
func LoadOrCreateKey(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		if len(b) != KeySize {
			return nil, fmt.Errorf("%w: key file %s has unexpected size %d", common.ErrKeyUnavailable, path, len(b))
		}
		return b, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrKeyUnavailable, path, err)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: generate: %v", common.ErrKeyUnavailable, err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("%w: write %s: %v", common.ErrKeyUnavailable, path, err)
	}
	return key, nil
}
