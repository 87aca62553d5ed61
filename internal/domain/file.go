package domain

import (
	"context"
	"strings"
)

// PassArchivePrefix is the file store key prefix of archived passes.
const PassArchivePrefix = "passes/"

// FileStore abstracts raw file byte storage. It holds the archived pass
// document of each registration under "passes/<registration id>.pdf".
type FileStore interface {
	// Save writes data under key, replacing any existing bytes.
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Exists reports whether key holds data without loading it.
	Exists(ctx context.Context, key string) (bool, error)
	// Keys lists the stored keys starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// PassArchiveKey returns the file store key of a registration's last pass.
func PassArchiveKey(registrationID string) string {
	return PassArchivePrefix + registrationID + ".pdf"
}

// PassArchiveID is the inverse of PassArchiveKey.
func PassArchiveID(key string) (string, bool) {
	id, ok := strings.CutPrefix(key, PassArchivePrefix)
	if !ok {
		return "", false
	}
	id, ok = strings.CutSuffix(id, ".pdf")
	return id, ok && id != ""
}
