// Package metadata identifies export runs: every generated document carries a
// run id plus a digest of the source bytes, so a reader can tell which feed
// produced it and whether that feed changed since.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrDigestMismatch is returned when source bytes no longer match a stamp.
var ErrDigestMismatch = errors.New("digest mismatch")

// Stamp ties one export run to the exact source bytes it processed.
type Stamp struct {
	RunID        string
	SourceFile   string
	SourceSHA256 string
	GeneratedAt  time.Time
}

// NewStamp builds the provenance stamp for one run over the given source.
func NewStamp(sourceFile string, data []byte) Stamp {
	return Stamp{
		RunID:        uuid.NewString(),
		SourceFile:   sourceFile,
		SourceSHA256: Digest(data),
		GeneratedAt:  time.Now().UTC(),
	}
}

// Digest computes the hex SHA-256 digest of the given bytes.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// VerifyDigest checks that data still matches a previously recorded digest.
func VerifyDigest(data []byte, want string) error {
	got := Digest(data)
	if got != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrDigestMismatch, want, got)
	}

	return nil
}
