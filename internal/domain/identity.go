package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration.
const (
	hashDomainArtifact = "dnastore/artifact/v1"
	hashDomainVersion  = "dnastore/version/v1"
	hashDomainChecksum = "dnastore/checksum/v1"
)

// hashWithDomain computes SHA-256 with domain separation. Each part is
// followed by a null byte so part boundaries are unambiguous.
func hashWithDomain(domain string, parts ...[]byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	for _, p := range parts {
		h.Write(p)
		h.Write([]byte{0x00})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// NewArtifactID derives a fresh root identifier from origin, intent, and
// the creation instant. A random UUID suffix is mixed in so identical
// (origin, intent, timestamp) inputs still yield distinct IDs.
func NewArtifactID(origin, intent string, now time.Time) string {
	return hashWithDomain(hashDomainArtifact,
		[]byte(origin),
		[]byte(intent),
		[]byte(strconv.FormatInt(now.UnixNano(), 10)),
		[]byte(uuid.NewString()),
	)
}

// NewVersionID derives a version identifier from content plus timestamp.
// Every mutation gets a new VersionID, even when content is unchanged.
func NewVersionID(content []byte, now time.Time) string {
	return hashWithDomain(hashDomainVersion,
		content,
		[]byte(strconv.FormatInt(now.UnixNano(), 10)),
	)
}

// ContentChecksum is a pure function of content: the same content always
// produces the same checksum, independent of time or origin.
func ContentChecksum(content []byte) string {
	return hashWithDomain(hashDomainChecksum, content)
}

// NewRecord constructs a DNA record for the given provenance inputs. When
// existingID is empty a fresh ArtifactID is derived; otherwise the supplied
// identity is preserved. The constructor is pure data assembly: it appends
// no lifecycle events and persists nothing.
func NewRecord(origin, intent string, content []byte, existingID string, now time.Time) DNARecord {
	if intent == "" {
		intent = DefaultIntent
	}

	id := existingID
	if id == "" {
		id = NewArtifactID(origin, intent, now)
	}

	return DNARecord{
		ArtifactID: id,
		VersionID:  NewVersionID(content, now),
		Origin:     origin,
		Timestamp:  now,
		Intent:     intent,
		Checksum:   ContentChecksum(content),
	}
}
