// Package hasher computes stable content digests for synced asset documents.
// Line endings and surrounding whitespace are normalized first, so re-saving
// a file with CRLF endings or a trailing blank line does not register as a
// content change.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

func normalize(content string) string {
	s := strings.ReplaceAll(content, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}

// Hash returns the hex-encoded SHA-256 digest of the normalized content.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(normalize(content)))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether content hashes to expected.
func Verify(content, expected string) bool {
	return Hash(content) == expected
}

// MetadataHash fingerprints a metadata mapping independent of key order.
func MetadataHash(metadata map[string]string) string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, metadata[k])
	}
	return Hash(b.String())
}

// CombinedHash fingerprints metadata and content jointly.
func CombinedHash(metadata map[string]string, content string) string {
	return Hash(MetadataHash(metadata) + "\n" + normalize(content))
}
