package server

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// generateETag returns a strong entity tag for an encoded document
func generateETag(content []byte) string {
	hash := sha256.Sum256(content)
	return fmt.Sprintf(`"%s"`, hex.EncodeToString(hash[:16]))
}

// parseIfNoneMatch splits an If-None-Match header into its entity tags.
// Unquoted entries are dropped.
func parseIfNoneMatch(header string) []string {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil
	}
	if header == "*" {
		return []string{"*"}
	}

	var etags []string
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		tag := strings.TrimPrefix(part, "W/")
		if len(tag) < 2 || tag[0] != '"' || tag[len(tag)-1] != '"' {
			continue
		}
		etags = append(etags, part)
	}
	return etags
}

// matchesETag compares etag against etags using the weak comparison
func matchesETag(etag string, etags []string) bool {
	if len(etags) == 1 && etags[0] == "*" {
		return true
	}

	want := strings.TrimPrefix(etag, "W/")
	for _, e := range etags {
		if strings.TrimPrefix(e, "W/") == want {
			return true
		}
	}
	return false
}
