// Package dedup derives the stable keys used to upsert ingested headlines.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// BuildDedupKey returns the SHA-256 hex digest identifying one headline.
// With a URL the key is sha256("<sourceID>|<url>"); without one it falls
// back to sha256("<sourceID>|<normalizedText>|<isoDate>"). The digest is
// persisted as url_hash, so changing it orphans every stored row.
func BuildDedupKey(sourceID int64, url, normalizedText, isoDate string) string {
	id := strconv.FormatInt(sourceID, 10)
	var material string
	if url != "" {
		material = id + "|" + url
	} else {
		material = strings.Join([]string{id, normalizedText, isoDate}, "|")
	}
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])
}
