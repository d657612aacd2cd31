package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/goccy/go-json"
)

// Key kinds. Every key a [Keyer] derives ends in "<kind>:<sha256>".
const (
	KindArtifact = "artifact"
	KindResponse = "response"
	KindOther    = "other"
)

// hashKey returns "<kind>:<sha256 of the JSON encoding of parts>".
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. It is the input hash passed to
// [Keyer.ArtifactKey].
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// KeyKind reports the kind a key was derived for, ignoring any scope
// prefix, so "site:artifact:ab12" is an artifact key. Keys not made by a
// Keyer are [KindOther].
func KeyKind(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return KindOther
	}
	kind := key[:i]
	if j := strings.LastIndexByte(kind, ':'); j >= 0 {
		kind = kind[j+1:]
	}
	switch kind {
	case KindArtifact, KindResponse:
		return kind
	}
	return KindOther
}
