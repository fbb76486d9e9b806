package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"html"
)

// GenerateETag derives a strong ETag from the JSON encoding of v.
func GenerateETag(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return `"` + hex.EncodeToString(sum[:16]) + `"`, nil
}

func htmlEscape(s string) string { return html.EscapeString(s) }
