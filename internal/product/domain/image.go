package domain

import "encoding/base64"

// DecodeImage turns a base64 payload into raw bytes. Empty or malformed
// input yields nil, never an error.
func DecodeImage(encoded string) []byte {
	if encoded == "" {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	return raw
}

// EncodeImage turns raw image bytes into base64, empty string for nil.
func EncodeImage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}
