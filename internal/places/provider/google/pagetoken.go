package google

import (
	"encoding/base64"
	"encoding/json"
)

// The medical category fans out to several upstream query types, each with
// its own continuation token. The compound token bundles the full mapping
// (absent sub-tokens included as empty strings) into one opaque string.

// encodeCompoundToken serializes the sub-token mapping. Returns "" when every
// sub-token is absent, which callers surface as "no more pages".
func encodeCompoundToken(tokens map[string]string) string {
	hasToken := false
	for _, token := range tokens {
		if token != "" {
			hasToken = true
			break
		}
	}
	if !hasToken {
		return ""
	}

	raw, err := json.Marshal(tokens)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// decodeCompoundToken reverses encodeCompoundToken. Missing or malformed
// input yields nil, which callers treat as "start from the first page" —
// token corruption is never fatal.
func decodeCompoundToken(token string) map[string]string {
	if token == "" {
		return nil
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil
	}

	var tokens map[string]string
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil
	}
	return tokens
}
