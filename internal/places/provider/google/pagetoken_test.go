package google

import "testing"

func TestCompoundTokenRoundTrip(t *testing.T) {
	tokens := map[string]string{
		"hospital": "tok-h",
		"doctor":   "",
		"pharmacy": "tok-p",
	}

	encoded := encodeCompoundToken(tokens)
	if encoded == "" {
		t.Fatal("expected non-empty token")
	}

	decoded := decodeCompoundToken(encoded)
	if len(decoded) != 3 {
		t.Fatalf("expected 3 sub-tokens, got %d", len(decoded))
	}
	for key, want := range tokens {
		if decoded[key] != want {
			t.Errorf("sub-token %q = %q, want %q", key, decoded[key], want)
		}
	}
}

func TestEncodeCompoundTokenAllAbsent(t *testing.T) {
	encoded := encodeCompoundToken(map[string]string{
		"hospital": "",
		"doctor":   "",
		"pharmacy": "",
	})
	if encoded != "" {
		t.Fatalf("expected empty token, got %q", encoded)
	}
}

func TestDecodeCompoundTokenMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"not base64":  "%%%not-base64%%%",
		"not json":    "bm90LWpzb24=", // base64("not-json")
		"wrong shape": "WzEsMiwzXQ==", // base64("[1,2,3]")
	}

	for name, token := range cases {
		if decoded := decodeCompoundToken(token); decoded != nil {
			t.Errorf("%s: expected nil, got %v", name, decoded)
		}
	}
}
