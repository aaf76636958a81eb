package question

import "strings"

// Values shipped in sample env files. A key containing one of these is treated
// as missing.
var placeholderKeys = []string{
	"your_groq_api_key",
	"your_gemini_api_key",
	"your_api_key",
	"your-api-key",
	"changeme",
}

// HasCredential reports whether key looks like a real provider key: non-empty
// and not a known placeholder. It does not check the key with the provider.
func HasCredential(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	for _, p := range placeholderKeys {
		if strings.Contains(key, p) {
			return false
		}
	}
	return true
}
