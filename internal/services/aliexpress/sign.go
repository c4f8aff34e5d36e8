package aliexpress

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Sign computes the uppercase hex HMAC-SHA256 signature over the parameters.
// Keys are sorted lexicographically and concatenated as key+value pairs with
// no separators before hashing, matching the upstream verifier exactly.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var payload strings.Builder
	for _, key := range keys {
		payload.WriteString(key)
		payload.WriteString(params[key])
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload.String()))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}
