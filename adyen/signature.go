package adyen

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Two merchant signature generations exist, selected by the shape of the
// shared secret: a 64-character hex key routes to the SHA-256 scheme, any
// other key length to the legacy SHA-1 scheme still required for older skin
// configurations.
const hexKeyLength = 64

// isSHA256Key reports whether key selects the generation-2 algorithm.
func isSHA256Key(key string) bool {
	return len(key) == hexKeyLength
}

// escapeToken escapes a single key or value token for the SHA-256 signable
// string. Backslashes are doubled first so that a literal colon is not
// re-escaped by the backslash pass.
func escapeToken(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, ":", `\:`)
}

// stringifyField renders a field value the way it participates in signing:
// nil becomes the empty string, numbers keep their shortest decimal form.
func stringifyField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// SignatureSHA256 computes the generation-2 merchant signature: fields are
// sorted bytewise by key, each key and value token is escaped, all keys
// followed by all values are joined with ":" and the result is HMAC-SHA256
// digested under the hex-decoded key, base64 encoded.
func SignatureSHA256(hmacKey string, data map[string]any) (string, error) {
	key, err := hex.DecodeString(hmacKey)
	if err != nil {
		return "", &ConfigurationError{Reason: "HMAC key is not valid hex: " + err.Error()}
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tokens := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		tokens = append(tokens, escapeToken(k))
	}
	for _, k := range keys {
		tokens = append(tokens, escapeToken(stringifyField(data[k])))
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(strings.Join(tokens, ":")))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// SignatureSHA1 computes the legacy generation-1 merchant signature: the
// values of exactly the named fields, in the given order, concatenated with
// no separator and no escaping, HMAC-SHA1 digested under the raw key bytes.
// Absent fields contribute the empty string. The base64 payload is the raw
// digest; this matches the historical hex-pack-then-encode byte layout.
func SignatureSHA1(hmacKey string, data map[string]any, fieldOrder []string) string {
	var sb strings.Builder
	for _, f := range fieldOrder {
		sb.WriteString(stringifyField(data[f]))
	}

	mac := hmac.New(sha1.New, []byte(hmacKey))
	mac.Write([]byte(sb.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
