package payfast

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

const SignatureField = "signature"

// Encode URL-encodes a value the way the gateway does (PHP urlencode):
// spaces become '+', everything except alphanumerics and "-_." is
// percent-encoded with upper-case hex.
func Encode(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "~", "%7E")
}

// ParamString builds the canonical string the signature is computed over.
// The signature field and blank values are skipped, keys are sorted, and the
// passphrase, when set, is appended last.
func ParamString(fields map[string]string, passphrase string) string {

	keys := make([]string, 0, len(fields))
	for key, value := range fields {
		if key == SignatureField || strings.TrimSpace(value) == "" {
			continue
		}
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(Encode(strings.TrimSpace(fields[key])))
		b.WriteByte('&')
	}

	params := strings.TrimSuffix(b.String(), "&")

	if passphrase = strings.TrimSpace(passphrase); passphrase != "" {
		if params != "" {
			params += "&"
		}
		params += "passphrase=" + Encode(passphrase)
	}

	return params
}

// Sign returns the lower-case hex digest over the canonical param string.
func Sign(fields map[string]string, passphrase string) string {
	sum := md5.Sum([]byte(ParamString(fields, passphrase)))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the signature of fields and compares it with the
// signature field they carry.
func Verify(fields map[string]string, passphrase string) bool {

	received := strings.ToLower(strings.TrimSpace(fields[SignatureField]))
	if received == "" {
		return false
	}

	expected := Sign(fields, passphrase)

	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}
