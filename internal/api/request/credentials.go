// Package request holds the pure request predicates and decoders used by the
// API dispatcher before any handler runs.
package request

import (
	"encoding/base64"
	"strings"
)

const basicPrefix = "Basic "

// BasicCredentials parses an Authorization header value of the form
// "Basic base64(id:secret)". The decoded string is split on its first colon,
// so the secret may itself contain colons. ok is false for an empty header,
// another scheme, invalid base64 or a decoded value without a colon.
func BasicCredentials(header string) (id, secret string, ok bool) {
	if !strings.HasPrefix(header, basicPrefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, basicPrefix))
	if err != nil {
		return "", "", false
	}

	id, secret, ok = strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", false
	}
	return id, secret, true
}
