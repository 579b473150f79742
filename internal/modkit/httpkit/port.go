package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "gracewell/internal/platform/errors"
)

// TokenFunc resolves a bearer token to a caller role
type TokenFunc func(token string) (caller string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// StaticTokens maps configured secrets to caller roles; empty secrets are skipped
// a port built from no usable secrets refuses every request
func StaticTokens(roles map[string]string) *Port {
	type entry struct{ secret, role string }
	var known []entry
	for role, secret := range roles {
		if secret = strings.TrimSpace(secret); secret != "" {
			known = append(known, entry{secret: secret, role: role})
		}
	}
	return NewPortFunc(func(token string) (string, error) {
		for _, e := range known {
			if subtle.ConstantTimeCompare([]byte(token), []byte(e.secret)) == 1 {
				return e.role, nil
			}
		}
		return "", perr.Unauthorizedf("invalid bearer token")
	})
}

// Parse extracts the caller from an Authorization Bearer header
// missing, malformed and refused tokens all come back unauthorized
func (p *Port) Parse(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer"
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	caller, err := p.parse(raw)
	if err != nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return caller, nil
}
