package auth

import (
	"net/http"
	"strings"
)

// Policy decides which requests must carry a session token.
type Policy struct {
	ExemptPaths    map[string]struct{}
	ExemptPrefixes []string
}

// NewDefaultPolicy builds a policy with exemptions.
func NewDefaultPolicy(exemptPaths []string, exemptPrefixes []string) Policy {
	set := make(map[string]struct{}, len(exemptPaths))
	for _, path := range exemptPaths {
		set[path] = struct{}{}
	}
	return Policy{ExemptPaths: set, ExemptPrefixes: exemptPrefixes}
}

// IsExempt returns true when a request should skip session resolution.
func (p Policy) IsExempt(r *http.Request) bool {
	if r == nil {
		return true
	}
	if _, ok := p.ExemptPaths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range p.ExemptPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

// RequiresSession reports whether the request needs a session token.
// Uploading readings creates the session, so it is the one API call
// allowed in without a token.
func (p Policy) RequiresSession(r *http.Request) bool {
	if r == nil {
		return false
	}
	if p.IsExempt(r) {
		return false
	}
	if r.URL.Path == "/api/v1/readings" && r.Method == http.MethodPost {
		return false
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
