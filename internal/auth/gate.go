// Package auth implements the admin gate: a stateless shared-secret check.
// It issues no session or token; callers re-prove on each login.
package auth

import "crypto/subtle"

type Result int

const (
	Denied Result = iota
	Authorized
	// Misconfigured means no secret is set server-side. Handlers must render
	// it exactly like Denied so callers cannot tell why the check failed.
	Misconfigured
)

type Gate struct {
	secret string
}

func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

func (g *Gate) Configured() bool {
	return g.secret != ""
}

func (g *Gate) Check(submitted string) Result {
	if g.secret == "" {
		return Misconfigured
	}
	if subtle.ConstantTimeCompare([]byte(g.secret), []byte(submitted)) == 1 {
		return Authorized
	}
	return Denied
}
