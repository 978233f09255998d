// Package mock provides test doubles for lawbot interfaces using
// function fields.
package mock

import (
	"context"

	"lawbot"
)

// Interface compliance checks.
var (
	_ lawbot.Provider = (*Provider)(nil)
	_ lawbot.Stream   = (*Stream)(nil)
)

// Provider is a test double for lawbot.Provider.
// Set StreamFn before calling Stream.
type Provider struct {
	StreamFn func(ctx context.Context, req lawbot.Request) (lawbot.Stream, error)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req lawbot.Request) (lawbot.Stream, error) {
	return p.StreamFn(ctx, req)
}
