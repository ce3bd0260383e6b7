package providers

import (
	"context"

	"github.com/systmms/opcred/internal/credential"
	"github.com/systmms/opcred/internal/onepassword"
)

// Generic handles any service without special fields.
type Generic struct {
	base
	ProviderName string
}

// Name returns the provider name it was requested under.
func (g *Generic) Name() string {
	return g.ProviderName
}

// BuildCredential builds a login titled "<Provider> - <Site>[ - service]".
func (g *Generic) BuildCredential(ctx context.Context, opts Options) (*credential.Credential, error) {
	return credential.New(
		g.buildTitle(g.ProviderName, opts.Site, opts.Service),
		credential.WithCategory(credential.CategoryLogin),
		credential.WithVault(g.vault(opts.Vault, "default")),
		credential.WithTags(g.buildTags(g.ProviderName, opts.Site, opts.Service, opts.Extra...)...),
		credential.WithURL(opts.URL),
		credential.WithUsername(opts.Username),
		credential.WithPassword(opts.Password),
	)
}

// Rotate replaces the stored password with a freshly generated one.
func (g *Generic) Rotate(ctx context.Context, item *onepassword.Item) onepassword.Result {
	return g.rotatePassword(ctx, item)
}
