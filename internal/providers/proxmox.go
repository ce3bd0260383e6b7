package providers

import (
	"context"
	"strings"

	"github.com/systmms/opcred/internal/credential"
	"github.com/systmms/opcred/internal/onepassword"
)

// DefaultProxmoxUser is used when no username is given or stored.
const DefaultProxmoxUser = "root@pam"

// Proxmox manages Proxmox VE logins. Proxmox itself is never contacted.
type Proxmox struct {
	base
}

func (p *Proxmox) Name() string {
	return "proxmox"
}

// BuildCredential builds a hypervisor login. Usernames are normalised to
// user@realm with pam as the default realm.
func (p *Proxmox) BuildCredential(ctx context.Context, opts Options) (*credential.Credential, error) {
	username := NormalizeProxmoxUser(opts.Username)
	realm := username[strings.LastIndex(username, "@")+1:]

	var fields []onepassword.Field
	if opts.Node != "" {
		fields = append(fields, onepassword.Field{Label: "Node", Value: opts.Node})
	}
	if realm != "" {
		fields = append(fields, onepassword.Field{Label: "Realm", Value: realm})
	}

	return credential.New(
		p.buildTitle("Proxmox", opts.Site, ""),
		credential.WithCategory(credential.CategoryLogin),
		credential.WithVault(p.vault(opts.Vault, "default")),
		credential.WithTags(p.buildTags("proxmox", opts.Site, "", append([]string{"hypervisor"}, opts.Extra...)...)...),
		credential.WithFields(fields...),
		credential.WithURL(opts.URL),
		credential.WithUsername(username),
		credential.WithPassword(opts.Password),
	)
}

// Rotate stores a new password, then reminds the operator to apply it on
// the node with pveum.
func (p *Proxmox) Rotate(ctx context.Context, item *onepassword.Item) onepassword.Result {
	res := p.rotatePassword(ctx, item)
	if !res.Success {
		return res
	}

	username := item.FieldValue("username")
	if username == "" {
		username = DefaultProxmoxUser
	}
	p.deps.Logger.Warn("Updated 1Password. Remember to update Proxmox:")
	p.deps.Logger.Plain("  pveum passwd %s", username)
	return res
}

// NormalizeProxmoxUser returns user@realm, defaulting to root@pam and the pam realm.
func NormalizeProxmoxUser(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return DefaultProxmoxUser
	}
	if !strings.Contains(username, "@") {
		return username + "@pam"
	}
	return username
}
