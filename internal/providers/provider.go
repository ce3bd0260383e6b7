// Package providers turns a create request into a Credential for a target
// system and knows how to rotate that system's stored credentials.
package providers

import (
	"context"
	"strings"
	"unicode"

	"github.com/systmms/opcred/internal/config"
	"github.com/systmms/opcred/internal/credential"
	"github.com/systmms/opcred/internal/logging"
	"github.com/systmms/opcred/internal/onepassword"
	"github.com/systmms/opcred/internal/secure"
)

// Kind identifies a provider implementation.
type Kind int

const (
	KindGeneric Kind = iota
	KindAWS
	KindProxmox
)

var kindsByName = map[string]Kind{
	"aws":     KindAWS,
	"proxmox": KindProxmox,
}

// KindOf maps a provider name to its Kind, case-insensitively.
// Anything unrecognised is Generic.
func KindOf(name string) Kind {
	if k, ok := kindsByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k
	}
	return KindGeneric
}

func (k Kind) String() string {
	switch k {
	case KindAWS:
		return "aws"
	case KindProxmox:
		return "proxmox"
	default:
		return "generic"
	}
}

// detectable lists, in priority order, the tags that identify a provider on
// an existing item.
var detectable = []string{"aws", "proxmox", "kubernetes", "traefik"}

// Options is the free-form request a provider builds a credential from.
type Options struct {
	Site     string
	Service  string
	Vault    string
	Username string
	URL      string
	Password string

	// AWS
	AccessKeyID     string
	SecretAccessKey string
	AccountID       string
	RoleARN         string
	Region          string
	DetectAccount   bool

	// Proxmox
	Node string

	// Extra tags added on top of the provider defaults.
	Extra []string
}

// Provider builds and rotates credentials for one kind of target system.
type Provider interface {
	Name() string
	BuildCredential(ctx context.Context, opts Options) (*credential.Credential, error)
	Rotate(ctx context.Context, item *onepassword.Item) onepassword.Result
}

// Deps are the collaborators shared by every provider.
type Deps struct {
	Config *config.Config
	Client *onepassword.Client
	Logger *logging.Logger
	// Accounts resolves the AWS account ID when a request asks for it. Optional.
	Accounts AccountResolver
}

// For returns the provider registered under name. Unknown names yield a
// Generic provider carrying that name.
func For(name string, deps Deps) Provider {
	if deps.Config == nil {
		deps.Config = config.New("")
	}
	if deps.Logger == nil {
		deps.Logger = logging.New(false, true)
	}

	b := base{deps: deps}
	switch KindOf(name) {
	case KindAWS:
		return &AWS{base: b}
	case KindProxmox:
		return &Proxmox{base: b}
	default:
		return &Generic{base: b, ProviderName: name}
	}
}

// Detect picks the provider name for an existing item from its tags.
func Detect(tags []string) string {
	have := make(map[string]bool, len(tags))
	for _, t := range tags {
		have[strings.ToLower(t)] = true
	}
	for _, p := range detectable {
		if have[p] {
			return p
		}
	}
	return "generic"
}

type base struct {
	deps Deps
}

func (b base) buildTitle(provider, site, service string) string {
	title := capitalize(provider) + " - " + capitalize(site)
	if service != "" {
		title += " - " + service
	}
	return title
}

func (b base) buildTags(provider, site, service string, extra ...string) []string {
	tags := []string{strings.ToLower(provider), strings.ToLower(site), "infrastructure"}
	if service != "" {
		tags = append(tags, strings.ToLower(service))
	}
	for _, e := range extra {
		tags = append(tags, strings.ToLower(e))
	}
	return tags
}

func (b base) defaultRegion(site string) string {
	if region := b.deps.Config.SiteRegion(site); region != "" {
		return region
	}
	return config.DefaultAWSRegion
}

func (b base) vault(requested, purpose string) string {
	if requested != "" {
		return requested
	}
	return b.deps.Config.VaultFor(purpose)
}

// rotatePassword stores a fresh password on item.
func (b base) rotatePassword(ctx context.Context, item *onepassword.Item) onepassword.Result {
	if item == nil {
		return onepassword.Fail("no item to rotate")
	}
	if b.deps.Client == nil {
		return onepassword.Fail("no 1Password client configured")
	}

	pw, err := secure.GeneratePassword()
	if err != nil {
		return onepassword.Fail(err.Error())
	}

	b.deps.Logger.Debug("Rotating password for %s", item.Title)
	return b.deps.Client.EditItem(ctx, item.ID, item.Vault.ID, []onepassword.Field{
		{Label: "password", Value: pw},
	})
}

// capitalize splits on underscores and hyphens and title-cases each word:
// "home_lab-sg" becomes "Home Lab Sg".
func capitalize(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
