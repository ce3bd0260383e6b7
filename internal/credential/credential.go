// Package credential models a secret that is about to be written to 1Password.
package credential

import (
	"context"
	"strings"

	"github.com/systmms/opcred/internal/onepassword"
	"github.com/systmms/opcred/internal/secure"
)

const (
	// CategoryLogin is the default category. Login items always carry a password.
	CategoryLogin = "login"
	// DefaultVault is used when no vault is given.
	DefaultVault = "HomeLab"
)

// Credential is a to-be-created 1Password item. Treat it as immutable once
// built: ToOpArgs and Save must see the same values.
type Credential struct {
	Category string
	Title    string
	Vault    string
	Tags     []string
	Fields   []onepassword.Field
	URL      string
	Username string
	Password string
	// Generated is true when Password was produced here rather than supplied.
	Generated bool
}

// Option customises a Credential.
type Option func(*Credential)

// WithCategory sets the item category.
func WithCategory(category string) Option {
	return func(c *Credential) { c.Category = category }
}

// WithVault sets the destination vault.
func WithVault(vault string) Option {
	return func(c *Credential) { c.Vault = vault }
}

// WithTags sets the item tags. Duplicates are dropped, order is kept.
func WithTags(tags ...string) Option {
	return func(c *Credential) { c.Tags = uniq(tags) }
}

// WithFields sets the free-form fields in display order.
func WithFields(fields ...onepassword.Field) Option {
	return func(c *Credential) { c.Fields = fields }
}

// WithURL sets the item website.
func WithURL(url string) Option {
	return func(c *Credential) { c.URL = url }
}

// WithUsername sets the username field.
func WithUsername(username string) Option {
	return func(c *Credential) { c.Username = username }
}

// WithPassword supplies the password, which suppresses generation.
func WithPassword(password string) Option {
	return func(c *Credential) { c.Password = password }
}

// New builds a Credential. When the category requires a password and none
// was supplied, one is generated now so every later rendering agrees.
func New(title string, opts ...Option) (*Credential, error) {
	c := &Credential{
		Category: CategoryLogin,
		Title:    title,
		Vault:    DefaultVault,
		Tags:     []string{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.Vault == "" {
		c.Vault = DefaultVault
	}

	if c.requiresPassword() && c.Password == "" {
		pw, err := secure.GeneratePassword()
		if err != nil {
			return nil, err
		}
		c.Password = pw
		c.Generated = true
	}
	return c, nil
}

// BuildFields returns the free-form fields followed by username (when set)
// and password (when the category requires one).
func (c *Credential) BuildFields() []onepassword.Field {
	out := make([]onepassword.Field, 0, len(c.Fields)+2)
	out = append(out, c.Fields...)
	if c.Username != "" {
		out = append(out, onepassword.Field{Label: "username", Value: c.Username})
	}
	if c.requiresPassword() || c.Password != "" {
		out = append(out, onepassword.Field{Label: "password", Value: c.Password})
	}
	return out
}

// Request is the create request Save submits.
func (c *Credential) Request() onepassword.CreateRequest {
	return onepassword.CreateRequest{
		Category: c.Category,
		Title:    c.Title,
		Vault:    c.Vault,
		Tags:     c.Tags,
		Fields:   c.BuildFields(),
		URL:      c.URL,
	}
}

// ToOpArgs returns the full command line Save would run, binary included.
func (c *Credential) ToOpArgs() []string {
	return append([]string{onepassword.Binary}, onepassword.CreateItemArgs(c.Request())...)
}

// Save creates the item through client.
func (c *Credential) Save(ctx context.Context, client *onepassword.Client) onepassword.Result {
	return client.CreateItem(ctx, c.Request())
}

func (c *Credential) requiresPassword() bool {
	return c.Category == CategoryLogin
}

func uniq(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
