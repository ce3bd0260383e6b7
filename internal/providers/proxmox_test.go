package providers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/opcred/internal/onepassword"
	"github.com/systmms/opcred/internal/providers"
)

func TestNormalizeProxmoxUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "root@pam"},
		{"root", "root@pam"},
		{"terraform@pve", "terraform@pve"},
		{" admin ", "admin@pam"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, providers.NormalizeProxmoxUser(tt.in), "input %q", tt.in)
	}
}

func TestProxmox_BuildCredential(t *testing.T) {
	t.Parallel()

	cred, err := providers.For("proxmox", newFixture().deps).BuildCredential(context.Background(), providers.Options{
		Site:     "singapore",
		Username: "terraform@pve",
		URL:      "https://pve.sg.lab:8006",
		Node:     "pve-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "Proxmox - Singapore", cred.Title)
	assert.Equal(t, "HomeLab", cred.Vault)
	assert.Equal(t, []string{"proxmox", "singapore", "infrastructure", "hypervisor"}, cred.Tags)
	assert.Equal(t, []onepassword.Field{
		{Label: "Node", Value: "pve-01"},
		{Label: "Realm", Value: "pve"},
	}, cred.Fields)
	assert.Equal(t, "terraform@pve", cred.Username)
	assert.Equal(t, "https://pve.sg.lab:8006", cred.URL)
}

func TestProxmox_BuildCredential_DefaultUser(t *testing.T) {
	t.Parallel()

	cred, err := providers.For("proxmox", newFixture().deps).BuildCredential(context.Background(), providers.Options{Site: "us"})
	require.NoError(t, err)

	assert.Equal(t, "root@pam", cred.Username)
	assert.Equal(t, []onepassword.Field{{Label: "Realm", Value: "pam"}}, cred.Fields)
}

func TestProxmox_Rotate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.mock.AddResponse("op item get", opResponses.Item("abc", "Proxmox - Singapore", "v1", []string{"proxmox"}, "terraform@pve", "old"))
	item, err := onepassword.DecodeItem(f.deps.Client.GetItem(context.Background(), "abc", ""))
	require.NoError(t, err)

	res := providers.For("proxmox", f.deps).Rotate(context.Background(), item)

	require.True(t, res.Success)
	assert.Equal(t, []string{"item", "edit", "abc", "--vault", "v1"}, f.mock.LastCall().Args[:5])
	assert.Contains(t, f.log.String(), "Updated 1Password. Remember to update Proxmox:")
	assert.Contains(t, f.log.String(), "  pveum passwd terraform@pve\n")
}

func TestProxmox_RotateDefaultsUserInReminder(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res := providers.For("proxmox", f.deps).Rotate(context.Background(), &onepassword.Item{ID: "abc"})

	require.True(t, res.Success)
	assert.Contains(t, f.log.String(), "pveum passwd root@pam")
}

func TestProxmox_RotateFailureSkipsReminder(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.mock.AddErrorResponse("op item edit", "denied", 1)

	res := providers.For("proxmox", f.deps).Rotate(context.Background(), &onepassword.Item{ID: "abc"})

	assert.False(t, res.Success)
	assert.NotContains(t, f.log.String(), "pveum")
}
