package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/opcred/internal/errors"
	"github.com/systmms/opcred/internal/logging"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDeepMerge(t *testing.T) {
	t.Parallel()

	base := map[string]interface{}{
		"a": map[string]interface{}{"x": 1, "y": 2},
	}
	override := map[string]interface{}{
		"a": map[string]interface{}{"y": 3, "z": 4},
	}

	got := DeepMerge(base, override)

	assert.Equal(t, map[string]interface{}{
		"a": map[string]interface{}{"x": 1, "y": 3, "z": 4},
	}, got)
	assert.Equal(t, 2, base["a"].(map[string]interface{})["y"], "base must not be modified")
}

func TestDeepMerge_ScalarReplacesMap(t *testing.T) {
	t.Parallel()

	got := DeepMerge(
		map[string]interface{}{"sites": map[string]interface{}{"us": "x"}},
		map[string]interface{}{"sites": "none"},
	)

	assert.Equal(t, "none", got["sites"])
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg := New(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, cfg.Load())

	assert.Equal(t, "HomeLab", cfg.GetString("default_vault"))
	assert.Equal(t, "AWS-Operations", cfg.VaultFor("aws"))
	assert.Equal(t, "AWS-Bootstrap", cfg.VaultFor("aws_bootstrap"))
	assert.Equal(t, "ap-southeast-1", cfg.GetString("sites.singapore.aws_region"))
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
default_vault: Infra
sites:
  singapore:
    aws_region: ap-southeast-2
  eu:
    alias: eu
    aws_region: eu-west-1
`)

	cfg := New(path)
	require.NoError(t, cfg.Load())

	assert.Equal(t, "Infra", cfg.VaultFor("default"))
	assert.Equal(t, "AWS-Operations", cfg.VaultFor("aws_operations"))
	assert.Equal(t, "ap-southeast-2", cfg.GetString("sites.singapore.aws_region"))
	assert.Equal(t, "sg", cfg.GetString("sites.singapore.alias"), "sibling keys survive the merge")
	assert.Equal(t, "eu-west-1", cfg.SiteRegion("eu"))
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg := New(writeConfig(t, "sites: [unterminated"))
	err := cfg.Load()

	var cfgErr dserrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "invalid YAML")
}

func TestLoad_SchemaViolation(t *testing.T) {
	t.Parallel()

	cfg := New(writeConfig(t, `
sites:
  singapore:
    aws_region: not a region
`))
	require.NoError(t, cfg.Load(), "schema problems do not block loading")

	var cfgErr dserrors.ConfigError
	require.ErrorAs(t, cfg.Problems(), &cfgErr)
	assert.Contains(t, cfgErr.Message, "aws_region")
	assert.Equal(t, "not a region", cfg.GetString("sites.singapore.aws_region"))

	var saveErr dserrors.ConfigError
	assert.ErrorAs(t, cfg.Save(), &saveErr, "invalid values are never written back")
}

func TestLoad_SchemaViolationIsLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := New(writeConfig(t, "default_vault: \"\"\n"))
	cfg.Logger = logging.New(false, true).WithWriter(&buf)

	require.NoError(t, cfg.Load())
	assert.Error(t, cfg.Problems())
	assert.Contains(t, buf.String(), "has invalid values")
}

func TestLoad_ValidFileHasNoProblems(t *testing.T) {
	t.Parallel()

	cfg := New(writeConfig(t, "default_vault: Personal\n"))
	require.NoError(t, cfg.Load())
	assert.NoError(t, cfg.Problems())
}

func TestValidate_Regions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		region string
		valid  bool
	}{
		{"us-east-1", true},
		{"ap-southeast-1", true},
		{"us-gov-west-1", true},
		{"eusc-de-east-1", true},
		{"cn-northwest-1", true},
		{"Europe", false},
		{"us-east", false},
		{"not a region", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.region, func(t *testing.T) {
			t.Parallel()
			data := Defaults()
			data["sites"] = map[string]interface{}{
				"eu": map[string]interface{}{"aws_region": tt.region},
			}
			err := Validate(data)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetSet(t *testing.T) {
	t.Parallel()

	cfg := New("")

	assert.Nil(t, cfg.Get("nope.deeper"))
	assert.Nil(t, cfg.Get("default_vault.child"))
	assert.Equal(t, "", cfg.GetString("nope"))

	cfg.Set("default_vault", "Personal")
	cfg.Set("sites.eu.aws_region", "eu-central-1")
	cfg.Set("default_vault.child", "x")

	assert.Equal(t, "eu-central-1", cfg.GetString("sites.eu.aws_region"))
	assert.Equal(t, "x", cfg.GetString("default_vault.child"), "non-map intermediates are replaced")
	assert.Equal(t, "ap-southeast-1", cfg.GetString("sites.singapore.aws_region"))
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := New(path)
	cfg.Set("default_vault", "Personal")
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]interface{}
	require.NoError(t, yaml.Unmarshal(raw, &onDisk))
	assert.Equal(t, "Personal", onDisk["default_vault"])

	reloaded := New(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, "Personal", reloaded.GetString("default_vault"))
	assert.Equal(t, "sg", reloaded.GetString("sites.singapore.alias"))
}

func TestSiteConfig(t *testing.T) {
	t.Parallel()

	cfg := New("")

	tests := []struct {
		name string
		site string
		want map[string]interface{}
	}{
		{
			name: "by name",
			site: "singapore",
			want: map[string]interface{}{"name": "singapore", "alias": "sg", "aws_region": "ap-southeast-1"},
		},
		{
			name: "by alias",
			site: "sg",
			want: map[string]interface{}{"name": "singapore", "alias": "sg", "aws_region": "ap-southeast-1"},
		},
		{
			name: "unknown",
			site: "unknown",
			want: map[string]interface{}{"name": "unknown", "aws_region": "us-east-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.SiteConfig(tt.site))
		})
	}

	_, leaked := cfg.Get("sites.singapore").(map[string]interface{})["name"]
	assert.False(t, leaked, "SiteConfig must not write name into the stored tree")
}

func TestYAMLListsEverything(t *testing.T) {
	t.Parallel()

	out, err := New("").YAML()
	require.NoError(t, err)

	assert.Contains(t, out, "default_vault: HomeLab")
	assert.Contains(t, out, "aws_region: ap-southeast-1")
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	assert.True(t, filepath.IsAbs(DefaultPath()) || DefaultPath() != "")
	assert.Equal(t, "config.yml", filepath.Base(DefaultPath()))
	assert.Equal(t, "opcreds", filepath.Base(filepath.Dir(DefaultPath())))
}

func TestSave_RejectsInvalidValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := New(path)
	cfg.Set("sites.eu.aws_region", "Europe")

	var cfgErr dserrors.ConfigError
	require.ErrorAs(t, cfg.Save(), &cfgErr)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing is written when validation fails")
}
