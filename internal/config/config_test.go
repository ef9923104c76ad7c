package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theakshaypant/calcom/internal/core"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "calcom-cli", "config.json"), p)

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "calcom-cli", "config.json"), p)
}

func TestStore_LoadMissing(t *testing.T) {
	s := &Store{Path: filepath.Join(t.TempDir(), "nope", "config.json")}
	rec, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Record{}, rec)
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := (&Store{Path: path}).Load()
	assert.Error(t, err)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calcom-cli", "config.json")
	s := &Store{Path: path}

	require.NoError(t, s.Save(Record{APIKey: "cal_live_abcdef123", Timezone: "UTC"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"apiKey\": \"cal_live_abcdef123\",\n  \"timezone\": \"UTC\"\n}\n", string(b))

	rec, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "cal_live_abcdef123", rec.APIKey)
	assert.Equal(t, "UTC", rec.Timezone)
}

func TestStore_SaveTightensExistingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	require.NoError(t, (&Store{Path: path}).Save(Record{APIKey: "0123456789"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_SetAuth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timezone":"Europe/Oslo","theme":"dark"}`), 0o600))
	s := &Store{Path: path}

	rec, err := s.SetAuth("  cal_live_0123456789 ", "")
	require.NoError(t, err)
	assert.Equal(t, "cal_live_0123456789", rec.APIKey)
	assert.Equal(t, "Europe/Oslo", rec.Timezone)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"apiKey":"cal_live_0123456789","timezone":"Europe/Oslo","theme":"dark"}`, string(b))

	rec, err = s.SetAuth("cal_live_0123456789", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", rec.Timezone)
}

func TestStore_SetAuthRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := &Store{Path: path}

	_, err := s.SetAuth("short", "")
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = s.SetAuth("cal_live_0123456789", "Nowhere/Special")
	require.ErrorAs(t, err, &vErr)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written on invalid input")
}

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		rec     Record
		want    Token
		wantErr bool
	}{
		{name: "env wins", env: "env_key_123", rec: Record{APIKey: "cfg_key_456"}, want: Token{Value: "env_key_123", Source: SourceEnv}},
		{name: "env trimmed", env: "  env_key_123\n", want: Token{Value: "env_key_123", Source: SourceEnv}},
		{name: "blank env falls back", env: "   ", rec: Record{APIKey: " cfg_key_456 "}, want: Token{Value: "cfg_key_456", Source: SourceConfig}},
		{name: "none", rec: Record{APIKey: "  "}, want: Token{Source: SourceNone}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveToken(tt.env, tt.rec)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				var noAuth *core.NoAuthError
				assert.ErrorAs(t, err, &noAuth)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResolveTimezone(t *testing.T) {
	tz, err := ResolveTimezone("", Record{})
	require.NoError(t, err)
	assert.Equal(t, core.DefaultTimezone, tz)

	tz, err = ResolveTimezone("", Record{Timezone: "Asia/Tokyo"})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", tz)

	tz, err = ResolveTimezone("UTC", Record{Timezone: "Asia/Tokyo"})
	require.NoError(t, err)
	assert.Equal(t, "UTC", tz)

	_, err = ResolveTimezone("Not/AZone", Record{})
	assert.Error(t, err)

	_, err = ResolveTimezone("", Record{Timezone: "Not/AZone"})
	assert.Error(t, err)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "***", MaskSecret(""))
	assert.Equal(t, "***", MaskSecret("abcdef"))
	assert.Equal(t, "abc***efg", MaskSecret("abcdefg"))
	assert.Equal(t, "cal***789", MaskSecret("cal_live_0123456789"))
}

func TestNewStatus(t *testing.T) {
	st := NewStatus(Token{Value: "cal_live_0123456789", Source: SourceEnv}, "/x/config.json", "UTC")
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.TokenPreview)
	assert.Equal(t, "cal***789", *st.TokenPreview)

	st = NewStatus(Token{Source: SourceNone}, "/x/config.json", "UTC")
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.TokenPreview)
	assert.Equal(t, SourceNone, st.Source)
}
