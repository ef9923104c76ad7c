package config

import (
	"strings"

	"github.com/theakshaypant/calcom/internal/core"
)

// Source says where a credential came from.
type Source string

const (
	SourceEnv    Source = "env"
	SourceConfig Source = "config"
	SourceNone   Source = "none"
)

// EnvAPIKey is the environment variable that overrides the stored API key.
const EnvAPIKey = "CALCOM_API_KEY"

// Token is a resolved API key.
type Token struct {
	Value  string
	Source Source
}

// ResolveToken picks the API key: a non-blank envToken wins over the stored key.
// Both are trimmed. With neither present a *core.NoAuthError is returned along with
// a Token whose Source is SourceNone.
func ResolveToken(envToken string, rec Record) (Token, error) {
	if v := strings.TrimSpace(envToken); v != "" {
		return Token{Value: v, Source: SourceEnv}, nil
	}
	if v := strings.TrimSpace(rec.APIKey); v != "" {
		return Token{Value: v, Source: SourceConfig}, nil
	}
	return Token{Source: SourceNone}, &core.NoAuthError{}
}

// ResolveTimezone returns override if given, else the stored timezone, else
// core.DefaultTimezone. Whichever is chosen must be a loadable IANA zone.
func ResolveTimezone(override string, rec Record) (string, error) {
	switch {
	case override != "":
		return core.ParseTimezone(override)
	case rec.Timezone != "":
		return core.ParseTimezone(rec.Timezone)
	default:
		return core.DefaultTimezone, nil
	}
}

// SetAuth validates apiKey (and timezone, when non-empty) and stores them, keeping
// every other field of the existing record.
func (s *Store) SetAuth(apiKey, timezone string) (Record, error) {
	key, err := core.ParseAPIKey(apiKey)
	if err != nil {
		return Record{}, err
	}
	if timezone != "" {
		if timezone, err = core.ParseTimezone(timezone); err != nil {
			return Record{}, err
		}
	}

	rec, err := s.Load()
	if err != nil {
		return Record{}, err
	}
	rec.APIKey = key
	if timezone != "" {
		rec.Timezone = timezone
	}
	if err := s.Save(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// MaskSecret keeps the first and last three characters of secret. Secrets of six
// characters or fewer are fully masked.
func MaskSecret(secret string) string {
	if len(secret) <= 6 {
		return "***"
	}
	return secret[:3] + "***" + secret[len(secret)-3:]
}

// Status is the report printed by `auth status`. It never carries the secret itself.
type Status struct {
	Authenticated bool    `json:"authenticated" yaml:"authenticated"`
	Source        Source  `json:"source" yaml:"source"`
	TokenPreview  *string `json:"tokenPreview" yaml:"tokenPreview"`
	ConfigPath    string  `json:"configPath" yaml:"configPath"`
	Timezone      string  `json:"timezone" yaml:"timezone"`
}

// NewStatus summarizes a resolved token.
func NewStatus(tok Token, configPath, timezone string) Status {
	st := Status{
		Authenticated: tok.Value != "",
		Source:        tok.Source,
		ConfigPath:    configPath,
		Timezone:      timezone,
	}
	if st.Authenticated {
		preview := MaskSecret(tok.Value)
		st.TokenPreview = &preview
	}
	return st
}
