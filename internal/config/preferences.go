package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Preferences are the persisted user preferences. Fields written by newer
// versions of the app survive a load-and-save round trip untouched.
type Preferences struct {
	ShowSplash bool

	extra map[string]json.RawMessage
}

// DefaultPreferences returns the preferences used when no file exists.
func DefaultPreferences() Preferences {
	return Preferences{ShowSplash: true}
}

// UnmarshalJSON decodes known fields and keeps everything else verbatim.
func (p *Preferences) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.ShowSplash = true
	if v, ok := raw["show_splash"]; ok {
		if err := json.Unmarshal(v, &p.ShowSplash); err != nil {
			return fmt.Errorf("show_splash: %w", err)
		}
		delete(raw, "show_splash")
	}
	p.extra = raw
	return nil
}

// MarshalJSON re-emits unknown fields alongside the known ones.
func (p Preferences) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.extra)+1)
	for k, v := range p.extra {
		out[k] = v
	}
	show, err := json.Marshal(p.ShowSplash)
	if err != nil {
		return nil, err
	}
	out["show_splash"] = show
	return json.Marshal(out)
}

// LoadPreferences reads the preferences file. A missing file yields the
// defaults without error; a corrupt file yields the defaults plus the error
// so the caller can log it without losing the session.
func LoadPreferences() (Preferences, error) {
	path, err := PreferencesPath()
	if err != nil {
		return DefaultPreferences(), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPreferences(), nil
		}
		return DefaultPreferences(), fmt.Errorf("reading preferences: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences(), fmt.Errorf("parsing preferences: %w", err)
	}
	return prefs, nil
}

// SavePreferences writes the preferences file atomically.
func SavePreferences(prefs Preferences) error {
	path, err := PreferencesPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := atomicWriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}
