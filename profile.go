package dfoprog

import (
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Profile holds the optional tuning read from a YAML profile file.
type Profile struct {
	EEPROM struct {
		PollInterval time.Duration
		MaxPolls     int
	}
	Defaults struct {
		Generic []byte
		PLL1    []byte
	}
}

// LoadProfile parses and validates a YAML profile.
func LoadProfile(r io.Reader) (Profile, error) {
	var p Profile
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return p, errors.Wrap(err, "failed to read profile")
	}
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return p, &ConfigError{Field: "profile", Msg: err.Error()}
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate checks that overridden default blocks cover their register ranges exactly.
func (p Profile) Validate() error {
	if n := len(p.Defaults.Generic); n != 0 && n != GenericEnd-GenericStart {
		return &ConfigError{Field: "profile", Msg: fmt.Sprintf("generic defaults need %d bytes, got %d", GenericEnd-GenericStart, n)}
	}
	if n := len(p.Defaults.PLL1); n != 0 && n != PLL1End-PLL1Start {
		return &ConfigError{Field: "profile", Msg: fmt.Sprintf("PLL1 defaults need %d bytes, got %d", PLL1End-PLL1Start, n)}
	}
	if p.EEPROM.PollInterval < 0 || p.EEPROM.MaxPolls < 0 {
		return &ConfigError{Field: "profile", Msg: "EEPROM poll settings must not be negative"}
	}
	return nil
}

// Options converts the profile into programmer options. Unset fields keep their defaults.
func (p Profile) Options() []Option {
	var opts []Option
	if p.EEPROM.PollInterval > 0 {
		opts = append(opts, WithPollInterval(p.EEPROM.PollInterval))
	}
	if p.EEPROM.MaxPolls > 0 {
		opts = append(opts, WithMaxPolls(p.EEPROM.MaxPolls))
	}
	if len(p.Defaults.Generic) != 0 {
		opts = append(opts, WithGenericDefaults(p.Defaults.Generic))
	}
	if len(p.Defaults.PLL1) != 0 {
		opts = append(opts, WithPLL1Defaults(p.Defaults.PLL1))
	}
	return opts
}
