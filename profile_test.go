package dfoprog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestLoadProfile(t *testing.T) {
	const data = `
eeprom:
  pollinterval: 20ms
  maxpolls: 5
defaults:
  generic: [0x01, 0xb5, 0x01, 0x02, 0x51]
`
	profile, err := LoadProfile(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	opts := NewProgrammer(NewTransport(newSimChip()), profile.Options()...).Options()
	if opts.PollInterval != 20*time.Millisecond {
		t.Errorf("poll interval %v", opts.PollInterval)
	}
	if opts.MaxPolls != 5 {
		t.Errorf("max polls %d", opts.MaxPolls)
	}
	if want := []byte{0x01, 0xb5, 0x01, 0x02, 0x51}; !bytes.Equal(opts.Generic.Values, want) {
		t.Errorf("generic % x, want % x", opts.Generic.Values, want)
	}
	if !bytes.Equal(opts.PLL1.Values, PLL1Defaults.Values) {
		t.Errorf("PLL1 % x, want defaults", opts.PLL1.Values)
	}
}

func TestLoadProfileEmpty(t *testing.T) {
	profile, err := LoadProfile(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if opts := profile.Options(); len(opts) != 0 {
		t.Errorf("got %d options from an empty profile", len(opts))
	}
}

func TestLoadProfileInvalid(t *testing.T) {
	tests := map[string]string{
		"short generic": "defaults:\n  generic: [1, 2, 3]\n",
		"long PLL1":     "defaults:\n  pll1: [" + strings.Repeat("0, ", 16) + "0]\n",
		"unknown key":   "eeprom:\n  timeout: 1s\n",
		"negative":      "eeprom:\n  maxpolls: -1\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadProfile(strings.NewReader(data))
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Errorf("got %v, want ConfigError", err)
			}
		})
	}
}
