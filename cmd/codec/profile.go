package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"

	codec "github.com/05nelsonm/encoding-sub001"
	"github.com/05nelsonm/encoding-sub001/base16"
	"github.com/05nelsonm/encoding-sub001/base32"
	"github.com/05nelsonm/encoding-sub001/base64"
)

// Profile is a TOML file holding default settings. Flags given on the command line win.
//
//	alphabet = "base64url"
//	whitespace = "reject"
//	wrap = 76
//	padding = false
type Profile struct {
	Alphabet     string `toml:"alphabet"`
	Whitespace   string `toml:"whitespace"`
	Wrap         *uint8 `toml:"wrap"`
	Padding      *bool  `toml:"padding"`
	Lowercase    *bool  `toml:"lowercase"`
	ConstantTime *bool  `toml:"constant_time"`
	CheckSymbol  string `toml:"check_symbol"`
}

// LoadProfile reads a Profile from path. Unknown keys are rejected.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	f, err := os.Open(path)
	if err != nil {
		return p, err
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// settings is the merged result of the profile and the command line flags.
type settings struct {
	alphabet     string
	leniency     codec.Leniency
	wrap         uint8
	padding      bool
	lowercase    bool
	constantTime bool
	checkSymbol  byte
}

func parseLeniency(s string) (codec.Leniency, error) {
	switch strings.ToLower(s) {
	case "", "skip":
		return codec.SkipWhitespace, nil
	case "pass":
		return codec.PassWhitespace, nil
	case "reject":
		return codec.RejectWhitespace, nil
	}
	return 0, fmt.Errorf("unknown whitespace policy %q (want skip, pass or reject)", s)
}

func parseCheckSymbol(s string) (byte, error) {
	switch {
	case s == "":
		return 0, nil
	case len(s) == 1 && base32.IsCheckSymbol(s[0]):
		return s[0], nil
	}
	return 0, fmt.Errorf("invalid check symbol %q (want one of * ~ $ = U u)", s)
}

func loadSettings(c *cli.Context) (settings, error) {
	var p Profile
	if path := c.String("profile"); path != "" {
		var err error
		if p, err = LoadProfile(path); err != nil {
			return settings{}, err
		}
	}

	s := settings{alphabet: "base64", padding: true}
	if p.Alphabet != "" {
		s.alphabet = p.Alphabet
	}
	whitespace := p.Whitespace
	checkSymbol := p.CheckSymbol
	if p.Wrap != nil {
		s.wrap = *p.Wrap
	}
	if p.Padding != nil {
		s.padding = *p.Padding
	}
	if p.Lowercase != nil {
		s.lowercase = *p.Lowercase
	}
	if p.ConstantTime != nil {
		s.constantTime = *p.ConstantTime
	}

	if c.IsSet("alphabet") {
		s.alphabet = c.String("alphabet")
	}
	if c.IsSet("whitespace") {
		whitespace = c.String("whitespace")
	}
	if c.IsSet("wrap") {
		w := c.Uint("wrap")
		if w > 255 {
			return settings{}, fmt.Errorf("wrap %d is larger than 255", w)
		}
		s.wrap = uint8(w)
	}
	if c.IsSet("no-pad") {
		s.padding = !c.Bool("no-pad")
	}
	if c.IsSet("lowercase") {
		s.lowercase = c.Bool("lowercase")
	}
	if c.IsSet("constant-time") {
		s.constantTime = c.Bool("constant-time")
	}
	if c.IsSet("check-symbol") {
		checkSymbol = c.String("check-symbol")
	}

	var err error
	if s.leniency, err = parseLeniency(whitespace); err != nil {
		return settings{}, err
	}
	if s.checkSymbol, err = parseCheckSymbol(checkSymbol); err != nil {
		return settings{}, err
	}
	return s, nil
}

// encoding builds the codec.Encoding the settings describe.
func (s settings) encoding() (codec.Encoding, error) {
	switch strings.ToLower(s.alphabet) {
	case "base64", "base64url":
		return base64.New(
			base64.WithURLSafe(strings.EqualFold(s.alphabet, "base64url")),
			base64.WithLeniency(s.leniency),
			base64.WithLineBreakInterval(s.wrap),
			base64.WithPadding(s.padding),
			base64.WithConstantTime(s.constantTime),
		)
	case "base32", "base32hex", "crockford":
		variant := base32.Default
		switch strings.ToLower(s.alphabet) {
		case "base32hex":
			variant = base32.Hex
		case "crockford":
			variant = base32.Crockford
		}
		return base32.New(variant,
			base32.WithLeniency(s.leniency),
			base32.WithLineBreakInterval(s.wrap),
			base32.WithPadding(s.padding),
			base32.WithLowercase(s.lowercase),
			base32.WithConstantTime(s.constantTime),
			base32.WithCheckSymbol(s.checkSymbol),
		)
	case "base16", "hex":
		return base16.New(
			base16.WithLeniency(s.leniency),
			base16.WithLineBreakInterval(s.wrap),
			base16.WithLowercase(s.lowercase),
			base16.WithConstantTime(s.constantTime),
		)
	}
	return nil, fmt.Errorf("unknown alphabet %q", s.alphabet)
}
