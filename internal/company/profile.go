// Package company holds the company profile that drives the public pages.
package company

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed profile.yaml
var defaultProfile []byte

type Contact struct {
	Email   string `yaml:"email" json:"email"`
	Phone   string `yaml:"phone" json:"phone"`
	Address string `yaml:"address" json:"address"`
	City    string `yaml:"city" json:"city"`
	State   string `yaml:"state" json:"state"`
	Zip     string `yaml:"zip" json:"zip"`
	Country string `yaml:"country" json:"country"`
}

type Fleet struct {
	TotalTrucks   int `yaml:"totalTrucks" json:"totalTrucks"`
	DisplayTrucks int `yaml:"displayTrucks" json:"displayTrucks"`
}

type Service struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	NAICSCode   string `yaml:"naicsCode" json:"naicsCode,omitempty"`
}

type Credentials struct {
	DUNS  string `yaml:"duns" json:"duns"`
	CAGE  string `yaml:"cage" json:"cage"`
	USDOT string `yaml:"usdot" json:"usdot"`
}

type Social struct {
	Facebook string `yaml:"facebook" json:"facebook"`
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
	Twitter  string `yaml:"twitter" json:"twitter"`
}

type Profile struct {
	Name        string      `yaml:"name" json:"name"`
	Tagline     string      `yaml:"tagline" json:"tagline"`
	Description string      `yaml:"description" json:"description"`
	Contact     Contact     `yaml:"contact" json:"contact"`
	Fleet       Fleet       `yaml:"fleet" json:"fleet"`
	Services    []Service   `yaml:"services" json:"services"`
	Clients     []string    `yaml:"clients" json:"clients"`
	Credentials Credentials `yaml:"credentials" json:"credentials"`
	Social      Social      `yaml:"social" json:"social"`
}

// Load reads the profile at path, or the built-in profile when path is empty.
func Load(path string) (*Profile, error) {
	data := defaultProfile
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading company profile: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes a YAML profile. Unknown keys are rejected so typos surface.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.UnmarshalWithOptions(data, &p, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("parsing company profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("company profile: name is required")
	}
	if p.Fleet.DisplayTrucks > p.Fleet.TotalTrucks {
		return fmt.Errorf("company profile: displayTrucks (%d) exceeds totalTrucks (%d)", p.Fleet.DisplayTrucks, p.Fleet.TotalTrucks)
	}
	seen := make(map[string]struct{}, len(p.Services))
	for _, s := range p.Services {
		if s.ID == "" {
			return fmt.Errorf("company profile: service %q has no id", s.Title)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("company profile: duplicate service id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// MailingAddress is the single-line postal address.
func (p *Profile) MailingAddress() string {
	c := p.Contact
	return fmt.Sprintf("%s, %s, %s %s", c.Address, c.City, c.State, c.Zip)
}
