package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/oledmon/internal/errors"
)

// Target is a monitored endpoint. Address is its identity; Label is shown next to it.
type Target struct {
	Address string `yaml:"address"`
	Label   string `yaml:"label"`
}

// String returns the "address label" form used on the display.
func (t Target) String() string {
	return t.Address + " " + t.Label
}

// ParseTarget parses an "address,label" entry. The entry is split on the first
// comma and both trimmed parts must be non-empty.
func ParseTarget(entry string) (Target, error) {
	address, label, ok := strings.Cut(entry, ",")
	if !ok {
		return Target{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid host entry '%s'", entry),
			"Expected format: 192.168.55.55,friendlyname")
	}

	address = strings.TrimSpace(address)
	label = strings.TrimSpace(label)
	if address == "" || label == "" {
		return Target{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid host entry '%s'", entry),
			"Both address and friendly name are required.")
	}

	return Target{Address: address, Label: label}, nil
}

// ParseTargets parses every entry, failing on the first malformed one.
// An empty list is an error, and so is an address listed twice: liveness
// state is keyed by address, so a duplicate would be probed twice per round.
func ParseTargets(entries []string) ([]Target, error) {
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrConfig,
			"No hosts provided",
			"Pass one or more address,label arguments or add them under 'hosts' in oledmon.yaml.")
	}

	targets := make([]Target, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		t, err := ParseTarget(entry)
		if err != nil {
			return nil, err
		}
		if label, dup := seen[t.Address]; dup {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Host %s is listed twice (%s, %s)", t.Address, label, t.Label),
				"List each address once.")
		}
		seen[t.Address] = t.Label
		targets = append(targets, t)
	}
	return targets, nil
}
