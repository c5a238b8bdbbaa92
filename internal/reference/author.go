package reference

import "strings"

// AuthorKind distinguishes persons from organizations.
type AuthorKind string

const (
	Person       AuthorKind = "person"
	Organization AuthorKind = "organization"
)

// Author represents a work's creator: either a person (family/given names,
// or a single display name when the parts cannot be separated) or an
// organization (name plus optional address).
type Author struct {
	Kind AuthorKind `json:"kind"`

	// Person fields.
	Family string `json:"family,omitempty"`
	Given  string `json:"given,omitempty"`

	// Name holds an organization name, or a person's undivided display name.
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// NewPerson builds a person author from family and given names.
func NewPerson(family, given string) Author {
	return Author{Kind: Person, Family: strings.TrimSpace(family), Given: strings.TrimSpace(given)}
}

// NewOrganization builds an organization author.
func NewOrganization(name string) Author {
	return Author{Kind: Organization, Name: strings.TrimSpace(name)}
}

// SortName returns the name an identifier or index should key on: the
// family name for persons, the organization or display name otherwise.
func (a Author) SortName() string {
	if a.Family != "" {
		return a.Family
	}
	return a.Name
}

// DisplayName renders the author for human-readable output.
func (a Author) DisplayName() string {
	if a.Kind == Organization {
		return a.Name
	}
	if a.Family == "" {
		return a.Name
	}
	if a.Given == "" {
		return a.Family
	}
	return a.Given + " " + a.Family
}
