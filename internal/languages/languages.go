// Package languages holds the fixed table of recognition languages offered to
// the user and their Tesseract engine codes.
//
// The table is static configuration. Its order is the order shown to the user,
// and the first entry is the selection a new session starts with.
package languages

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLanguage is returned when a name is not in the table.
var ErrUnknownLanguage = errors.New("unknown language")

// Language pairs a user-visible name with its three-letter Tesseract code.
type Language struct {
	// Name is the human-readable name (e.g., "English").
	Name string `json:"name"`

	// Code is the Tesseract traineddata code (e.g., "eng").
	Code string `json:"code"`
}

var table = []Language{
	{Name: "Czech", Code: "ces"},
	{Name: "English", Code: "eng"},
	{Name: "Russian", Code: "rus"},
}

// All returns a copy of the table in display order.
func All() []Language {
	out := make([]Language, len(table))
	copy(out, table)
	return out
}

// Names returns the user-visible names in display order.
func Names() []string {
	names := make([]string, len(table))
	for i, l := range table {
		names[i] = l.Name
	}
	return names
}

// Default returns the first table entry.
func Default() Language {
	return table[0]
}

// Lookup resolves a user-visible name. An exact match wins; otherwise the
// comparison is case-insensitive so "english" typed at a prompt still works.
func Lookup(name string) (Language, error) {
	for _, l := range table {
		if l.Name == name {
			return l, nil
		}
	}
	for _, l := range table {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLanguage, name, strings.Join(Names(), ", "))
}

// Code maps a user-visible name straight to its engine code.
func Code(name string) (string, error) {
	l, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return l.Code, nil
}
