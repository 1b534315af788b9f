// Package lang knows, per supported language, how to turn a source file in a
// workspace into something runnable and how to invoke it.
package lang

import (
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Kind is the closed set of strategy variants.
type Kind int

const (
	// Native languages are translated into an executable that runs directly.
	Native Kind = iota + 1
	// Bytecode languages are translated into artefacts run by a VM.
	Bytecode
	// Interpreted languages have no compile step.
	Interpreted
)

func (k Kind) String() string {
	switch k {
	case Native:
		return "compiled-native"
	case Bytecode:
		return "compiled-bytecode"
	case Interpreted:
		return "interpreted"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ID identifies a supported language.
type ID string

const (
	Cpp17   ID = "cpp17"
	C11     ID = "c11"
	Java    ID = "java"
	Python3 ID = "python3"
)

type Language struct {
	ID      ID
	Name    string
	Kind    Kind
	aliases mapset.Set[string]
}

// Aliases lists every accepted spelling, sorted.
func (l Language) Aliases() []string {
	return sortedSlice(l.aliases)
}

var languages = []Language{
	{
		ID:      Cpp17,
		Name:    "C++17",
		Kind:    Native,
		aliases: mapset.NewSet("cpp17", "cpp", "c++", "c++17", "cxx", "cc", "g++"),
	},
	{
		ID:      C11,
		Name:    "C11",
		Kind:    Native,
		aliases: mapset.NewSet("c11", "c", "gcc"),
	},
	{
		ID:      Java,
		Name:    "Java",
		Kind:    Bytecode,
		aliases: mapset.NewSet("java", "jdk"),
	},
	{
		ID:      Python3,
		Name:    "Python 3",
		Kind:    Interpreted,
		aliases: mapset.NewSet("python3", "python", "py", "py3"),
	},
}

// UnsupportedError is returned for a language name outside the supported
// set.
type UnsupportedError struct {
	Name string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported language %q", e.Name)
}

// Parse resolves a user-supplied language name or alias.
func Parse(raw string) (Language, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, l := range languages {
		if l.aliases.Contains(name) {
			return l, nil
		}
	}
	return Language{}, &UnsupportedError{Name: raw}
}

// All returns the supported languages in a stable order.
func All() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

func sortedSlice(s mapset.Set[string]) []string {
	out := s.ToSlice()
	slices.Sort(out)
	return out
}
