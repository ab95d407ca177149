package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a theme selection held by the preference store.
type Kind string

const (
	KindLight      Kind = "light"
	KindDark       Kind = "dark"
	KindSystem     Kind = "system"
	KindRosePine   Kind = "rosepine"
	KindPitchBlack Kind = "pitch-black"
)

var (
	// ErrUnknownKind is returned by ParseKind for unrecognised names.
	ErrUnknownKind = errors.New("unknown theme kind")

	// ErrUnbuildableKind is returned by Build for kinds that must be resolved
	// first, such as system.
	ErrUnbuildableKind = errors.New("theme kind cannot be built directly")
)

var kindAliases = map[string]Kind{
	"light":       KindLight,
	"dark":        KindDark,
	"system":      KindSystem,
	"rosepine":    KindRosePine,
	"rose-pine":   KindRosePine,
	"pitch-black": KindPitchBlack,
	"pitchblack":  KindPitchBlack,
}

// Kinds lists every selectable kind.
func Kinds() []Kind {
	return []Kind{KindLight, KindDark, KindSystem, KindRosePine, KindPitchBlack}
}

// ParseKind accepts the canonical names plus a few spelling aliases.
func ParseKind(s string) (Kind, error) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return kind, nil
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindLight, KindDark, KindSystem, KindRosePine, KindPitchBlack:
		return true
	}
	return false
}

// Buildable reports whether Build accepts k without resolution.
func (k Kind) Buildable() bool {
	return k.Valid() && k != KindSystem
}

func (k Kind) String() string { return string(k) }
