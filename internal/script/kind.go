package script

import (
	"fmt"
	"strings"
)

// Kind tags a script line with how it is rendered and played.
type Kind int

const (
	KindCommand Kind = iota
	KindInfo
	KindSuccess
	KindError
	KindLog
	KindWarning
	KindSystem
	KindVim
)

var kindNames = [...]string{
	KindCommand: "command",
	KindInfo:    "info",
	KindSuccess: "success",
	KindError:   "error",
	KindLog:     "log",
	KindWarning: "warning",
	KindSystem:  "system",
	KindVim:     "vim",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown line kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown line kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
