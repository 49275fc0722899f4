// Package script defines reels: ordered, immutable lists of terminal lines that
// the player types, prints or feeds to the embedded editor.
package script

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bethropolis/termreel/internal/logger"
)

// VimCommandPrefix starts a command line that opens the embedded editor.
const VimCommandPrefix = "vim "

// NormalKeysPrefix marks a vim-kind line holding normal-mode keystrokes.
const NormalKeysPrefix = ":vim-cmd:"

var (
	ErrEmptyScript   = errors.New("script has no lines")
	ErrUnknownFormat = errors.New("unknown script format")
)

// Line is one pre-authored entry of the reel.
type Line struct {
	ID      int    `toml:"id" yaml:"id"`
	Text    string `toml:"text" yaml:"text"`
	Kind    Kind   `toml:"kind" yaml:"kind"`
	DelayMs int    `toml:"delay_ms" yaml:"delay_ms"`
}

// Delay is the pause before the line is played.
func (l Line) Delay() time.Duration {
	return time.Duration(l.DelayMs) * time.Millisecond
}

// IsVimCommand reports whether the line opens the embedded editor.
func (l Line) IsVimCommand() bool {
	return l.Kind == KindCommand && strings.HasPrefix(l.Text, VimCommandPrefix)
}

// VimFilename returns the file argument of a vim command line.
func (l Line) VimFilename() string {
	return strings.TrimSpace(strings.TrimPrefix(l.Text, VimCommandPrefix))
}

// IsSentinel reports whether the line ends a vim block.
func (l Line) IsSentinel() bool {
	if l.Kind != KindVim {
		return false
	}
	switch strings.TrimSpace(l.Text) {
	case ":wq", ":x", ":wq!", ":x!":
		return true
	}
	return false
}

// Script is an ordered reel.
type Script struct {
	Name  string `toml:"name" yaml:"name"`
	Lines []Line `toml:"lines" yaml:"lines"`
}

// Len returns the number of lines.
func (s *Script) Len() int {
	return len(s.Lines)
}

// Validate checks the reel can be played. Duplicate IDs are only logged.
func (s *Script) Validate() error {
	if len(s.Lines) == 0 {
		return ErrEmptyScript
	}
	seen := make(map[int]int, len(s.Lines))
	for i, l := range s.Lines {
		if l.Kind < KindCommand || l.Kind > KindVim {
			return fmt.Errorf("line %d: unknown kind %d", i, int(l.Kind))
		}
		if l.DelayMs < 0 {
			return fmt.Errorf("line %d (id %d): negative delay %dms", i, l.ID, l.DelayMs)
		}
		if prev, dup := seen[l.ID]; dup {
			logger.Warnf("Script %q: id %d used by lines %d and %d", s.Name, l.ID, prev, i)
		}
		seen[l.ID] = i
	}
	return nil
}
