package player

import (
	"strings"
	"time"

	"github.com/bethropolis/termreel/internal/script"
	"github.com/bethropolis/termreel/internal/vim"
)

// Stroke is one synthetic keystroke and the pause that precedes it.
type Stroke struct {
	Key   vim.Key
	Delay time.Duration
}

// insertKeys are normal-mode keys that leave the editor in insert mode.
const insertKeys = "iaoOAI"

type strokeBuilder struct {
	cadence func(rune) time.Duration
	strokes []Stroke
	pending time.Duration

	insert      bool
	typed       bool // some text line has been typed
	needNewline bool
}

func (b *strokeBuilder) key(k vim.Key) {
	b.strokes = append(b.strokes, Stroke{Key: k, Delay: b.pending})
	b.pending = b.cadence(k.Rune)
}

func (b *strokeBuilder) keys(ks ...vim.Key) {
	for _, k := range ks {
		b.key(k)
	}
}

func (b *strokeBuilder) leaveInsert() {
	if b.insert {
		b.key(vim.Escape)
		b.insert = false
	}
}

func (b *strokeBuilder) text(line string) {
	if !b.insert {
		if b.typed {
			b.key(vim.Rune('A'))
		} else {
			b.key(vim.Rune('i'))
		}
		b.insert = true
	}
	if b.needNewline {
		b.key(vim.Enter)
	}
	b.keys(vim.Runes(line)...)
	b.typed = true
	b.needNewline = true
}

func (b *strokeBuilder) normal(seq string) {
	b.leaveInsert()
	b.keys(vim.Runes(seq)...)
	if seq == "" {
		return
	}
	// text typed after an explicit insert key goes where that key put the
	// cursor
	if strings.Contains(insertKeys, seq[len(seq)-1:]) {
		b.insert = true
		b.needNewline = false
	}
}

func (b *strokeBuilder) ex(cmd string) {
	b.leaveInsert()
	b.keys(vim.Command(cmd)...)
}

// Keystrokes turns a vim block into the keys a person would press to type it.
// insert says whether the editor starts in insert mode. Each entry's delay
// precedes its first key; later keys wait cadence of the previous rune.
func Keystrokes(block script.VimBlock, insert bool, cadence func(rune) time.Duration) []Stroke {
	if cadence == nil {
		cadence = func(rune) time.Duration { return 0 }
	}
	b := &strokeBuilder{cadence: cadence, insert: insert}
	for _, e := range block.Entries {
		b.pending = e.Delay()
		kind, payload := e.Entry()
		switch kind {
		case script.EntryText:
			b.text(payload)
		case script.EntryNormalKeys:
			b.normal(payload)
		case script.EntryEx:
			b.ex(payload)
		}
	}

	quit := "wq"
	if block.Sentinel != nil {
		b.pending = block.Sentinel.Delay()
		quit = strings.TrimPrefix(strings.TrimSpace(block.Sentinel.Text), ":")
	}
	b.leaveInsert()
	b.keys(vim.Command(quit)...)
	return b.strokes
}
