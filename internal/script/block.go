package script

import "strings"

// EntryKind classifies a vim-kind line inside a block.
type EntryKind int

const (
	EntryText       EntryKind = iota // a buffer line to type
	EntryNormalKeys                  // ":vim-cmd:<keys>", normal-mode keystrokes
	EntryEx                          // ":<command>", an ex command
)

// Entry returns the classification of a vim-kind line and its payload: the
// text to type, the normal-mode keys, or the ex command without its colon.
func (l Line) Entry() (EntryKind, string) {
	switch {
	case strings.HasPrefix(l.Text, NormalKeysPrefix):
		return EntryNormalKeys, strings.TrimPrefix(l.Text, NormalKeysPrefix)
	case strings.HasPrefix(l.Text, ":"):
		return EntryEx, strings.TrimPrefix(l.Text, ":")
	default:
		return EntryText, l.Text
	}
}

// VimBlock is the run of vim-kind lines following a vim command.
type VimBlock struct {
	Entries  []Line // everything before the sentinel
	Sentinel *Line  // nil when the block ended without :wq or :x
	Next     int    // index of the first line after the block
}

// CollectVimBlock gathers consecutive vim-kind lines starting at start, up to
// and including the first sentinel. A non-vim line or the end of the reel also
// ends the block.
func CollectVimBlock(lines []Line, start int) VimBlock {
	var block VimBlock
	i := start
	for ; i < len(lines); i++ {
		l := lines[i]
		if l.Kind != KindVim {
			break
		}
		if l.IsSentinel() {
			sentinel := l
			block.Sentinel = &sentinel
			i++
			break
		}
		block.Entries = append(block.Entries, l)
	}
	block.Next = i
	return block
}
