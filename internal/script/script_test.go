package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOfID(t *testing.T, s *Script, id int) int {
	t.Helper()
	for i, l := range s.Lines {
		if l.ID == id {
			return i
		}
	}
	t.Fatalf("id %d not in script", id)
	return -1
}

func TestDefaultScriptIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, "npm init -y", s.Lines[0].Text)
	assert.Equal(t, 127, s.Lines[s.Len()-1].ID)

	// Default hands out copies.
	s.Lines[0].Text = "changed"
	assert.Equal(t, "npm init -y", Default().Lines[0].Text)
}

func TestVimCommandDetection(t *testing.T) {
	assert.True(t, Line{Text: "vim src/a.ts", Kind: KindCommand}.IsVimCommand())
	assert.False(t, Line{Text: "vim src/a.ts", Kind: KindInfo}.IsVimCommand())
	assert.False(t, Line{Text: "vimtutor", Kind: KindCommand}.IsVimCommand())
	assert.Equal(t, "src/a.ts", Line{Text: "vim  src/a.ts ", Kind: KindCommand}.VimFilename())
}

func TestCollectVimBlockDefault(t *testing.T) {
	s := Default()
	start := indexOfID(t, s, 57)
	require.True(t, s.Lines[start].IsVimCommand())

	block := CollectVimBlock(s.Lines, start+1)
	require.NotNil(t, block.Sentinel)
	assert.Equal(t, 80, block.Sentinel.ID)
	assert.Equal(t, indexOfID(t, s, 81), block.Next)
	assert.Equal(t, 59, block.Entries[0].ID)

	var normal []string
	for _, e := range block.Entries {
		if kind, payload := e.Entry(); kind == EntryNormalKeys {
			normal = append(normal, payload)
		}
	}
	assert.Equal(t, []string{"o"}, normal)

	second := CollectVimBlock(s.Lines, indexOfID(t, s, 82)+1)
	kind, payload := second.Entries[0].Entry()
	assert.Equal(t, EntryEx, kind)
	assert.Equal(t, "set number", payload)
}

func TestCollectVimBlockWithoutSentinel(t *testing.T) {
	lines := []Line{
		{ID: 1, Text: "vim a.txt", Kind: KindCommand},
		{ID: 2, Text: "one", Kind: KindVim},
		{ID: 3, Text: "two", Kind: KindVim},
		{ID: 4, Text: "done", Kind: KindInfo},
	}
	block := CollectVimBlock(lines, 1)
	assert.Nil(t, block.Sentinel)
	assert.Len(t, block.Entries, 2)
	assert.Equal(t, 3, block.Next)

	block = CollectVimBlock(lines[:3], 1)
	assert.Equal(t, 3, block.Next)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, (&Script{}).Validate(), ErrEmptyScript)
	assert.Error(t, (&Script{Lines: []Line{{ID: 1, Kind: KindLog, DelayMs: -1}}}).Validate())
	assert.Error(t, (&Script{Lines: []Line{{ID: 1, Kind: Kind(42)}}}).Validate())
	assert.NoError(t, (&Script{Lines: []Line{{ID: 1}, {ID: 1}}}).Validate())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Default().Encode(&buf, format))
			got, err := Decode(buf.Bytes(), format)
			require.NoError(t, err)
			assert.Equal(t, Default(), got)
		})
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "demo.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
lines:
  - id: 1
    text: echo hi
    kind: command
  - id: 2
    text: hi
    kind: Success
    delay_ms: 20
`), 0o644))

	s, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "demo", s.Name)
	assert.Equal(t, KindSuccess, s.Lines[1].Kind)
	assert.Equal(t, int64(20), s.Lines[1].Delay().Milliseconds())

	badKind := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(badKind, []byte("[[lines]]\nid = 1\nkind = \"shout\"\n"), 0o644))
	_, err = Load(badKind)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "reel.json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
