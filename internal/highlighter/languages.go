package highlighter

import (
	"embed"
	"sync"

	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	tssrc "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/bethropolis/termreel/internal/highlighter/lang"
	"github.com/bethropolis/termreel/internal/logger"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

var registerOnce sync.Once

// RegisterLanguages registers the built-in grammars. It is safe to call more than once.
func RegisterLanguages() {
	registerOnce.Do(func() {
		if lang.QueryFS == nil {
			lang.QueryFS = embeddedQueries
		}

		lang.Register(&lang.Language{
			Name:           "TypeScript",
			TreeSitterLang: tssrc.GetLanguage(),
			Extensions:     []string{".ts", ".mts", ".cts"},
			QueryPath:      "typescript",
		})
		lang.Register(&lang.Language{
			Name:           "JavaScript",
			TreeSitterLang: jssrc.GetLanguage(),
			Extensions:     []string{".js", ".mjs", ".cjs"},
			QueryPath:      "javascript",
		})
		lang.Register(&lang.Language{
			Name:           "Go",
			TreeSitterLang: gosrc.GetLanguage(),
			Extensions:     []string{".go"},
			QueryPath:      "go",
		})

		logger.DebugTagf("highlight", "Registration complete. Registered %d languages.", len(lang.GetAll()))
	})
}
