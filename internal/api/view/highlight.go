package view

import (
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const highlightStyle = "github"

var codeFormatter = html.New(html.WithClasses(false), html.TabWidth(4))

// Highlight renders a code snippet as syntax highlighted HTML. Unknown
// languages are guessed from the code; if that fails the snippet is escaped
// as plain text.
func Highlight(code, language string) template.HTML {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain(code)
	}

	var buf strings.Builder
	if err := codeFormatter.Format(&buf, style, iterator); err != nil {
		return plain(code)
	}
	return template.HTML(buf.String())
}

func plain(code string) template.HTML {
	return template.HTML("<pre><code>" + template.HTMLEscapeString(code) + "</code></pre>")
}
