package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/tOgg1/themekit/internal/colors"
	"github.com/tOgg1/themekit/internal/theme"
)

// SyntaxStyle maps the theme's code roles onto chroma token types.
func SyntaxStyle(t theme.Theme) (*chroma.Style, error) {
	fg := func(value string, attrs ...string) string {
		return chromaEntry(value, t.CodeBackground, attrs...)
	}

	background := fg(t.Code)
	if bg, ok := colors.Flatten(t.CodeBackground, t.Background); ok {
		background = strings.TrimSpace(background + " bg:" + bg)
	}

	entries := chroma.StyleEntries{
		chroma.Background:      background,
		chroma.Text:            fg(t.Code),
		chroma.Error:           fg(t.Danger),
		chroma.Comment:         fg(t.CodeComment, "italic"),
		chroma.CommentPreproc:  fg(t.CodeImportant),
		chroma.Keyword:         fg(t.CodeKeyword),
		chroma.KeywordType:     fg(t.CodeClassName),
		chroma.Operator:        fg(t.CodeStatement),
		chroma.Punctuation:     fg(t.CodePunctuation),
		chroma.NameAttribute:   fg(t.CodeAttr),
		chroma.NameClass:       fg(t.CodeClassName),
		chroma.NameEntity:      fg(t.CodeEntity),
		chroma.NameFunction:    fg(t.CodeFunction),
		chroma.NameProperty:    fg(t.CodeProperty),
		chroma.NameTag:         fg(t.CodeTag),
		chroma.NameLabel:       fg(t.CodeSelector),
		chroma.NameVariable:    fg(t.CodePlaceholder),
		chroma.LiteralNumber:   fg(t.CodeNumber),
		chroma.LiteralString:   fg(t.CodeString),
		chroma.GenericInserted: fg(t.CodeInserted),
		chroma.GenericDeleted:  fg(t.TextDiffDeleted),
		chroma.GenericStrong:   fg(t.CodeImportant, "bold"),
		chroma.GenericEmph:     fg(t.Code, "italic"),
	}

	name := "themekit"
	if t.IsDark {
		name += "-dark"
	}
	return chroma.NewStyle(name, entries)
}

// Highlight writes source as 24-bit terminal output styled by t. Unknown
// languages fall back to plain text.
func Highlight(w io.Writer, source, lang string, t theme.Theme) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style, err := SyntaxStyle(t)
	if err != nil {
		return fmt.Errorf("build syntax style: %w", err)
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("tokenise: %w", err)
	}
	return formatters.TTY16m.Format(w, style, iterator)
}

func chromaEntry(value, backdrop string, attrs ...string) string {
	var s strings.Builder
	if hex, ok := colors.Flatten(value, backdrop); ok {
		s.WriteString(hex)
	}
	for _, attr := range attrs {
		if s.Len() > 0 {
			s.WriteString(" ")
		}
		s.WriteString(attr)
	}
	return s.String()
}
