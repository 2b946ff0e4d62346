// Package htmltomarkdown renders extracted main content as markdown, the
// form page content takes inside generation prompts.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/schemascan"
)

var _ schemascan.Converter = (*Converter)(nil)

// blankRuns matches three or more consecutive newlines, optionally with
// trailing spaces between them.
var blankRuns = regexp.MustCompile(`\n[ \t]*(\n[ \t]*){2,}`)

// Converter turns content HTML into compact markdown. Runs of blank lines
// are collapsed so prompt excerpts carry text, not whitespace.
type Converter struct {
	md *converter.Converter
}

// NewConverter returns a Converter with CommonMark and table support.
func NewConverter() *Converter {
	return &Converter{
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert renders html as markdown. Blank input is EINVALID.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", schemascan.Errorf(schemascan.EINVALID, "empty HTML input")
	}

	out, err := c.md.ConvertString(html)
	if err != nil {
		return "", err
	}
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out), nil
}
