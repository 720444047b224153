package report

import (
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/KaramelBytes/survey-snapshot/internal/utils"
)

// HTML renders the Markdown summary as a standalone page.
func (s *Summary) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Survey summary",
	})
	return markdown.ToHTML([]byte(s.Markdown()), p, r)
}

// WriteHTML writes the HTML rendering next to the Markdown report.
func (s *Summary) WriteHTML(path string) error {
	if err := utils.SafeWriteFile(path, s.HTML()); err != nil {
		return fmt.Errorf("write html summary: %w", err)
	}
	return nil
}
