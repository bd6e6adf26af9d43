package summarizer

import (
	"strings"

	"github.com/gomutex/godocx"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

// WriteDocx stores a summary as a docx document: a bold title followed by
// one paragraph per non-empty line of the summary.
func WriteDocx(title, summary, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	doc.AddParagraph("").AddText(title).Font(fontName).Size(titleSize).Bold(true)

	for _, line := range summaryParagraphs(summary) {
		doc.AddParagraph("").AddText(line).Font(fontName).Size(fontSize)
	}

	return doc.SaveTo(outputPath)
}

func summaryParagraphs(summary string) []string {
	var out []string
	for _, line := range strings.Split(summary, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
