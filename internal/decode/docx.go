package decode

import (
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// decodeDOCX renders a DOCX file as markdown-like text: heading styles become
// hash headers, tables become pipe tables.
func decodeDOCX(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat docx: %w", err)
	}
	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var buf strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			text := paragraphText(v)
			if text == "" {
				continue
			}
			if level := headingLevel(v); level > 0 {
				buf.WriteString(strings.Repeat("#", level))
				buf.WriteString(" ")
			}
			buf.WriteString(text)
			buf.WriteString("\n\n")
		case *docx.Table:
			writeTableMarkdown(&buf, v)
		}
	}
	return buf.String(), nil
}

func headingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	for level := 1; level <= 6; level++ {
		if style == fmt.Sprintf("heading%d", level) {
			return level
		}
	}
	return 0
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func writeTableMarkdown(buf *strings.Builder, table *docx.Table) {
	for rowIdx, row := range table.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var cellText strings.Builder
			for _, para := range cell.Paragraphs {
				if cellText.Len() > 0 {
					cellText.WriteString(" ")
				}
				cellText.WriteString(paragraphText(para))
			}
			cells = append(cells, strings.TrimSpace(cellText.String()))
		}
		if len(cells) == 0 {
			continue
		}
		buf.WriteString("| ")
		buf.WriteString(strings.Join(cells, " | "))
		buf.WriteString(" |\n")
		if rowIdx == 0 {
			buf.WriteString("|")
			buf.WriteString(strings.Repeat(" --- |", len(cells)))
			buf.WriteString("\n")
		}
	}
	buf.WriteString("\n")
}
