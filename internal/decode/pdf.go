package decode

import (
	"fmt"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// decodePDF extracts text per page with page markers so the chunker can split
// on page boundaries first.
func decodePDF(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(fmt.Sprintf("--- Page %d ---\n", i))
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// decodePdftotext shells out to poppler's pdftotext as a fallback for PDFs
// the Go library cannot read. Form feeds become the same page markers the
// primary strategy emits.
func decodePdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	pages := strings.Split(string(out), "\f")
	var buf strings.Builder
	for i, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		buf.WriteString(fmt.Sprintf("--- Page %d ---\n", i+1))
		buf.WriteString(page)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}
