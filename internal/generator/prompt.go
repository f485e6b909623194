package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/template"
)

// maxContextPassages bounds how much retrieved text goes into the prompt.
const maxContextPassages = 8

// buildPrompt assembles the synthesis prompt. Table instructions are strict:
// the output must contain exactly the declared tables with matching headers,
// populated only with values present in the source passages.
func buildPrompt(info template.SectionInfo, values map[string]string, results []Result) string {
	var b strings.Builder

	b.WriteString("You are filling one section of a structured document from source material.\n\n")
	fmt.Fprintf(&b, "Section: %s\n\n", info.Name)

	if len(info.Tables) > 0 {
		fmt.Fprintf(&b, "The section must contain exactly %d markdown table(s), no more, no fewer.\n", len(info.Tables))
		for i, t := range info.Tables {
			fmt.Fprintf(&b, "Table %d headers, in this order: | %s |\n", i+1, strings.Join(t.Headers, " | "))
		}
		b.WriteString("Populate table cells only with exact values found in the source passages. ")
		b.WriteString("If a value is not present, leave the cell empty. Never invent numbers.\n\n")
	} else {
		b.WriteString("Do not add any markdown tables to this section.\n\n")
	}

	if len(values) > 0 {
		b.WriteString("Known field values, use them verbatim:\n")
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: %s\n", name, values[name])
		}
		b.WriteString("\n")
	}

	b.WriteString("Template for the section:\n")
	b.WriteString(info.Content)
	b.WriteString("\n\nSource passages:\n")
	n := len(results)
	if n > maxContextPassages {
		n = maxContextPassages
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "\n[%d] %s\n", i+1, results[i].Text)
	}

	b.WriteString("\nWrite the section in markdown. State only what the source passages support.")
	return b.String()
}
