package knowledge

import (
	"strings"

	"github.com/explainwell/concept-evaluator/internal/domain"
)

// SplitSections breaks a plaintext document body into titled sections on
// "== Heading ==" marker lines. Text before the first marker becomes the
// Introduction section.
func SplitSections(body string) []domain.Section {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	var sections []domain.Section
	title := "Introduction"
	var content []string
	flush := func() {
		text := strings.TrimSpace(strings.Join(content, "\n"))
		if text != "" {
			sections = append(sections, domain.Section{Title: title, Content: text})
		}
		content = nil
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "==") && strings.HasSuffix(line, "==") && len(line) > 4 {
			flush()
			title = strings.TrimSpace(strings.Trim(line, "= "))
			continue
		}
		if line != "" {
			content = append(content, line)
		}
	}
	flush()
	return sections
}
