package services

import "strings"

const DefaultVideoWordBudget = 50

// OptimizeContent shrinks story content to at most maxWords before it is
// sent to the speech and video providers, which bill by length. Whole
// sentences are accumulated greedily; a sentence that exactly exhausts the
// budget is kept, the first one that would exceed it ends the scan. When
// not even the first sentence fits, the text is hard-truncated to the
// first maxWords words with an ellipsis appended, which is the only path
// allowed to overrun the budget.
func OptimizeContent(content string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultVideoWordBudget
	}

	words := strings.Fields(content)
	if len(words) <= maxWords {
		return content
	}

	var out strings.Builder
	count := 0
	for _, sentence := range splitSentences(content) {
		n := len(strings.Fields(sentence))
		if count+n > maxWords {
			break
		}
		out.WriteString(sentence)
		out.WriteString(". ")
		count += n
	}

	optimized := strings.TrimSpace(out.String())
	if optimized == "" {
		return strings.Join(words[:maxWords], " ") + "..."
	}
	return optimized
}

func splitSentences(content string) []string {
	parts := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}
