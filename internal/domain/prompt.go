package domain

import (
	"strconv"
	"strings"
)

// SystemPrompt is the fixed instruction sent on the system channel of every
// summarization call.
const SystemPrompt = `You are an expert note-taking assistant for academic and technical material.

Turn the extracted PDF text you receive into clear, well-structured study notes in markdown.

Responsibilities:
1. Repair math notation that was mangled by PDF extraction
2. Organize the content hierarchically under markdown headers
3. Pull out key concepts, definitions and formulas
4. Keep every technical detail accurate while making it easier to read
5. Produce markdown that renders in Obsidian, including LaTeX

Guidelines:
- Write math as LaTeX: $inline$ for inline expressions, $$display$$ for block equations
- Use ## headers for main topics and ### for subtopics
- Use bullet points for key points and numbered lists for ordered steps
- Bold important terms the first time they appear
- Be concise but complete
- Preserve all mathematical content exactly
- Mark text that is unreadable or corrupted as [unclear: ...]

Output format:
- Begin with a ## Key Concepts section
- Continue with the content grouped by topic
- Finish with a ## Formulas section when the page is math-heavy

These notes are used for studying, so clarity and organization come first.`

const (
	// PromptDelimiter separates the instruction from the caller's text.
	PromptDelimiter = "---"

	fallbackContext = "Source: PDF page"
)

// BuildPrompt composes the user prompt for a page of extracted text.
// The text is embedded verbatim between delimiter lines.
func BuildPrompt(text string, pdfName *string, pageNumber *int) string {
	var contextLines []string
	if pdfName != nil && *pdfName != "" {
		contextLines = append(contextLines, "Document: "+*pdfName)
	}
	if pageNumber != nil {
		contextLines = append(contextLines, "Page: "+strconv.Itoa(*pageNumber))
	}

	header := fallbackContext
	if len(contextLines) > 0 {
		header = strings.Join(contextLines, "\n")
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\nPlease create clear, structured notes from this extracted PDF text:\n\n")
	b.WriteString(PromptDelimiter)
	b.WriteString("\n")
	b.WriteString(text)
	b.WriteString("\n")
	b.WriteString(PromptDelimiter)
	b.WriteString("\n\nGenerate comprehensive notes following the format specified in your system prompt.")

	return b.String()
}
