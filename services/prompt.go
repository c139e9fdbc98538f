package services

import (
	"strings"

	"college-chatbot/models"
)

const documentSeparator = "\n---\n"

// PromptAssembler renders documents, caller-held history and the latest question
// into the single instruction text sent to the model.
type PromptAssembler struct {
	// MaxContextChars caps the combined document block in bytes; 0 means no cap.
	MaxContextChars int
}

func NewPromptAssembler(maxContextChars int) *PromptAssembler {
	return &PromptAssembler{MaxContextChars: maxContextChars}
}

// Assemble keeps document order as given. Under a budget, documents are taken in
// order until it runs out: the first one that does not fit is cut to the remaining
// space and the rest are dropped.
func (p *PromptAssembler) Assemble(docs []models.Document, history []models.ConversationTurn, question string) string {
	var sb strings.Builder

	sb.WriteString("\nYou are a helpful and detailed assistant for a college chatbot. Your goal is to provide comprehensive and easy-to-read answers based on the provided documents and the ongoing conversation.\n")
	sb.WriteString("**Instructions for your response:**\n")
	sb.WriteString("1. Answer the user's latest question based ONLY on the provided document content and the context from the previous conversation history. Do not use any external knowledge.\n")
	sb.WriteString("2. If the user's question is a follow-up, use the history to understand the context.\n")
	sb.WriteString("3. Provide a descriptive and detailed answer. Do not give one-word or very short answers.\n")
	sb.WriteString("4. Whenever the answer involves multiple points, steps, or a list of items, format them using bullet points for clarity.\n")
	sb.WriteString("5. If the information is not present in the document content or conversation history, you MUST respond with the exact phrase: \"" + RefusalSentence + "\"\n\n")

	sb.WriteString("**Previous Conversation History:**\n---\n")
	sb.WriteString(FormatHistory(history))
	sb.WriteString("\n---\n\n")

	sb.WriteString("**User's LATEST Question:** \"" + question + "\"\n\n")

	sb.WriteString("**Document Content:**\n---\n")
	sb.WriteString(p.combineDocuments(docs))
	sb.WriteString("\n---\n")

	return sb.String()
}

// FormatHistory renders one "User:" or "Model:" line per turn, in caller order.
func FormatHistory(history []models.ConversationTurn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		prefix := "Model"
		if turn.Sender == models.SenderUser {
			prefix = "User"
		}
		lines = append(lines, prefix+": "+turn.Text)
	}
	return strings.Join(lines, "\n")
}

func formatDocument(doc models.Document) string {
	return "Category: " + doc.Category + "\nContent:\n" + doc.Content
}

func (p *PromptAssembler) combineDocuments(docs []models.Document) string {
	if p.MaxContextChars <= 0 {
		parts := make([]string, len(docs))
		for i, doc := range docs {
			parts[i] = formatDocument(doc)
		}
		return strings.Join(parts, documentSeparator)
	}

	var sb strings.Builder
	remaining := p.MaxContextChars
	for i, doc := range docs {
		if i > 0 {
			if remaining <= len(documentSeparator) {
				break
			}
			sb.WriteString(documentSeparator)
			remaining -= len(documentSeparator)
		}

		block := formatDocument(doc)
		if len(block) <= remaining {
			sb.WriteString(block)
			remaining -= len(block)
			continue
		}

		sb.WriteString(truncateUTF8(block, remaining))
		break
	}
	return sb.String()
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
