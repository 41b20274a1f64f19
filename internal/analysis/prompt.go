package analysis

import "fmt"

// systemPrompt frames the task as a neutral review. It forbids speculation
// beyond the given input and unsolicited rewrite or tooling suggestions.
const systemPrompt = `You are a neutral software architecture reviewer.
Assess only what the provided input states or directly implies. Do not invent
modules, technologies, or problems the input does not mention. Do not suggest
rewrites, framework migrations, or specific tools unless the input asks for
them. Keep every statement grounded in the input. Respond only with JSON
matching the required schema.`

// buildUserMessage wraps the raw content in explicit delimiters so the model
// cannot confuse user content with instructions.
func buildUserMessage(kind Kind, content string) string {
	return fmt.Sprintf("The input below is a %s of a software project.\n\nBEGIN INPUT\n%s\nEND INPUT", describeKind(kind), content)
}

func describeKind(kind Kind) string {
	if kind == KindTree {
		return "directory tree"
	}
	return "free-text architecture description"
}
