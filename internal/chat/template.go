package chat

import (
	"fmt"
	"strings"
)

// Template renders a Conversation into prompt text for a model family.
type Template string

const (
	// TemplateLlama2 is the [INST] / <<SYS>> format used by Llama 2 chat models.
	TemplateLlama2 Template = "llama2"
	// TemplateChatML is the <|im_start|> format used by many instruction tunes.
	TemplateChatML Template = "chatml"
	// TemplatePlain emits "Role: content" lines and an open assistant turn.
	TemplatePlain Template = "plain"
)

// ParseTemplate validates a template name. The empty name selects llama2.
func ParseTemplate(name string) (Template, error) {
	switch t := Template(strings.ToLower(strings.TrimSpace(name))); t {
	case "":
		return TemplateLlama2, nil
	case TemplateLlama2, TemplateChatML, TemplatePlain:
		return t, nil
	default:
		return "", fmt.Errorf("unknown chat template %q (want llama2, chatml or plain)", name)
	}
}

// StopWords returns sequences that end an assistant turn for this template.
func (t Template) StopWords() []string {
	switch t {
	case TemplateChatML:
		return []string{"<|im_end|>"}
	case TemplatePlain:
		return []string{"\nUser:"}
	default:
		return []string{"[INST]"}
	}
}

// Render produces the prompt for conv, ending with an open assistant turn.
func (t Template) Render(conv Conversation) string {
	var b strings.Builder
	switch t {
	case TemplateChatML:
		for _, m := range conv.msgs {
			fmt.Fprintf(&b, "<|im_start|>%s\n%s<|im_end|>\n", m.Role, m.Content)
		}
		b.WriteString("<|im_start|>assistant\n")
	case TemplatePlain:
		for _, m := range conv.msgs {
			fmt.Fprintf(&b, "%s: %s\n", roleTitle(m.Role), m.Content)
		}
		b.WriteString("Assistant:")
	default:
		renderLlama2(&b, conv)
	}
	return b.String()
}

// renderLlama2 folds system messages into the first instruction block and
// closes each user turn with [/INST]; assistant turns follow verbatim and
// end the sequence with </s><s> when another instruction follows. The leading
// BOS is added by the tokenizer.
func renderLlama2(b *strings.Builder, conv Conversation) {
	var sys []string
	for _, m := range conv.msgs {
		if m.Role == RoleSystem {
			sys = append(sys, m.Content)
		}
	}
	first, answered := true, false
	startInst := func() {
		if answered {
			b.WriteString(" </s><s>")
			answered = false
		}
		b.WriteString("[INST] ")
		if first && len(sys) > 0 {
			fmt.Fprintf(b, "<<SYS>>\n%s\n<</SYS>>\n\n", strings.Join(sys, "\n"))
		}
		first = false
	}
	for _, m := range conv.msgs {
		switch m.Role {
		case RoleUser:
			startInst()
			b.WriteString(strings.TrimSpace(m.Content))
			b.WriteString(" [/INST]")
		case RoleAssistant:
			b.WriteString(" ")
			b.WriteString(strings.TrimSpace(m.Content))
			answered = true
		}
	}
	if first {
		// no user turn: keep the system block in an empty instruction
		startInst()
		b.WriteString(" [/INST]")
	}
}

func roleTitle(r Role) string {
	switch r {
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return "User"
	}
}
