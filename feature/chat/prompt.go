package chat

import (
	"strings"
)

// HistoryMessage is one turn of the patient conversation as sent by the
// frontend. Role is "user"/"patient" for patient turns, anything else is
// treated as the psychologist.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const basePrompt = "Eres un asistente de IA para psicólogos. Tu tarea es analizar el historial de conversación con un paciente y sugerir 3 opciones de respuesta posibles para el psicólogo. Las opciones deben ser:\n1. Empática y validante.\n2. Indagatoria (haciendo una pregunta relevante).\n3. Orientada a la acción o psicoeducativa.\n\nDevuelve SOLAMENTE las 3 opciones numeradas (1., 2., 3.) sin texto introductorio ni explicaciones adicionales."

// buildPrompt assembles the suggestion prompt from the chat history and the
// therapist's configured style.
func buildPrompt(history []HistoryMessage, style, tone, instructions string) string {
	var sb strings.Builder
	sb.WriteString(basePrompt)

	if style != "" {
		sb.WriteString("\n\nEstilo terapéutico: " + style)
	}
	if tone != "" {
		sb.WriteString("\nTono de comunicación: " + tone)
	}
	if instructions != "" {
		sb.WriteString("\nInstrucciones adicionales: " + instructions)
	}

	sb.WriteString("\n\nHistorial de Chat:\n")
	for _, msg := range history {
		role := "Psicólogo"
		if msg.Role == "user" || msg.Role == "patient" {
			role = "Paciente"
		}
		sb.WriteString(role + ": " + msg.Content + "\n")
	}
	sb.WriteString("\nOpciones de respuesta:")
	return sb.String()
}

// parseOptions extracts up to three numbered (or dashed) suggestion lines
// from the model output. Unparseable but non-empty output is returned whole
// as a single option.
func parseOptions(content string) []string {
	var options []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "1.") || strings.HasPrefix(line, "2.") || strings.HasPrefix(line, "3."):
			options = append(options, strings.TrimSpace(line[2:]))
		case strings.HasPrefix(line, "-"):
			options = append(options, strings.TrimSpace(line[1:]))
		}
	}

	if len(options) == 0 && content != "" {
		options = []string{content}
	}
	if len(options) > 3 {
		options = options[:3]
	}
	return options
}
