package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptIncludesTherapistConfig(t *testing.T) {
	history := []HistoryMessage{
		{Role: "patient", Content: "Me siento ansioso"},
		{Role: "user", Content: "También triste"},
		{Role: "assistant", Content: "¿Cuándo empezó?"},
	}
	prompt := buildPrompt(history, "sistémico", "directo", "evita tecnicismos")

	assert.True(t, strings.HasPrefix(prompt, basePrompt))
	assert.Contains(t, prompt, "Estilo terapéutico: sistémico")
	assert.Contains(t, prompt, "Tono de comunicación: directo")
	assert.Contains(t, prompt, "Instrucciones adicionales: evita tecnicismos")
	assert.Contains(t, prompt, "Paciente: Me siento ansioso\n")
	assert.Contains(t, prompt, "Paciente: También triste\n")
	assert.Contains(t, prompt, "Psicólogo: ¿Cuándo empezó?\n")
	assert.True(t, strings.HasSuffix(prompt, "\nOpciones de respuesta:"))
}

func TestBuildPromptSkipsEmptyConfig(t *testing.T) {
	prompt := buildPrompt(nil, "", "", "")

	assert.NotContains(t, prompt, "Estilo terapéutico")
	assert.NotContains(t, prompt, "Tono de comunicación")
	assert.NotContains(t, prompt, "Instrucciones adicionales")
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "numbered",
			content: "1. Primera opción\n2. Segunda opción\n3. Tercera opción",
			want:    []string{"Primera opción", "Segunda opción", "Tercera opción"},
		},
		{
			name:    "dashed",
			content: "- una\n- dos",
			want:    []string{"una", "dos"},
		},
		{
			name:    "preamble ignored",
			content: "Aquí tienes las opciones:\n1. sí\n2. no",
			want:    []string{"sí", "no"},
		},
		{
			name:    "fallback to whole content",
			content: "Respuesta sin formato",
			want:    []string{"Respuesta sin formato"},
		},
		{
			name:    "capped at three",
			content: "1. a\n2. b\n3. c\n- d",
			want:    []string{"a", "b", "c"},
		},
		{
			name:    "empty",
			content: "",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOptions(tt.content))
		})
	}
}
