package chat_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/chat"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testAuthCfg = coreauth.Config{SecretKey: "test-secret", TokenTTLHours: 1}

// fakeLLM returns a canned completion and captures the prompt it was given.
type fakeLLM struct {
	prompt string
	reply  string
	err    error
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func setup(t *testing.T, client *fakeLLM) (*fiber.App, string) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	app := fiber.New()
	feature := chat.NewFeature(db, testAuthCfg, client, zap.NewNop())
	require.NoError(t, feature.Load(app))

	therapist := models.Psychologist{
		Name: "Dra. Ana", Email: "ana@x.com", Role: models.RolePsychologist,
		AIStyle: "cognitivo-conductual", AITone: "cálido", AIInstructions: "respuestas breves",
	}
	require.NoError(t, db.Create(&therapist).Error)
	token, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": therapist.ID, "role": therapist.Role})
	require.NoError(t, err)
	return app, token
}

func recommend(t *testing.T, app *fiber.App, token string, payload any) (int, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/chat/recommendations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestRecommendationsParseNumberedOptions(t *testing.T) {
	client := &fakeLLM{reply: "1. Entiendo cómo te sientes.\n2. ¿Desde cuándo te ocurre?\n3. Prueba un ejercicio de respiración."}
	app, token := setup(t, client)

	status, body := recommend(t, app, token, map[string]any{
		"messages": []map[string]string{
			{"role": "patient", "content": "No puedo dormir"},
			{"role": "assistant", "content": "¿Qué te preocupa?"},
		},
	})
	require.Equal(t, fiber.StatusOK, status)

	var out struct {
		Recommendations []string `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Recommendations, 3)
	assert.Equal(t, "Entiendo cómo te sientes.", out.Recommendations[0])
	assert.Equal(t, "¿Desde cuándo te ocurre?", out.Recommendations[1])

	// The prompt carries the therapist configuration and the transcript.
	assert.Contains(t, client.prompt, "Estilo terapéutico: cognitivo-conductual")
	assert.Contains(t, client.prompt, "Tono de comunicación: cálido")
	assert.Contains(t, client.prompt, "Instrucciones adicionales: respuestas breves")
	assert.Contains(t, client.prompt, "Paciente: No puedo dormir")
	assert.Contains(t, client.prompt, "Psicólogo: ¿Qué te preocupa?")
}

func TestRecommendationsFallbackToWholeReply(t *testing.T) {
	client := &fakeLLM{reply: "Podrías validar su emoción antes de indagar."}
	app, token := setup(t, client)

	status, body := recommend(t, app, token, map[string]any{"messages": []map[string]string{}})
	require.Equal(t, fiber.StatusOK, status)

	var out struct {
		Recommendations []string `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Recommendations, 1)
	assert.True(t, strings.HasPrefix(out.Recommendations[0], "Podrías validar"))
}

func TestRecommendationsUpstreamFailure(t *testing.T) {
	client := &fakeLLM{err: errors.New("upstream down")}
	app, token := setup(t, client)

	status, _ := recommend(t, app, token, map[string]any{"messages": []map[string]string{}})
	assert.Equal(t, fiber.StatusInternalServerError, status)
}
