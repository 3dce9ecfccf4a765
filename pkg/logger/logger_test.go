package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
}

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "retail", Output: &buf})

	comp := l.Component("billing")
	comp.Info().Int64("invoice_id", 7).Msg("factura creada")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "retail", event["service"])
	assert.Equal(t, "billing", event["component"])
	assert.Equal(t, "factura creada", event["message"])
	assert.EqualValues(t, 7, event["invoice_id"])
}

func TestNew_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "error", Output: &buf})
	l.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())
}
