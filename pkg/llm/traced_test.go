package llm_test

import (
	"context"
	"errors"
	"testing"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/llm"
	"cooking-assistant-be/pkg/llm/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTracedProvider(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	provider := llm.NewTracedProvider(
		mock.NewProvider(mock.Reply{Content: `{"title":"Rice"}`}, mock.Reply{Err: errors.New("timeout")}),
		logger.FromZap(zap.New(core)),
	)

	reply, err := provider.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "format"}}, llm.WithJSONMode())
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Rice"}`, reply)

	_, err = provider.Generate(context.Background(), "again")
	assert.EqualError(t, err, "timeout")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Chat completed", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "Chat failed", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
