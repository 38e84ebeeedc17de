package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/repository"
	"github.com/kirill778/flowchart/services"
)

// TestGenerateFromModelReply verifies the happy path: the model's numbered
// steps become the diagram and the fallback flag stays off.
func TestGenerateFromModelReply(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	sessionID := ts.newSession(t)
	ts.llm.reply = "Шаг 1: Налить воду\nШаг 2: Вскипятить\nШаг 3: Заварить чай"

	diagram, fallback, err := ts.generate.Generate(ctx, sessionID, "как заварить чай", models.DirectionVertical)
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, models.SourceLLM, diagram.Source)
	require.Len(t, diagram.Nodes, 3)
	require.Len(t, diagram.Edges, 2)
	assert.Equal(t, "Налить воду", diagram.Nodes[0].Label)
	assert.Equal(t, "Заварить чай", diagram.Nodes[2].Label)

	messages := ts.llm.lastMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleSystem, messages[0].Role)
	assert.NotEmpty(t, messages[0].Content)
	assert.Equal(t, models.RoleUser, messages[1].Role)
	assert.Equal(t, "как заварить чай", messages[1].Content)

	session, err := ts.sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, session.Diagram)
	assert.Len(t, session.Diagram.Nodes, 3)
}

// TestGenerateFallbackOnModelError verifies that a failing model degrades to
// splitting the raw input instead of failing the request.
func TestGenerateFallbackOnModelError(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	sessionID := ts.newSession(t)
	ts.llm.err = errors.New("connection refused")

	diagram, fallback, err := ts.generate.Generate(ctx, sessionID, "налить воду - вскипятить - заварить", models.DirectionVertical)
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.Equal(t, models.SourceFallback, diagram.Source)
	require.Len(t, diagram.Nodes, 3)
	assert.Equal(t, "налить воду", diagram.Nodes[0].Label)
}

// TestGenerateFallbackOnEmptyReply verifies that a blank model reply also
// triggers the heuristic fallback.
func TestGenerateFallbackOnEmptyReply(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	sessionID := ts.newSession(t)
	ts.llm.reply = "   \n "

	diagram, fallback, err := ts.generate.Generate(ctx, sessionID, "первое, второе", models.DirectionVertical)
	require.NoError(t, err)
	assert.True(t, fallback)
	require.Len(t, diagram.Nodes, 2)
	assert.Equal(t, "первое", diagram.Nodes[0].Label)
	assert.Equal(t, "второе", diagram.Nodes[1].Label)
}

// TestGenerateValidation verifies input and direction validation plus the
// session existence check.
func TestGenerateValidation(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	sessionID := ts.newSession(t)
	ts.llm.reply = "Шаг 1: х"

	_, _, err := ts.generate.Generate(ctx, sessionID, "   ", models.DirectionVertical)
	assert.ErrorIs(t, err, services.ErrEmptyInput)

	_, _, err = ts.generate.Generate(ctx, sessionID, "текст", "diagonal")
	assert.ErrorIs(t, err, services.ErrInvalidDirection)

	_, _, err = ts.generate.Generate(ctx, "no-such-session", "текст", models.DirectionVertical)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	assert.Zero(t, ts.llm.calls, "validation failures must not reach the model")
}

// TestGenerateDefaultsDirection verifies that an empty direction means
// vertical.
func TestGenerateDefaultsDirection(t *testing.T) {
	ts := newTestStack(t)
	sessionID := ts.newSession(t)
	ts.llm.reply = "Шаг 1: а\nШаг 2: б"

	diagram, _, err := ts.generate.Generate(context.Background(), sessionID, "текст", "")
	require.NoError(t, err)
	assert.Equal(t, models.DirectionVertical, diagram.Direction)
}

// TestGenerateHorizontalLayout verifies that the requested direction drives
// node placement.
func TestGenerateHorizontalLayout(t *testing.T) {
	ts := newTestStack(t)
	sessionID := ts.newSession(t)
	ts.llm.reply = "Шаг 1: а\nШаг 2: б"

	diagram, _, err := ts.generate.Generate(context.Background(), sessionID, "текст", models.DirectionHorizontal)
	require.NoError(t, err)
	assert.Equal(t, models.DirectionHorizontal, diagram.Direction)
	wantX, wantY := services.PositionFor(1, models.DirectionHorizontal)
	assert.Equal(t, wantX, diagram.Nodes[1].X)
	assert.Equal(t, wantY, diagram.Nodes[1].Y)
}

// TestGenerateReplacesDiagram verifies that regeneration swaps the whole
// diagram, manual edits included.
func TestGenerateReplacesDiagram(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	sessionID := ts.newSession(t)
	ts.llm.reply = "Шаг 1: старый"

	_, _, err := ts.generate.Generate(ctx, sessionID, "старый процесс", models.DirectionVertical)
	require.NoError(t, err)
	_, err = ts.diagrams.AddNode(ctx, sessionID, "ручная правка")
	require.NoError(t, err)

	ts.llm.reply = "Шаг 1: новый А\nШаг 2: новый Б"
	diagram, _, err := ts.generate.Generate(ctx, sessionID, "новый процесс", models.DirectionVertical)
	require.NoError(t, err)
	require.Len(t, diagram.Nodes, 2)
	assert.Equal(t, "новый А", diagram.Nodes[0].Label)

	session, err := ts.sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, session.Diagram.Nodes, 2, "manual edits must not survive regeneration")
}

// TestGenerateTruncatesInput verifies the rune-based input cap before the
// text reaches the model.
func TestGenerateTruncatesInput(t *testing.T) {
	ts := newTestStack(t)
	ts.cfg.MaxInputChars = 5
	sessionID := ts.newSession(t)
	ts.llm.reply = "Шаг 1: х"

	_, _, err := ts.generate.Generate(context.Background(), sessionID, "абвгдежз", models.DirectionVertical)
	require.NoError(t, err)

	messages := ts.llm.lastMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "абвгд", messages[1].Content)
}

// TestGenerateEmitsEvents verifies the started/completed event pair on the
// in-process publisher.
func TestGenerateEmitsEvents(t *testing.T) {
	ts := newTestStack(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessionID := ts.newSession(t)
	ts.llm.reply = "Шаг 1: а\nШаг 2: б"

	eventCh, err := ts.publisher.SubscribeDiagramEvents(ctx)
	require.NoError(t, err)

	_, _, err = ts.generate.Generate(ctx, sessionID, "текст", models.DirectionVertical)
	require.NoError(t, err)

	started := <-eventCh
	require.NotNil(t, started)
	assert.Equal(t, models.EventGenerationStarted, started.Type)
	assert.Equal(t, sessionID, started.SessionID)
	assert.False(t, started.Timestamp.IsZero())

	completed := <-eventCh
	require.NotNil(t, completed)
	assert.Equal(t, models.EventGenerationCompleted, completed.Type)
	assert.Equal(t, 2, completed.NodeCount)
	assert.False(t, completed.Fallback)
}
