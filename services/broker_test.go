package services

import (
	"testing"

	"wallbot-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerAppendPreservesOrder(t *testing.T) {
	broker := NewMessageBroker(setupTestDB(t))

	first, err := broker.Append(models.MessageTypeStatusUpdate, `{"event":"execution_started"}`)
	require.NoError(t, err)
	second, err := broker.Append(models.MessageTypeStatusUpdate, `{"event":"execution_completed"}`)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	messages, err := broker.Messages(models.MessageTypeStatusUpdate, 10)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// 시작 메시지가 완료 메시지보다 먼저
	assert.Contains(t, messages[0].Payload, "execution_started")
	assert.Contains(t, messages[1].Payload, "execution_completed")
}

func TestBrokerMessagesTypeFilter(t *testing.T) {
	broker := NewMessageBroker(setupTestDB(t))

	_, err := broker.Append(models.MessageTypeStatusUpdate, `{}`)
	require.NoError(t, err)
	_, err = broker.Append(models.MessageTypeError, `{"error":"테스트"}`)
	require.NoError(t, err)

	errors, err := broker.Messages(models.MessageTypeError, 10)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, models.MessageTypeError, errors[0].Type)

	all, err := broker.Messages("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBrokerProcessPending(t *testing.T) {
	broker := NewMessageBroker(setupTestDB(t))

	_, err := broker.Append(models.MessageTypeStatusUpdate, `{}`)
	require.NoError(t, err)
	_, err = broker.Append(models.MessageTypeCommand, `{}`)
	require.NoError(t, err)

	processed, err := broker.ProcessPending()
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	messages, err := broker.Messages("", 10)
	require.NoError(t, err)
	for _, msg := range messages {
		assert.True(t, msg.Processed)
		assert.NotNil(t, msg.ProcessedAt)
	}

	// 재처리 대상 없음
	processed, err = broker.ProcessPending()
	require.NoError(t, err)
	assert.Zero(t, processed)
}
