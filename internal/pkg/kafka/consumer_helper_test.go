package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanalMessage(t *testing.T) {
	raw := `{"table":"votes","type":"INSERT","data":[{"user_id":"1","figure_id":"42"}]}`
	msg := &sarama.ConsumerMessage{Value: []byte(raw)}

	canalMsg, err := ToCanalMessage(msg, "votes")
	require.NoError(t, err)
	assert.Equal(t, INSERT, canalMsg.Type)
	assert.Equal(t, uint64(42), StrToUint64(canalMsg.Data[0]["figure_id"]))
}

func TestToCanalMessageTableMismatch(t *testing.T) {
	raw := `{"table":"comments","type":"INSERT","data":[{"id":"1"}]}`
	msg := &sarama.ConsumerMessage{Value: []byte(raw)}

	_, err := ToCanalMessage(msg, "votes")
	assert.Error(t, err)
}

func TestToCanalMessageEmptyData(t *testing.T) {
	raw := `{"table":"votes","type":"UPDATE","data":[]}`
	msg := &sarama.ConsumerMessage{Value: []byte(raw)}

	_, err := ToCanalMessage(msg, "votes")
	assert.Error(t, err)
}

func TestStrToUint64(t *testing.T) {
	assert.Equal(t, uint64(42), StrToUint64("42"))
	assert.Equal(t, uint64(7), StrToUint64(7))
	assert.Equal(t, uint64(0), StrToUint64(nil))
	assert.Equal(t, uint64(0), StrToUint64("not-a-number"))
}
