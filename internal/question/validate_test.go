package question

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionsCountsReceived(t *testing.T) {
	raw := "```json\n" + `[
		{"question":"ok","options":["1","2","3","4"],"answer":"3","explanation":"e"},
		{"question":"bad","options":["1","2","3","4"],"answer":"5"},
		{"question":"short","options":["1","2"],"answer":"1"}
	]` + "\n```"

	qs, received, err := ParseQuestions(raw)
	require.NoError(t, err)
	assert.Equal(t, 3, received)
	require.Len(t, qs, 1)
	assert.Equal(t, "ok", qs[0].Text)
	assert.Equal(t, SourceAI, qs[0].Source)
}

func TestParseQuestionsRejectsUnparseable(t *testing.T) {
	qs, received, err := ParseQuestions("no json here")

	assert.Nil(t, qs)
	assert.Zero(t, received)
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestItemSchemaRejectsWrongTypes(t *testing.T) {
	for _, raw := range []string{
		`{"question":"q","options":"a,b,c,d","answer":"a"}`,
		`{"question":"q","options":["a","b","c","d"],"answer":1}`,
		`{"question":"q","options":["a","b","c","d","e"],"answer":"a"}`,
		`[]`,
	} {
		_, err := decodeItem([]byte(raw))
		assert.Error(t, err, raw)
	}
}
