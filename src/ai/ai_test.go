package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswerArray(t *testing.T) {
	ans, err := parseAnswer(`{"Correct option": ["Paris"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, ans.CorrectOptions)
}

func TestParseAnswerMultiple(t *testing.T) {
	ans, err := parseAnswer(`{"Correct option": ["Paris", "Lyon"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Lyon"}, ans.CorrectOptions)
}

func TestParseAnswerFenced(t *testing.T) {
	ans, err := parseAnswer("```json\n{\"Correct option\": [\"42\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, ans.CorrectOptions)
}

func TestParseAnswerQuotedListString(t *testing.T) {
	ans, err := parseAnswer(`{"Correct option": "['Paris', 'Lyon']"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Lyon"}, ans.CorrectOptions)
}

func TestParseAnswerPlainString(t *testing.T) {
	ans, err := parseAnswer(`{"Correct option": "Paris"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, ans.CorrectOptions)
}

func TestParseAnswerRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"not json", `{"Wrong key": ["x"]}`, `{"Correct option": 7}`} {
		_, err := parseAnswer(raw)
		assert.Error(t, err, "raw: %s", raw)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct{ in, want string }{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, stripFences(c.in), "input: %q", c.in)
	}
}

func TestParseQuotedList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseQuotedList("['a', 'b']"))
	assert.Equal(t, []string{"a", "b"}, parseQuotedList(`["a","b"]`))
	assert.Equal(t, []string{"plain answer"}, parseQuotedList("plain answer"))
	assert.Empty(t, parseQuotedList("[]"))
	assert.Empty(t, parseQuotedList(""))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(errors.New("dial tcp: connection refused")))
	assert.True(t, isTransient(errors.New("gemini generate: 503 service unavailable")))
	assert.False(t, isTransient(errors.New("invalid api key")))
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(t.Context(), Config{})
	require.Error(t, err)
}
