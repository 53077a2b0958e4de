package game

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleLog = GameLog{
	{Turn: 1, SelectedCards: []string{"dog", "cat"}, CorrectGuesses: 1, Hint: "animal", CardsRemaining: 14},
	{Turn: 2, SelectedCards: []string{"ice-cream"}, CorrectGuesses: 0, Hint: `sweet, "cold"`, CardsRemaining: 14},
	{Turn: 3, SelectedCards: []string{"cat", "fish", "bird"}, CorrectGuesses: 3, Hint: "pet", CardsRemaining: 11},
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleLog.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "Turn,Selected Cards,Spybot Correct Guesses,Used Hints,Cards Remaining", lines[0])
	assert.Equal(t, `1,"DOG, CAT",1,animal,14`, lines[1])

	got, err := ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleLog, got)
}

func TestParseCSVErrors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)

	_, err = ParseCSV(strings.NewReader("Turn,Cards,Spybot Correct Guesses,Used Hints,Cards Remaining\n"))
	require.Error(t, err)

	_, err = ParseCSV(strings.NewReader("Turn,Selected Cards,Spybot Correct Guesses,Used Hints,Cards Remaining\nx,DOG,1,a,2\n"))
	require.Error(t, err)
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleLog[:1].WriteJSON(&buf))
	assert.JSONEq(t,
		`[{"Turn":1,"Selected Cards":"DOG, CAT","Spybot Correct Guesses":1,"Used Hints":"animal","Cards Remaining":14}]`,
		buf.String())

	var back GameLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sampleLog[:1], back)

	buf.Reset()
	require.NoError(t, GameLog(nil).WriteJSON(&buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestHTMLExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleLog.WriteHTML(&buf))
	out := buf.String()
	assert.Contains(t, out, "<th>Selected Cards</th>")
	assert.Contains(t, out, "<td>DOG, CAT</td>")
	assert.Contains(t, out, "&#34;cold&#34;")
	assert.Equal(t, 3, strings.Count(out, "<tr>"))
}
