// internal/game/log.go
//
// Game log: one TurnRecord per completed turn, exportable as CSV, JSON and
// an HTML table.
//
// CSV layout (header row first):
//   Turn,Selected Cards,Spybot Correct Guesses,Used Hints,Cards Remaining
// Selected cards are upper-cased and joined with ", "; ParseCSV lowercases
// and splits them again.

package game

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// TurnRecord summarizes one completed turn.
type TurnRecord struct {
	Turn           int      `json:"Turn"`
	SelectedCards  []string `json:"-"`
	CorrectGuesses int      `json:"Spybot Correct Guesses"`
	Hint           string   `json:"Used Hints"`
	CardsRemaining int      `json:"Cards Remaining"`
}

// SelectedText is the flat text form of SelectedCards.
func (r TurnRecord) SelectedText() string {
	return strings.ToUpper(strings.Join(r.SelectedCards, ", "))
}

// flatRecord is the serialized shape of a TurnRecord.
type flatRecord struct {
	Turn           int    `json:"Turn"`
	SelectedCards  string `json:"Selected Cards"`
	CorrectGuesses int    `json:"Spybot Correct Guesses"`
	Hint           string `json:"Used Hints"`
	CardsRemaining int    `json:"Cards Remaining"`
}

func (r TurnRecord) flat() flatRecord {
	return flatRecord{
		Turn:           r.Turn,
		SelectedCards:  r.SelectedText(),
		CorrectGuesses: r.CorrectGuesses,
		Hint:           r.Hint,
		CardsRemaining: r.CardsRemaining,
	}
}

func (f flatRecord) record() TurnRecord {
	return TurnRecord{
		Turn:           f.Turn,
		SelectedCards:  splitCards(f.SelectedCards),
		CorrectGuesses: f.CorrectGuesses,
		Hint:           f.Hint,
		CardsRemaining: f.CardsRemaining,
	}
}

// MarshalJSON writes the flat record form.
func (r TurnRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.flat())
}

// UnmarshalJSON reads the flat record form.
func (r *TurnRecord) UnmarshalJSON(b []byte) error {
	var f flatRecord
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*r = f.record()
	return nil
}

// GameLog is the ordered, append-only list of turns.
type GameLog []TurnRecord

var csvHeader = []string{"Turn", "Selected Cards", "Spybot Correct Guesses", "Used Hints", "Cards Remaining"}

// WriteCSV writes the header and one row per turn.
func (l GameLog) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range l {
		f := r.flat()
		row := []string{
			strconv.Itoa(f.Turn),
			f.SelectedCards,
			strconv.Itoa(f.CorrectGuesses),
			f.Hint,
			strconv.Itoa(f.CardsRemaining),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a log written by WriteCSV.
func ParseCSV(r io.Reader) (GameLog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("game log: read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("game log: missing header")
	}
	for i, h := range csvHeader {
		if rows[0][i] != h {
			return nil, fmt.Errorf("game log: column %d is %q, want %q", i, rows[0][i], h)
		}
	}

	out := make(GameLog, 0, len(rows)-1)
	for n, row := range rows[1:] {
		var f flatRecord
		var err error
		if f.Turn, err = strconv.Atoi(row[0]); err != nil {
			return nil, fmt.Errorf("game log: row %d turn: %w", n+1, err)
		}
		f.SelectedCards = row[1]
		if f.CorrectGuesses, err = strconv.Atoi(row[2]); err != nil {
			return nil, fmt.Errorf("game log: row %d correct guesses: %w", n+1, err)
		}
		f.Hint = row[3]
		if f.CardsRemaining, err = strconv.Atoi(row[4]); err != nil {
			return nil, fmt.Errorf("game log: row %d cards remaining: %w", n+1, err)
		}
		out = append(out, f.record())
	}
	return out, nil
}

// WriteJSON writes the log as a JSON array of flat records.
func (l GameLog) WriteJSON(w io.Writer) error {
	if l == nil {
		l = GameLog{}
	}
	return json.NewEncoder(w).Encode(l)
}

var htmlTable = template.Must(template.New("log").Parse(`<table border="1" class="dataframe">
  <thead>
    <tr style="text-align: right;">{{range .Header}}
      <th>{{.}}</th>{{end}}
    </tr>
  </thead>
  <tbody>{{range .Rows}}
    <tr>
      <td>{{.Turn}}</td>
      <td>{{.SelectedCards}}</td>
      <td>{{.CorrectGuesses}}</td>
      <td>{{.Hint}}</td>
      <td>{{.CardsRemaining}}</td>
    </tr>{{end}}
  </tbody>
</table>
`))

// WriteHTML writes the log as an HTML table.
func (l GameLog) WriteHTML(w io.Writer) error {
	rows := make([]flatRecord, len(l))
	for i, r := range l {
		rows[i] = r.flat()
	}
	return htmlTable.Execute(w, struct {
		Header []string
		Rows   []flatRecord
	}{csvHeader, rows})
}

func splitCards(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
