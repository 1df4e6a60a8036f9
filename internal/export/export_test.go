package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/san-kum/tilechain/internal/markov"
	"github.com/san-kum/tilechain/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		States: []markov.Vector{
			{1, 0},
			{0.5, 0.5},
		},
		Turns:      []int{0, 1},
		TurnsTaken: 1,
		Metrics:    map[string]float64{"mass_drift": 0},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d records", len(records))
	}
	if records[0][0] != "turn" || records[0][2] != "t1" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[2][0] != "1" || records[2][1] != "0.5" {
		t.Errorf("unexpected row %v", records[2])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, &sim.Result{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	data := NewExportData(0, []string{"Go", "Jail"}, testResult(), markov.Vector{0.25, 0.75})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded ExportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Turns != 1 {
		t.Errorf("expected 1 turn, got %d", decoded.Turns)
	}
	if len(decoded.States) != 2 || decoded.States[1][1] != 0.5 {
		t.Errorf("unexpected states %v", decoded.States)
	}
	if len(decoded.Stationary) != 2 || decoded.Stationary[1] != 0.75 {
		t.Errorf("unexpected stationary %v", decoded.Stationary)
	}
}

func TestWriteJSONWithoutLimit(t *testing.T) {
	data := NewExportData(0, nil, testResult(), nil)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("stationary")) {
		t.Error("expected stationary to be omitted")
	}
}
