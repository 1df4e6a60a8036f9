package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/tilechain/internal/markov"
	"github.com/san-kum/tilechain/internal/sim"
)

type ExportData struct {
	Start      int                `json:"start"`
	Turns      int                `json:"turns"`
	Tiles      []string           `json:"tiles"`
	States     [][]float64        `json:"states"`
	Stationary []float64          `json:"stationary,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewExportData flattens a run. limit may be nil.
func NewExportData(start int, tiles []string, result *sim.Result, limit markov.Vector) ExportData {
	data := ExportData{
		Start:   start,
		Turns:   result.TurnsTaken,
		Tiles:   tiles,
		States:  make([][]float64, len(result.States)),
		Metrics: result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	if limit != nil {
		data.Stationary = limit
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV writes one row per turn: the turn number, then the probability of
// each tile.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)

	if len(result.States) == 0 {
		cw.Flush()
		return cw.Error()
	}

	header := []string{"turn"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("t%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, state := range result.States {
		row := []string{strconv.Itoa(result.Turns[i])}
		for _, val := range state {
			row = append(row, strconv.FormatFloat(val, 'g', 10, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
