package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/mcsim/internal/mcmc"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Chains [][][]float64 `json:"chains"`
}

// ExportJSON writes the run metadata and all samples as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, chains [][]mcmc.State) error {
	data := ExportData{
		Run:    *meta,
		Chains: make([][][]float64, len(chains)),
	}
	for c, samples := range chains {
		data.Chains[c] = make([][]float64, len(samples))
		for i, s := range samples {
			data.Chains[c][i] = s
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes a header and one row per sample. Values are written with
// the shortest representation that parses back to the same float64.
func WriteCSV(w io.Writer, chains []*mcmc.Chain) error {
	samples := make([][]mcmc.State, len(chains))
	for i, c := range chains {
		samples[i] = c.Samples
	}
	return ExportCSV(w, samples)
}

func ExportCSV(w io.Writer, chains [][]mcmc.State) error {
	cw := csv.NewWriter(w)

	dim := 0
	if len(chains) > 0 && len(chains[0]) > 0 {
		dim = len(chains[0][0])
	}

	header := []string{"chain", "iter"}
	for i := 0; i < dim; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for c, samples := range chains {
		for i, s := range samples {
			row := make([]string, 0, len(s)+2)
			row = append(row, strconv.Itoa(c), strconv.Itoa(i))
			for _, val := range s {
				row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
