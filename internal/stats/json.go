package stats

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/verte-zerg/raceme/internal/model"
)

type report struct {
	Tests   int            `json:"tests"`
	BestWPM int            `json:"best_wpm"`
	Results []model.Result `json:"results"`
}

// WriteJSON writes the finished tests as an indented JSON document.
func WriteJSON(w io.Writer, results []model.Result) error {
	out := report{
		Tests:   len(results),
		Results: results,
	}
	if out.Results == nil {
		out.Results = []model.Result{}
	}
	for _, r := range results {
		if r.WPM > out.BestWPM {
			out.BestWPM = r.WPM
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
