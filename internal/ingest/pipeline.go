package ingest

import (
	"log/slog"

	"osint-desk/internal/model"
)

// Result is the output of Prepare.
type Result struct {
	Events  []model.Event // transformed relevant rows in CSV order
	Rows    int           // data rows below the header
	Skipped int           // rows dropped for a column count mismatch
}

// Prepare runs the rows of a tokenized CSV through the shape check, the relevance
// filter and the transformer. rows[0] is the header.
func Prepare(rows [][]string, t Transformer) (Result, error) {
	var res Result
	if len(rows) == 0 {
		return res, nil
	}
	h, err := NewHeader(rows[0])
	if err != nil {
		return res, err
	}
	data := rows[1:]
	res.Rows = len(data)
	for _, fields := range data {
		if !h.Fits(fields) {
			res.Skipped++
			continue
		}
		r := h.Row(fields)
		if !IsRelevant(r.Text) {
			continue
		}
		res.Events = append(res.Events, t.Transform(r))
	}
	slog.Debug("ingest: rows prepared", "rows", res.Rows, "skipped", res.Skipped, "relevant", len(res.Events))
	return res, nil
}
