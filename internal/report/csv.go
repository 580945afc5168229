package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/lumenfi/chaincheck/internal/models"
)

// RenderCSV produces the flat per-check summary.
func RenderCSV(rep *models.RunReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"name", "status", "required", "duration_ms", "error"}); err != nil {
		return nil, err
	}
	for _, res := range rep.Results {
		row := []string{
			res.Name,
			string(res.Status()),
			strconv.FormatBool(res.Required),
			strconv.FormatInt(res.DurationMs, 10),
			res.Error,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
