package report

import (
	"encoding/json"

	"github.com/lumenfi/chaincheck/internal/models"
)

// RenderJSON produces the canonical pretty-printed report.
func RenderJSON(rep *models.RunReport) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
