package report

import (
	"encoding/json"
	"os"

	"github.com/qvl-tools/qvlscan/pkg/models"
)

// SaveJSON writes the result document to path with its stable field names,
// silently overwriting any previous run's output.
func SaveJSON(rs *models.ResultSet, path string) error {
	content, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
