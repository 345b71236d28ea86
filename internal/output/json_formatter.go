package output

import (
	"encoding/json"
	"strconv"

	"github.com/wealthtrail/household-projector/internal/domain"
)

// JSONFormatter serializes the projection result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func itoa(n int) string { return strconv.Itoa(n) }
