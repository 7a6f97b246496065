package inline

import (
	"encoding/json"
	"io"

	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/intersect"
)

// Selection echoes what was searched.
type Selection struct {
	Countries []string     `json:"countries"`
	Services  []string     `json:"services"`
	Kind      content.Kind `json:"kind"`
}

type Output struct {
	Selection Selection `json:"selection"`
	// Exhausted is true when every candidate of the anchor country was checked.
	Exhausted bool            `json:"exhausted"`
	Stats     intersect.Stats `json:"stats"`
	Result    []*content.Item `json:"result"`
}

func writeJson(out io.Writer, output *Output) error {
	if output.Result == nil {
		output.Result = []*content.Item{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
