package inline

import (
	"fmt"
	"io"
	"strings"

	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/crosswatch-cli/crosswatch/util"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
)

const defaultWidth = 80

func writeText(out io.Writer, output *Output, description bool) error {
	width := defaultWidth
	if w, _, err := util.TerminalSize(); err == nil && w > 20 {
		width = min(w, 120)
	}

	for _, item := range output.Result {
		if _, err := fmt.Fprintf(out, "%s  %.1f\n", item, item.Rating); err != nil {
			return err
		}

		for _, country := range output.Selection.Countries {
			services := lo.Map(item.AvailableOn[country], func(id string, _ int) string {
				if s, ok := region.LookupService(id); ok {
					return s.Name
				}
				return id
			})
			if _, err := fmt.Fprintf(out, "  %s: %s\n", country, strings.Join(services, ", ")); err != nil {
				return err
			}
		}

		if description && item.Description != "" {
			wrapped := indent.String(wordwrap.String(item.Description, width-4), 4)
			if _, err := fmt.Fprintln(out, wrapped); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(out, "%s in %s\n",
		util.Quantify(len(output.Result), "title", "titles"),
		strings.Join(output.Selection.Countries, " and "),
	)
	return err
}
