package cmd

import (
	"encoding/json"
	"os"

	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/crosswatch-cli/crosswatch/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("raw", "r", false, "Print codes only, without headers and names")
	listCmd.Flags().BoolP("countries", "c", false, "List only the countries")
	listCmd.Flags().BoolP("services", "s", false, "List only the streaming services")
	listCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")

	listCmd.MarkFlagsMutuallyExclusive("countries", "services")
	listCmd.SetOut(os.Stdout)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the supported countries and streaming services",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			onlyCountries = lo.Must(cmd.Flags().GetBool("countries"))
			onlyServices  = lo.Must(cmd.Flags().GetBool("services"))
			raw           = lo.Must(cmd.Flags().GetBool("raw"))
		)

		if lo.Must(cmd.Flags().GetBool("json")) {
			out := map[string]any{}
			if !onlyServices {
				out["countries"] = region.Countries
			}
			if !onlyCountries {
				out["services"] = region.Services
			}
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(out))
			return
		}

		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
		h := func(s string) {
			if !raw {
				cmd.Println(headerStyle(s))
			}
		}

		printCountries := func() {
			h("Countries:")
			for _, c := range region.Countries {
				if raw {
					cmd.Println(c.Code)
				} else {
					cmd.Printf("%s %s %s\n", c.Flag, c.Code, style.Faint(c.Name))
				}
			}
		}

		printServices := func() {
			h("Services:")
			for _, s := range region.Services {
				if raw {
					cmd.Println(s.ID)
				} else {
					cmd.Printf("%s %s\n", s.ID, style.Faint(s.Name))
				}
			}
		}

		switch {
		case onlyCountries:
			printCountries()
		case onlyServices:
			printServices()
		default:
			printCountries()
			if !raw {
				cmd.Println()
			}
			printServices()
		}
	},
}
