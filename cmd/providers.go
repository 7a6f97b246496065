package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/crosswatch-cli/crosswatch/availability"
	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/crosswatch-cli/crosswatch/style"
	"github.com/crosswatch-cli/crosswatch/tmdb"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(providersCmd)

	providersCmd.Flags().StringSliceP("country", "c", []string{}, "Countries to look up, the configured ones by default")
	providersCmd.Flags().BoolP("all", "a", false, "Look up every supported country")
	providersCmd.Flags().StringP("kind", "k", "", "Content type of the title: movie or series")
	providersCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	providersCmd.MarkFlagsMutuallyExclusive("country", "all")
	lo.Must0(providersCmd.RegisterFlagCompletionFunc("country", completionCountries))

	providersCmd.SetOut(os.Stdout)
}

var providersCmd = &cobra.Command{
	Use:     "providers [id]",
	Short:   "List every streaming service carrying a title",
	Long:    "Look up where a catalog title streams, per country. The id is the TMDB id shown in search output.",
	Args:    cobra.ExactArgs(1),
	Example: "  crosswatch providers 496243 -c KR,US",
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			handleErr(fmt.Errorf("invalid title id %q", args[0]))
		}

		kindFlag := lo.Must(cmd.Flags().GetString("kind"))
		if kindFlag == "" {
			kindFlag = viper.GetString(key.SearchKind)
		}
		kind, err := content.ParseKind(kindFlag)
		handleErr(err)

		countries := lo.Must(cmd.Flags().GetStringSlice("country"))
		switch {
		case lo.Must(cmd.Flags().GetBool("all")):
			countries = region.CountryCodes()
		case len(countries) == 0:
			countries = viper.GetStringSlice(key.SearchCountries)
		}
		if len(countries) == 0 {
			countries = region.CountryCodes()
		}

		// the two-country limit only applies to searches
		countries = lo.Uniq(lo.Map(countries, func(c string, _ int) string { return strings.ToUpper(c) }))
		for _, c := range countries {
			if _, ok := region.LookupCountry(c); !ok {
				handleErr(fmt.Errorf("unknown country %q, did you mean %s?", c, region.Closest(c, region.CountryCodes())))
			}
		}

		catalog, err := newCatalog()
		handleErr(err)

		avail, err := availability.NewResolver(catalog).Resolve(cmd.Context(), id, kind, countries)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(avail))
			return
		}

		printProviders(cmd, avail, countries)
		cmd.Println()
		cmd.Println(style.Faint(tmdb.WebURL(kind, id)))
	},
}

func printProviders(cmd *cobra.Command, avail availability.Availability, countries []string) {
	headerStyle := style.New().Bold(true).Foreground(color.HiPurple).Render

	for _, code := range countries {
		country, _ := region.LookupCountry(code)
		names := lo.Map(avail[code], func(id string, _ int) string {
			s, _ := region.LookupService(id)
			return s.Name
		})

		value := style.Fg(color.Red)("none")
		if len(names) > 0 {
			value = style.Fg(color.Green)(strings.Join(names, ", "))
		}
		cmd.Printf("%s %s %s\n", country.Flag, headerStyle(country.Name), value)
	}
}
