package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/crosswatch-cli/crosswatch/availability"
	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/crosswatch-cli/crosswatch/inline"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/log"
	"github.com/crosswatch-cli/crosswatch/recent"
	"github.com/crosswatch-cli/crosswatch/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	addSelectionFlags(searchCmd)
	searchCmd.Flags().IntP("batches", "b", 0, "Number of batches of 20 titles to fetch")
	searchCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	searchCmd.Flags().BoolP("description", "d", false, "Include title descriptions in text output")
	searchCmd.Flags().StringP("filter", "f", "", "Keep only matching titles (genre:<name>, first:<n>, @<text>@)")
	searchCmd.Flags().StringP("output", "o", "", "Write the output to a file instead of stdout")
	lo.Must0(viper.BindPFlag(key.SearchBatches, searchCmd.Flags().Lookup("batches")))
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search without the interactive interface",
	Long: `Run a search in inline mode and print the titles available in every selected country.

Filters:
  genre:<name> - titles tagged with the genre, ignoring case
  first:<n>    - the first n titles
  @<text>@     - titles whose name contains text

Missing countries or services are asked for when running in a terminal.`,
	Example: "  crosswatch search -c KR,US -s netflix,prime --json",
	Run: func(cmd *cobra.Command, args []string) {
		sel, err := readSelection(cmd)
		handleErr(err)

		sel, err = promptSelection(sel)
		handleErr(err)

		catalog, err := newCatalog()
		handleErr(err)

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			writer = file
		}

		filter := mo.None[inline.ItemsFilter]()
		if description := lo.Must(cmd.Flags().GetString("filter")); description != "" {
			fn, err := inline.ParseFilter(description)
			handleErr(err)
			filter = mo.Some(fn)
		}

		if err := recent.Remember(sel.countries, sel.services); err != nil {
			log.Warnf("remember selection: %v", err)
		}

		handleErr(inline.Run(cmd.Context(), &inline.Options{
			Out:         writer,
			Catalog:     catalog,
			Resolver:    availability.NewResolver(catalog),
			Cache:       newSessionCache(),
			Countries:   sel.countries,
			Services:    sel.services,
			Kind:        sel.kind,
			Batches:     viper.GetInt(key.SearchBatches),
			Json:        lo.Must(cmd.Flags().GetBool("json")),
			Description: lo.Must(cmd.Flags().GetBool("description")),
			Filter:      filter,
		}))
	},
}

func init() {
	searchCmd.AddCommand(searchSchemaCmd)
}

var searchSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the search output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "item", "output", "selection", "stats":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
