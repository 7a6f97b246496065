package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/crosswatch-cli/crosswatch/content"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/recent"
	"github.com/crosswatch-cli/crosswatch/region"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

type selection struct {
	countries []string
	services  []string
	kind      content.Kind
}

func (s selection) complete() bool {
	return len(s.countries) > 0 && len(s.services) > 0
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("country", "c", []string{}, "Countries to search, at most 2 (e.g. KR,US)")
	cmd.Flags().StringSliceP("service", "s", []string{}, "Streaming services to search (e.g. netflix,prime)")
	cmd.Flags().StringP("kind", "k", "", "Content type: movie or series")
	cmd.Flags().BoolP("last", "l", false, "Reuse the most recent selection")

	lo.Must0(cmd.RegisterFlagCompletionFunc("country", completionCountries))
	lo.Must0(cmd.RegisterFlagCompletionFunc("service", completionServices))
	lo.Must0(cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(content.Kinds(), func(k content.Kind, _ int) string { return k.String() }), cobra.ShellCompDirectiveNoFileComp
	}))
}

// completionCountries offers remembered pairs first, then every single country.
func completionCountries(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	remembered := lo.Map(recent.SuggestMany(toComplete), func(s *recent.Selection, _ int) string {
		return strings.Join(s.Countries, ",")
	})
	return lo.Uniq(append(remembered, region.CountryCodes()...)), cobra.ShellCompDirectiveNoFileComp
}

func completionServices(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	remembered := lo.Map(recent.SuggestMany(toComplete), func(s *recent.Selection, _ int) string {
		return strings.Join(s.Services, ",")
	})
	return lo.Uniq(append(remembered, region.ServiceIDs()...)), cobra.ShellCompDirectiveNoFileComp
}

// readSelection merges, in order of precedence, the flags, --last and the configured defaults.
func readSelection(cmd *cobra.Command) (selection, error) {
	var (
		countries = lo.Must(cmd.Flags().GetStringSlice("country"))
		services  = lo.Must(cmd.Flags().GetStringSlice("service"))
		kindFlag  = lo.Must(cmd.Flags().GetString("kind"))
	)

	if lo.Must(cmd.Flags().GetBool("last")) {
		last, ok := recent.Last().Get()
		if !ok {
			return selection{}, errors.New("no previous selection, run a search first")
		}
		countries = lo.Ternary(len(countries) == 0, last.Countries, countries)
		services = lo.Ternary(len(services) == 0, last.Services, services)
	}

	if len(countries) == 0 {
		countries = viper.GetStringSlice(key.SearchCountries)
	}
	if len(services) == 0 {
		services = viper.GetStringSlice(key.SearchServices)
	}
	if kindFlag == "" {
		kindFlag = viper.GetString(key.SearchKind)
	}

	countries, err := region.NormalizeCountries(countries)
	if err != nil {
		return selection{}, err
	}
	services, err = region.NormalizeServices(services)
	if err != nil {
		return selection{}, err
	}

	kind, err := content.ParseKind(kindFlag)
	if err != nil {
		return selection{}, err
	}

	return selection{countries: countries, services: services, kind: kind}, nil
}

// promptSelection asks for whatever part of the selection is missing.
func promptSelection(sel selection) (selection, error) {
	if sel.complete() || !term.IsTerminal(int(os.Stdin.Fd())) {
		return sel, nil
	}

	if len(sel.countries) == 0 {
		err := survey.AskOne(&survey.MultiSelect{
			Message: "Countries",
			Options: region.CountryCodes(),
			Description: func(value string, _ int) string {
				c, _ := region.LookupCountry(value)
				return c.Flag + " " + c.Name
			},
		}, &sel.countries, survey.WithValidator(survey.Required), survey.WithValidator(survey.MaxItems(region.MaxCountries)))
		if err != nil {
			return sel, err
		}
	}

	if len(sel.services) == 0 {
		err := survey.AskOne(&survey.MultiSelect{
			Message: "Platforms",
			Options: region.ServiceIDs(),
			Description: func(value string, _ int) string {
				s, _ := region.LookupService(value)
				return s.Name
			},
		}, &sel.services, survey.WithValidator(survey.Required))
		if err != nil {
			return sel, err
		}
	}

	return sel, nil
}
