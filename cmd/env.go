package cmd

import (
	"os"
	"strings"

	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/config"
	"github.com/crosswatch-cli/crosswatch/style"
	"github.com/crosswatch-cli/crosswatch/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Show only variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Show only variables that are unset")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

type envVar struct {
	name   string
	secret bool
}

// envVars returns every environment variable crosswatch reads, sorted by name.
func envVars() []envVar {
	vars := lo.Map(config.EnvExposed, func(k string, _ int) envVar {
		field := config.Default[k]
		return envVar{name: field.Env(), secret: field.Secret}
	})
	vars = append(vars, envVar{name: where.EnvConfigPath})

	slices.SortFunc(vars, func(a, b envVar) int {
		return strings.Compare(a.name, b.name)
	})
	return vars
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the supported environment variables and their values",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))
		name := style.New().Bold(true).Foreground(color.Purple).Render

		for _, env := range envVars() {
			value, present := os.LookupEnv(env.name)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			switch {
			case !present:
				value = style.Fg(color.Red)("unset")
			case env.secret:
				value = style.Fg(color.Green)(strings.Repeat("*", 8))
			default:
				value = style.Fg(color.Green)(value)
			}

			cmd.Printf("%s=%s\n", name(env.name), value)
		}
	},
}
