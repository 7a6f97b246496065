// Package cmd implements the command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/crosswatch-cli/crosswatch/availability"
	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/constant"
	"github.com/crosswatch-cli/crosswatch/icon"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/log"
	"github.com/crosswatch-cli/crosswatch/store"
	"github.com/crosswatch-cli/crosswatch/style"
	"github.com/crosswatch-cli/crosswatch/tui"
	"github.com/crosswatch-cli/crosswatch/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	addSelectionFlags(rootCmd)

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.Crosswatch,
	Short: "Find titles streaming in two countries at once",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Find titles streaming in two countries at once"),
	Example: "  crosswatch -c KR -c US -s netflix\n" +
		"  crosswatch --last --kind series\n" +
		"  crosswatch search -c JP -s netflix -s prime --batches 3 --json",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		sel, err := readSelection(cmd)
		handleErr(err)

		catalog, err := newCatalog()
		handleErr(err)

		resolver := availability.NewResolver(catalog)
		options := &tui.Options{
			Store: store.New(store.Options{
				Catalog:  catalog,
				Resolver: resolver,
				Cache:    newSessionCache(),
			}),
			Resolver:  resolver,
			Countries: sel.countries,
			Services:  sel.services,
			Kind:      sel.kind,
		}
		handleErr(tui.Run(cmd.Context(), options))
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	// Interrupts cancel the running search instead of killing the process mid-write.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
