package cmd

import (
	"fmt"

	"github.com/crosswatch-cli/crosswatch/auth"
	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/icon"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the TMDB API key stored in the system keyring",
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authSetCmd.Flags().StringP("key", "k", "", "The API key, asked for when omitted")
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API key in the keyring",
	Run: func(cmd *cobra.Command, args []string) {
		apiKey := lo.Must(cmd.Flags().GetString("key"))
		if apiKey == "" {
			var err error
			apiKey, err = promptAPIKey()
			handleErr(err)
		}

		handleErr(auth.SetAPIKey(apiKey))
		fmt.Printf("%s API key stored\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key is taken from",
	Run: func(cmd *cobra.Command, args []string) {
		if viper.GetString(key.CatalogAPIKey) != "" {
			fmt.Printf("%s API key set in config or environment (%s)\n", style.Fg(color.Green)(icon.Get(icon.Success)), key.CatalogAPIKey)
			return
		}

		stored, err := auth.GetAPIKey()
		handleErr(err)
		if stored == "" {
			fmt.Printf("%s no API key configured\n", style.Fg(color.Red)(icon.Get(icon.Fail)))
			return
		}

		fmt.Printf("%s API key stored in the keyring\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authClearCmd)
}

var authClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove the API key from the keyring",
	Aliases: []string{"logout"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteAPIKey())
		fmt.Printf("%s API key removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
