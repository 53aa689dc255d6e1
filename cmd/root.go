package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linkdealer",
	Short: "utm link minting service",
	Example: `linkdealer serve -p 4000
linkdealer info
linkdealer link create -u <target-url> -m <medium> -s <source> ...
linkdealer utm -l <link> -s <category> -j <project> -i <item-type>`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(contextCommand)
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(utmCmd())

	linkCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	linkCmd.AddCommand(createLinkCmd())

	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
