package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "linkdealer"
	configFilePath = "./.tmp"
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
}

// Context holds the server address and credentials used by the client
// commands, saved under ./.tmp/linkdealer.yml.
type Context struct {
	Addr     string `json:"addr"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func setContextCommand() *cobra.Command {
	var addr string
	var username string
	var password string

	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		Run: func(cmd *cobra.Command, args []string) {
			if addr == "" || username == "" || password == "" {
				color.Red(`missing: --addr, --username and --password`)
				return
			}

			writeContext(Context{
				Addr:     addr,
				Username: username,
				Password: password,
			})
		},
	}

	command.Flags().StringVarP(&addr, "addr", "a", "", "server address, e.g. http://localhost:4000")
	command.Flags().StringVarP(&username, "username", "u", "", "api username")
	command.Flags().StringVarP(&password, "password", "p", "", "api password")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := readContext()
			if ctx.Addr == "" {
				color.Yellow("no context set")
				return
			}
			fmt.Printf("addr: %s\nusername: %s\n", ctx.Addr, ctx.Username)
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		Run: func(cmd *cobra.Command, args []string) {
			writeContext(Context{})
		},
	}

	return command
}

func writeContext(context Context) {
	if err := os.MkdirAll(configFilePath, os.ModePerm); err != nil {
		fmt.Println("error creating config dir: ", err)
		return
	}

	viper.SetConfigName(configFileName)
	viper.AddConfigPath(configFilePath)
	viper.SetConfigType("yml")
	viper.Set("context", context)

	if err := viper.WriteConfigAs(configFilePath + "/" + configFileName + ".yml"); err != nil {
		fmt.Println("error writing config file: ", err)
	} else {
		fmt.Println("context saved")
	}
}

func readContext() Context {
	var ctx Context

	viper.SetConfigName(configFileName)
	viper.AddConfigPath(configFilePath)
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return ctx
	}

	if err := viper.UnmarshalKey("context", &ctx); err != nil {
		fmt.Println("error unmarshalling config file: ", err)
	}

	return ctx
}
