package cmd

import (
	"os"

	"github.com/emrgen/linkdealer/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:   "serve",
		Short: "start the api server",
		Run: func(cmd *cobra.Command, args []string) {
			if port == "" {
				port = os.Getenv("HTTP_PORT")
			}
			if port == "" {
				port = "4000"
			}

			server.NewServer(port).Start()
		},
	}

	command.Flags().StringVarP(&port, "port", "p", "", "http port")

	return command
}
