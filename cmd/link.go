package cmd

import (
	"context"
	"strconv"

	"github.com/emrgen/linkdealer/schema"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "link commands",
}

func createLinkCmd() *cobra.Command {
	var targetURL string
	var termMaterial string
	var termPage string
	var medium string
	var source string
	var project string
	var content string
	var user string
	var dop string

	var required = []string{"url", "term-material", "term-page", "medium", "source", "project", "content", "user"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a tracked link",
		Example: "linkdealer link create -u https://example.com/sale -m social -s vk -j spring -c banner --term-material sale --term-page home --user alice",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client := apiClient()
			if client == nil {
				return
			}

			req := &schema.LinkCreate{
				TargetURL:       targetURL,
				TermMaterial:    ref(termMaterial),
				TermPage:        ref(termPage),
				Medium:          ref(medium),
				Source:          ref(source),
				CampaignProject: ref(project),
				Content:         ref(content),
				User:            ref(user),
				CampaignDop:     dop,
			}

			link, err := client.CreateLink(context.Background(), req)
			if err != nil {
				color.Red("%v", err)
				return
			}

			logrus.Infof("link created with id: %d", link.ID)
			cmd.Println(link.FullURL)
		},
	}

	command.Flags().StringVarP(&targetURL, "url", "u", "", "target url (required)")
	command.Flags().StringVar(&termMaterial, "term-material", "", "term material id or name (required)")
	command.Flags().StringVar(&termPage, "term-page", "", "term page id or name (required)")
	command.Flags().StringVarP(&medium, "medium", "m", "", "medium id or name (required)")
	command.Flags().StringVarP(&source, "source", "s", "", "source id or name (required)")
	command.Flags().StringVarP(&project, "project", "j", "", "campaign project id or name (required)")
	command.Flags().StringVarP(&content, "content", "c", "", "content id or name (required)")
	command.Flags().StringVar(&user, "user", "", "user id or name (required)")
	command.Flags().StringVarP(&dop, "dop", "d", "", "campaign dop")

	command.Flags().SortFlags = false

	return command
}

// ref interprets a flag value as an id when it is numeric, else a name.
func ref(value string) schema.Ref {
	if id, err := strconv.ParseUint(value, 10, 64); err == nil {
		return schema.ByID(uint(id))
	}
	return schema.ByName(value)
}

func checkMissingFlags(cmd *cobra.Command, required []string) bool {
	missing := false
	for _, name := range required {
		if !cmd.Flags().Changed(name) {
			color.Red("missing: --%s", name)
			missing = true
		}
	}
	return missing
}
