package cmd

import (
	"context"
	"strconv"

	linkdealer "github.com/emrgen/linkdealer"
	"github.com/emrgen/linkdealer/schema"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// apiClient builds a client from the saved context. Returns nil when no
// context is set.
func apiClient() *linkdealer.Client {
	ctx := readContext()
	if ctx.Addr == "" {
		color.Red("no context set, run: linkdealer context set -a <addr> -u <username> -p <password>")
		return nil
	}

	return linkdealer.NewClient(ctx.Addr, ctx.Username, ctx.Password)
}

func infoCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "info",
		Short: "show the taxonomy and the latest links",
		Run: func(cmd *cobra.Command, args []string) {
			client := apiClient()
			if client == nil {
				return
			}

			info, err := client.Info(context.Background())
			if err != nil {
				color.Red("%v", err)
				return
			}

			printTaxonomies(cmd, info)
			printLinks(cmd, info.LastLinks)
		},
	}

	return command
}

func printTaxonomies(cmd *cobra.Command, info *schema.Info) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Type", "ID", "Name"})

	for _, user := range info.Users {
		name := user.Value
		if user.IsBot {
			name += " (bot)"
		}
		table.Append([]string{"user", ident(user.Ident), name})
	}
	for _, opt := range info.TermMaterials {
		table.Append([]string{"term_material", ident(opt.Ident), opt.Value})
	}
	for _, opt := range info.TermPages {
		table.Append([]string{"term_page", ident(opt.Ident), opt.Value})
	}
	for _, medium := range info.Mediums {
		table.Append([]string{"medium", ident(medium.Ident), medium.Value})
		for _, source := range medium.Sources {
			table.Append([]string{"  source", ident(source.Ident), source.Value})
		}
	}
	for _, opt := range info.CampaignProjects {
		table.Append([]string{"campaign_project", ident(opt.Ident), opt.Value})
	}
	for _, opt := range info.Contents {
		table.Append([]string{"content", ident(opt.Ident), opt.Value})
	}

	table.Render()
}

func printLinks(cmd *cobra.Command, links []schema.Link) {
	if len(links) == 0 {
		return
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ID", "Date", "Medium", "Source", "Full URL"})

	for _, link := range links {
		table.Append([]string{
			strconv.FormatUint(uint64(link.ID), 10),
			link.CampaignDate.Format("2006-01-02"),
			link.MediumName,
			link.SourceName,
			link.FullURL,
		})
	}

	table.Render()
}

func ident(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}
