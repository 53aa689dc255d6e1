package cmd

import (
	"context"

	"github.com/emrgen/linkdealer/schema"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func utmCmd() *cobra.Command {
	var link string
	var source string
	var project string
	var itemType string

	var required = []string{"link", "source", "project", "item-type"}

	command := &cobra.Command{
		Use:     "utm",
		Short:   "mint preset utm urls for a link",
		Example: "linkdealer utm -l https://example.com/shop/summer-sale/item/ -s vk -j spring -i premium",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client := apiClient()
			if client == nil {
				return
			}

			utms, err := client.MakeUTM(context.Background(), &schema.UTMInfo{
				Link:     link,
				Source:   source,
				Project:  project,
				ItemType: itemType,
			})
			if err != nil {
				color.Red("%v", err)
				return
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Variant", "Link", "Short"})
			for _, utm := range utms.UTMs {
				table.Append([]string{utm.Desc, utm.Link, utm.ShortLink})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&link, "link", "l", "", "item link (required)")
	command.Flags().StringVarP(&source, "source", "s", "", "utm category (required)")
	command.Flags().StringVarP(&project, "project", "j", "", "campaign project tag (required)")
	command.Flags().StringVarP(&itemType, "item-type", "i", "", "item type: premium, freebie or plus (required)")

	command.Flags().SortFlags = false

	return command
}
