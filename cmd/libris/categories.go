package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
)

func newCategoriesCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Browse book categories",
	}

	cmd.AddCommand(newCategoriesListCmd(app, flags))

	return cmd
}

func newCategoriesListCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the categories a book can belong to",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openAuthenticated(app, flags, "list categories"); err != nil {
				return err
			}
			ctx, _ := app.CommandContext(cmd, "command.categories.list")

			categories, err := app.Catalog.ListCategories(ctx)
			if err != nil {
				return requestError("list categories", err, "Failed to load categories")
			}

			if opts.jsonOutput {
				if categories == nil {
					categories = []catalog.Category{}
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(categories)
			}

			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories defined.")
				return nil
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME")
			for _, c := range categories {
				fmt.Fprintf(writer, "%d\t%s\n", c.ID, c.Name)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
