package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/survey-snapshot/internal/columns"
	"github.com/KaramelBytes/survey-snapshot/internal/pipeline"
	"github.com/KaramelBytes/survey-snapshot/internal/utils"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show how each column of the input is classified, without writing outputs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		ds, res, err := pipeline.Inspect(c)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Source: %s (%d rows)\n", utils.RelSlash(res.Paths.Root, res.Source), ds.Rows())
		if len(res.Dropped) > 0 {
			fmt.Fprintf(out, "Dropped PII: %s\n", strings.Join(res.Dropped, ", "))
		}
		schema := ds.Schema()
		if len(schema) == 0 {
			fmt.Fprintln(out, "(no columns)")
			return nil
		}
		for _, col := range schema {
			fmt.Fprintf(out, "- %s (%s): %s\n", col.Name, col.Kind, roleList(columns.RolesFor(col.Name, col.Kind)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}

func roleList(rs columns.RoleSet) string {
	var names []string
	for _, r := range []columns.Role{columns.RoleSatisfaction, columns.RoleRecommendation, columns.RoleText} {
		if rs.Has(r) {
			names = append(names, string(r))
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
