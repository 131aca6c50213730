/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/allbin/boardfinder"
	"github.com/spf13/cobra"
)

// familiesCmd represents the families command
var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List known device families and their keywords",
	Long: `List the device family signature table in matching order.

A device belongs to the first family with a keyword contained in its
description. Families from the configuration file are appended after the
built-in ones.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printFamilies(app.stdout, app.table)
	},
}

func init() {
	rootCmd.AddCommand(familiesCmd)
}

func printFamilies(w io.Writer, t *boardfinder.Table) {
	builtin := boardfinder.DefaultTable()

	rows := make([][]string, 0, len(t.Families()))
	for i, sig := range t.Signatures() {
		source := "config"
		if builtin.Has(sig.Family) {
			source = "built-in"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			sig.Family,
			strings.Join(sig.Keywords, ", "),
			source,
		})
	}
	fmt.Fprintln(w, renderTable([]string{"#", "Family", "Keywords", "Source"}, rows))
}
