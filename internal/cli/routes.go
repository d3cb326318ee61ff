package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/parkview/internal/ui"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the UI routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tNAME\tTITLE\tACCESS\tLOAD\tENDPOINT")
			for _, r := range ui.RouteTable() {
				access := "any"
				if r.Admin {
					access = "admin"
				}
				load := "lazy"
				if r.Eager {
					load = "eager"
				}
				endpoint := r.Endpoint
				if endpoint == "" {
					endpoint = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Path, r.Name, r.Title, access, load, endpoint)
			}
			return w.Flush()
		},
	}
}
