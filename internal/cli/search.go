package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func addSearch(topLevel *cobra.Command) {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search cached articles, videos, and forum threads",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			query := strings.Join(args, " ")
			results, err := newSearcher(e).Search(query, limit)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No results")
				return nil
			}

			for _, r := range results {
				fmt.Printf("[%s] %s\n", r.Kind, r.Title)
				if r.Snippet != "" {
					fmt.Printf("    %s\n", r.Snippet)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of results")

	topLevel.AddCommand(cmd)
}
