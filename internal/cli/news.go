package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agrilearn/agrilearn/internal/news"
)

func addNews(topLevel *cobra.Command) {
	var (
		refresh bool
		force   bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show cached agriculture news headlines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if refresh || force {
				manager := news.NewManager(e.store, e.cfg)
				manager.SetForceRefresh(force)
				if err := manager.RefreshAll(cmd.Context()); err != nil {
					fmt.Printf("Some feeds failed: %v\n", err)
				}
			}

			items, err := e.store.GetNewsItems(limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No cached news. Run 'agrilearn news --refresh' first.")
				return nil
			}

			for _, item := range items {
				marker := " "
				if !item.Read {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, item.Title)
				fmt.Printf("  %s  %s\n", item.Published.Format("2006-01-02"), item.URL)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "fetch feeds before listing")
	cmd.Flags().BoolVar(&force, "force", false, "refresh even within the configured interval")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of headlines")

	topLevel.AddCommand(cmd)
}
