package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agrilearn/agrilearn/internal/api"
	"github.com/agrilearn/agrilearn/internal/listview"
	"github.com/agrilearn/agrilearn/internal/storage"
)

func addForum(topLevel *cobra.Command) {
	forum := &cobra.Command{
		Use:   "forum",
		Short: "Browse and post on the community forum",
	}

	var (
		page   int
		query  string
		follow bool
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cached forum threads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if follow {
				threads, err := e.client.ListThreads(cmd.Context())
				if err != nil {
					return err
				}
				if err := e.store.ReplaceThreads(threads); err != nil {
					return err
				}
			}

			threads, err := e.store.GetThreads()
			if err != nil {
				return err
			}

			ctrl := listview.New(e.cfg.UI.PageSizes.Forum,
				func(t *storage.Thread, q string) bool {
					return listview.KeywordMatch(t.Title, t.Keywords, q)
				})
			ctrl.SetItems(threads)
			ctrl.SetSearchText(query)
			ctrl.SetPage(page)

			if ctrl.TotalItems() == 0 {
				fmt.Println("No threads. Run 'agrilearn forum list --refresh' first.")
				return nil
			}

			for _, t := range ctrl.VisiblePage() {
				fmt.Printf("%s  %s\n", t.ID, t.Title)
			}
			fmt.Printf("\nPage %d/%d (%d threads)\n", ctrl.Page(), ctrl.TotalPages(), ctrl.TotalItems())
			return nil
		},
	}
	listCmd.Flags().IntVarP(&page, "page", "p", 1, "page to show")
	listCmd.Flags().StringVarP(&query, "query", "q", "", "filter by title or keyword")
	listCmd.Flags().BoolVarP(&follow, "refresh", "r", false, "fetch from the API before listing")

	var (
		content  string
		keywords string
	)

	post := &cobra.Command{
		Use:   "post <title>",
		Short: "Start a new discussion (max 3 keywords)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if !e.sess.IsLoggedIn() {
				return fmt.Errorf("posting requires a session, run 'agrilearn login' first")
			}

			thread, err := e.client.CreateThread(cmd.Context(), api.ThreadDraft{
				Title:    args[0],
				Content:  content,
				Keywords: keywords,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Posted thread %s\n", thread.ID)
			return nil
		},
	}
	post.Flags().StringVarP(&content, "content", "m", "", "thread body")
	post.Flags().StringVarP(&keywords, "keywords", "k", "", "comma-separated keywords, at most 3")

	reply := &cobra.Command{
		Use:   "reply <thread-id> <content>",
		Short: "Reply to a discussion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if !e.sess.IsLoggedIn() {
				return fmt.Errorf("replying requires a session, run 'agrilearn login' first")
			}

			if _, err := e.client.ReplyToThread(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Reply posted")
			return nil
		},
	}

	forum.AddCommand(listCmd, post, reply)
	topLevel.AddCommand(forum)
}
