package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agrilearn/agrilearn/internal/api"
	"github.com/agrilearn/agrilearn/internal/listview"
	"github.com/agrilearn/agrilearn/internal/storage"
)

func addAdmin(topLevel *cobra.Command) {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Content management (requires an admin account)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Cheap local gate; the API enforces the role server-side.
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()
			if !e.sess.IsAdmin() {
				return fmt.Errorf("admin commands require an admin session, run 'agrilearn login' first")
			}
			return nil
		},
	}

	admin.AddCommand(
		adminArticleCmd(),
		adminVideoCmd(),
		adminThreadCmd(),
		adminUsersCmd(),
	)

	topLevel.AddCommand(admin)
}

func adminArticleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "article",
		Short: "Manage articles",
	}

	var (
		description string
		categoryID  string
		imagePath   string
	)

	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Publish a new article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			draft := api.ArticleDraft{
				Title:       args[0],
				Description: description,
				CategoryID:  categoryID,
			}
			if imagePath != "" {
				part, err := api.FileFromPath(imagePath)
				if err != nil {
					return err
				}
				draft.Image = part
			}

			article, err := e.client.CreateArticle(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Printf("Created article %s\n", article.ID)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "article body (HTML allowed, sanitized on read)")
	create.Flags().StringVarP(&categoryID, "category", "c", "", "category ID")
	create.Flags().StringVar(&imagePath, "image", "", "path to a cover image")

	update := &cobra.Command{
		Use:   "update <id> <title>",
		Short: "Update an existing article",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			draft := api.ArticleDraft{
				Title:       args[1],
				Description: description,
				CategoryID:  categoryID,
			}
			if imagePath != "" {
				part, err := api.FileFromPath(imagePath)
				if err != nil {
					return err
				}
				draft.Image = part
			}

			if _, err := e.client.UpdateArticle(cmd.Context(), args[0], draft); err != nil {
				return err
			}
			fmt.Println("Updated")
			return nil
		},
	}
	update.Flags().StringVarP(&description, "description", "d", "", "article body")
	update.Flags().StringVarP(&categoryID, "category", "c", "", "category ID")
	update.Flags().StringVar(&imagePath, "image", "", "path to a cover image")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.client.DeleteArticle(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted")
			return nil
		},
	}

	cmd.AddCommand(create, update, del)
	return cmd
}

func adminVideoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Manage video tutorials",
	}

	var (
		description string
		categoryID  string
		videoURL    string
	)

	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Publish a new video tutorial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			video, err := e.client.CreateVideo(cmd.Context(), api.VideoDraft{
				Title:       args[0],
				Description: description,
				URL:         videoURL,
				CategoryID:  categoryID,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created video %s\n", video.ID)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "video description")
	create.Flags().StringVarP(&categoryID, "category", "c", "", "category ID")
	create.Flags().StringVarP(&videoURL, "url", "u", "", "video URL")

	update := &cobra.Command{
		Use:   "update <id> <title>",
		Short: "Update an existing video tutorial",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if _, err := e.client.UpdateVideo(cmd.Context(), args[0], api.VideoDraft{
				Title:       args[1],
				Description: description,
				URL:         videoURL,
				CategoryID:  categoryID,
			}); err != nil {
				return err
			}
			fmt.Println("Updated")
			return nil
		},
	}
	update.Flags().StringVarP(&description, "description", "d", "", "video description")
	update.Flags().StringVarP(&categoryID, "category", "c", "", "category ID")
	update.Flags().StringVarP(&videoURL, "url", "u", "", "video URL")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a video tutorial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.client.DeleteVideo(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted")
			return nil
		},
	}

	cmd.AddCommand(create, update, del)
	return cmd
}

func adminThreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread",
		Short: "Moderate forum threads",
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a thread and its replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.client.DeleteThread(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted")
			return nil
		},
	}

	cmd.AddCommand(del)
	return cmd
}

func adminUsersCmd() *cobra.Command {
	var (
		page  int
		query string
	)

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			users, err := e.client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			ctrl := listview.New(e.cfg.UI.PageSizes.Admin,
				func(u *storage.User, q string) bool {
					return listview.TitleMatch(u.Name, q) || listview.ContainsFold(u.Email, q)
				})
			ctrl.SetItems(users)
			ctrl.SetSearchText(query)
			ctrl.SetPage(page)

			for _, u := range ctrl.VisiblePage() {
				fmt.Printf("%-28s %-32s %s\n", u.Name, u.Email, u.Role)
			}
			fmt.Printf("\nPage %d/%d (%d users)\n", ctrl.Page(), ctrl.TotalPages(), ctrl.TotalItems())
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to show")
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by name or email")

	return cmd
}
