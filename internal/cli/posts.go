package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tizor98/albertonet-sub000/internal/content"
	"github.com/tizor98/albertonet-sub000/internal/store"
)

func newPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List the post catalog from the configured backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			st, err := store.New(cfg.Storage)
			if err != nil {
				return err
			}

			posts, err := content.NewService(st, cfg.Content).Posts(cmd.Context())
			if err != nil {
				return err
			}

			for _, post := range posts {
				fmt.Printf("%s  %-30s  %s\n", post.PublicationDate.Format("2006-01-02"), post.Slug, post.Title)
			}
			fmt.Printf("%d posts\n", len(posts))
			return nil
		},
	}
}
