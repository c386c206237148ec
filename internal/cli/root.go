// Package cli implements the albertonet operator commands.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tizor98/albertonet-sub000/internal/config"
)

var cfg config.Config

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "albertonet",
		Short: "Operator tooling for the albertonet content tree",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().String("backend", "", "storage backend (fs or s3)")
	root.PersistentFlags().String("bucket", "", "content bucket for the s3 backend")
	root.PersistentFlags().String("root", "", "content root for the fs backend")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newPostsCmd())
	return root
}

// initConfig layers an optional albertonet.yaml, ALBERTONET_* environment
// variables and command flags over the environment defaults.
func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	v.SetConfigName("albertonet")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("ALBERTONET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := config.Load()
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.bucket", defaults.Storage.Bucket)
	v.SetDefault("storage.root", defaults.Storage.Root)
	v.SetDefault("storage.max_items", defaults.Storage.MaxItems)
	v.SetDefault("content.posts_prefix", defaults.Content.PostsPrefix)
	v.SetDefault("content.top_posts_key", defaults.Content.TopPostsKey)
	v.SetDefault("content.projects_key", defaults.Content.ProjectsKey)
	v.SetDefault("content.retry_count", defaults.Content.RetryCount)
	v.SetDefault("content.retry_backoff", defaults.Content.RetryBackoff)
	v.SetDefault("site.title", defaults.Site.Title)
	v.SetDefault("site.url", defaults.Site.URL)
	v.SetDefault("site.description", defaults.Site.Description)
	v.SetDefault("site.author", defaults.Site.Author)
	v.SetDefault("site.default_locale", defaults.Site.DefaultLocale)
	v.SetDefault("contact.function_url", defaults.Contact.FunctionURL)
	v.SetDefault("contact.timeout", defaults.Contact.Timeout)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	for key, name := range map[string]string{
		"storage.backend": "backend",
		"storage.bucket":  "bucket",
		"storage.root":    "root",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}
