package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/kasuboski/renamez/config"
	"github.com/kasuboski/renamez/pkg/storage"
	"github.com/kasuboski/renamez/pkg/storage/sqlite"
	"github.com/kasuboski/renamez/pkg/storage/sqlite/schema/gen/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	historyLimit   int
	historySession string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "list applied renames",
	Long:  `list applied renames, newest first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New(viper.GetViper())
		if err != nil {
			return fmt.Errorf("failed to read configurations: %w", err)
		}

		store, err := sqlite.New(cmd.Context(), cfg.Storage.FilePath)
		if err != nil {
			return fmt.Errorf("failed to create storage connection: %w", err)
		}
		defer store.Close()

		if err := store.RunMigrations(cmd.Context()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		return printHistory(cmd.Context(), cmd.OutOrStdout(), store, historyLimit, historySession)
	},
}

func printHistory(ctx context.Context, out io.Writer, store storage.RenameStorage, limit int, session string) error {
	var err error
	var renames []*model.Rename
	if session != "" {
		renames, err = store.ListRenamesBySession(ctx, session)
	} else {
		renames, err = store.ListRenames(ctx, limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list renames: %w", err)
	}

	if len(renames) == 0 {
		fmt.Fprintln(out, "No renames recorded")
		return nil
	}

	fmt.Fprintln(out, renderHistory(renames))
	return nil
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of renames to show, 0 for all")
	historyCmd.Flags().StringVar(&historySession, "session", "", "only show renames of this session")
	rootCmd.AddCommand(historyCmd)
}
