package cmd

import (
	"fmt"

	"github.com/kasuboski/renamez/config"
	"github.com/kasuboski/renamez/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listTorrentsCmd represents the list torrents command
var listTorrentsCmd = &cobra.Command{
	Use:   "torrents",
	Short: "list torrents",
	Long:  `list torrents, or the entries of library.dir when it is set, with the name each would be renamed to`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			return fmt.Errorf("failed to read configurations: %w", err)
		}

		client, source := newCollaborator(cfg)
		entries, err := client.List(cmd.Context())
		if err != nil {
			return err
		}

		log.Debugw("listed entries", "source", source, "count", len(entries))
		fmt.Fprintln(cmd.OutOrStdout(), renderEntries(entries))
		return nil
	},
}

func init() {
	listCmd.AddCommand(listTorrentsCmd)
}
