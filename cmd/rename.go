package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/kasuboski/renamez/config"
	"github.com/kasuboski/renamez/pkg/download"
	mhttp "github.com/kasuboski/renamez/pkg/http"
	mio "github.com/kasuboski/renamez/pkg/io"
	"github.com/kasuboski/renamez/pkg/library"
	"github.com/kasuboski/renamez/pkg/logger"
	"github.com/kasuboski/renamez/pkg/prompt"
	"github.com/kasuboski/renamez/pkg/storage"
	"github.com/kasuboski/renamez/pkg/storage/sqlite"
	"github.com/kasuboski/renamez/pkg/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dryRun bool

	errLocked = errors.New("another rename session is already running")
)

// renameCmd represents the rename command
var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "interactively rename torrents or library files",
	Long: `list every torrent in Transmission, or every entry of --dir, and propose a canonical name for each.
Each proposal can be accepted, skipped, edited or the whole session cancelled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			return fmt.Errorf("failed to read configurations: %w", err)
		}

		out := cmd.OutOrStdout()
		return runRename(ctx, prompt.New(cmd.InOrStdin(), out), out, cfg, dryRun)
	},
}

// newCollaborator builds the client renames are applied through and the source recorded with them
func newCollaborator(cfg config.Config) (download.Client, string) {
	if cfg.Library.Dir != "" {
		return library.New(cfg.Library.Dir, &mio.LocalFileSystem{}), storage.SourceLibrary
	}

	maxRetries := cfg.Transmission.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	opts := []mhttp.ClientOption{
		mhttp.WithBasicAuth(cfg.Transmission.Username, cfg.Transmission.Password),
		mhttp.WithMaxRetries(maxRetries),
	}
	if cfg.Transmission.Timeout > 0 {
		opts = append(opts, mhttp.WithTimeout(cfg.Transmission.Timeout))
	}

	client := download.NewTransmissionClient(mhttp.NewClient(opts...), cfg.Transmission.Scheme, cfg.Transmission.Host, cfg.Transmission.Port)
	return client, storage.SourceTransmission
}

func runRename(ctx context.Context, term *prompt.Terminal, out io.Writer, cfg config.Config, dryRun bool) error {
	log := logger.FromCtx(ctx)

	client, source := newCollaborator(cfg)
	opts := []workflow.RunnerOption{workflow.WithSource(source)}

	if dryRun {
		proposals, err := workflow.NewRunner(client, term, opts...).Plan(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, renderProposals(proposals))
		return nil
	}

	if cfg.Storage.LockFile != "" {
		lock := flock.New(cfg.Storage.LockFile)
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return errLocked
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				log.Warnw("failed to release lock", "lock", cfg.Storage.LockFile, "error", err)
			}
		}()
	}

	if cfg.Storage.FilePath != "" {
		store, err := sqlite.New(ctx, cfg.Storage.FilePath)
		if err != nil {
			return fmt.Errorf("failed to create storage connection: %w", err)
		}
		defer store.Close()

		if err := store.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		opts = append(opts, workflow.WithRecorder(store))
	}

	runner := workflow.NewRunner(client, term, opts...)
	log.Debugw("starting rename session", "session", runner.SessionID().String(), "source", source)

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	term.Summary(summary)
	return nil
}

func init() {
	renameCmd.Flags().String("host", "", "transmission host")
	renameCmd.Flags().Int("port", 0, "transmission port")
	renameCmd.Flags().String("scheme", "", "transmission scheme, http or https")
	renameCmd.Flags().String("username", "", "transmission username")
	renameCmd.Flags().String("password", "", "transmission password")
	renameCmd.Flags().String("dir", "", "rename entries of this directory instead of torrents")
	renameCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the proposed names without renaming anything")

	viper.BindPFlag("transmission.host", renameCmd.Flags().Lookup("host"))
	viper.BindPFlag("transmission.port", renameCmd.Flags().Lookup("port"))
	viper.BindPFlag("transmission.scheme", renameCmd.Flags().Lookup("scheme"))
	viper.BindPFlag("transmission.username", renameCmd.Flags().Lookup("username"))
	viper.BindPFlag("transmission.password", renameCmd.Flags().Lookup("password"))
	viper.BindPFlag("library.dir", renameCmd.Flags().Lookup("dir"))

	rootCmd.AddCommand(renameCmd)
}
