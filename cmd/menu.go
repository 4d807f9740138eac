package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kasuboski/renamez/config"
	"github.com/kasuboski/renamez/pkg/prompt"
	"github.com/spf13/viper"
)

// runMenu asks which mode to run: renaming against Transmission or the parser test mode
func runMenu(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := prompt.New(in, out)

	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Transmission movie renamer")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Select an option:")
	fmt.Fprintln(out, "1. Rename torrents in Transmission")
	fmt.Fprintln(out, "2. Test mode (try names)")
	fmt.Fprintln(out)

	choice, err := term.ReadLine(ctx, "Option (1/2): ")
	if err != nil {
		return exitQuietly(err)
	}
	fmt.Fprintln(out)

	switch choice {
	case "1":
		cfg, err := config.New(viper.GetViper())
		if err != nil {
			return fmt.Errorf("failed to read configurations: %w", err)
		}

		settings, err := term.Connection(ctx, prompt.ConnectionSettings{
			Host: cfg.Transmission.Host,
			Port: cfg.Transmission.Port,
		})
		if err != nil {
			return exitQuietly(err)
		}

		cfg.Transmission.Host = settings.Host
		cfg.Transmission.Port = settings.Port
		cfg.Transmission.Username = settings.Username
		cfg.Transmission.Password = settings.Password
		cfg.Library.Dir = ""

		return runRename(ctx, term, out, cfg, false)
	case "2":
		return runREPL(ctx, term, out, true)
	default:
		fmt.Fprintln(out, "Invalid option")
		return nil
	}
}

// exitQuietly treats end of input and interrupts as a normal exit
func exitQuietly(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
