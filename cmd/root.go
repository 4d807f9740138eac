package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/kasuboski/renamez/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "renamez",
	Short:        "rename movie torrents to a canonical name",
	Long:         `renamez proposes "Title (Year) - Resolution.ext" names for torrents or library files and applies the ones you accept`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(zap.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd.Context(), os.Stdin, os.Stdout)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

const (
	defaultTransmissionTimeout = time.Second * 30
)

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("RENAMEZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("transmission.scheme", "http")
	viper.SetDefault("transmission.host", "localhost")
	viper.SetDefault("transmission.port", 9091)
	viper.SetDefault("transmission.username", "")
	viper.SetDefault("transmission.password", "")
	viper.SetDefault("transmission.timeout", defaultTransmissionTimeout)
	viper.SetDefault("transmission.maxRetries", 1)

	viper.SetDefault("library.dir", "")

	viper.SetDefault("storage.filePath", "renamez.sqlite")
	viper.SetDefault("storage.lockFile", "renamez.lock")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.rateLimit", 10)
	viper.SetDefault("server.burst", 20)
}
