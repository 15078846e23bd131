package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ArtemKolodko/band-oracle-updater/cmd/updater/app"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/config"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the update loop",
	Long: `Start the update loop with the specified configuration.

This command will:
1. Load configuration from the .env file, the config file and environment
2. Validate it and build the signer
3. Call pullDataAndCache() on every contract, then wait the update interval, forever
4. Stop on SIGINT or SIGTERM`,
	PreRunE: validateStartFlags,
	Run:     runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

// validateStartFlags checks the signing key flags do not conflict
func validateStartFlags(cmd *cobra.Command, args []string) error {
	if signingKeyPath != "" && signingKeyPriv != "" {
		return errors.New("cannot use both --signing-key-path and --signing-key-priv at the same time")
	}
	if signingKeyPath != "" && password == "" {
		return errors.New("--password is required when using --signing-key-path")
	}
	return nil
}

func runStart(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(ctx, &app.Options{
		ConfigPath:     cfgFile,
		EnvFile:        envFile,
		SigningKeyPriv: signingKeyPriv,
		SigningKeyPath: signingKeyPath,
		Password:       password,
		Debug:          debugMode,
	})

	if err := application.Init(); err != nil {
		// startup failures are never retried
		var vErr *config.ValidationError
		if errors.As(err, &vErr) {
			log.Fatal().Str("field", vErr.Field).Msg(vErr.Error())
		}
		log.Fatal().Err(err).Msg("Failed to start updater")
	}

	if err := application.Run(); err != nil {
		log.Fatal().Err(err).Msg("Updater stopped with error")
	}
	log.Info().Msg("Updater stopped")
}
