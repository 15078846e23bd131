package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ArtemKolodko/band-oracle-updater/pkg/version"
)

const defaultConfigPath = "./config/updater.yaml"

var (
	// Global flags
	cfgFile        string
	envFile        string
	signingKeyPath string
	signingKeyPriv string
	password       string
	debugMode      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "updater",
	Short: "Band oracle reader updater",
	Long: `Band oracle reader updater periodically calls pullDataAndCache()
on a list of BandOracleReader contracts with a single signing key.

Configuration is read from a YAML file and UPDATER_* environment variables.

Signing Key Options:
1. Use keystore file:
   --signing-key-path /path/to/keystore.json --password yourpassword

2. Use private key directly:
   --signing-key-priv 0x123...abc

3. Set UPDATER_PRIVATE_KEY in the environment`,
	Version:       fmt.Sprintf("%s (Build: %s, Commit: %s)", version.Version, version.BuildTime, version.GitCommit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("Command failed")
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is "+defaultConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "",
		"dotenv file with UPDATER_* variables (default is ./.env when present)")
	rootCmd.PersistentFlags().StringVar(&signingKeyPath, "signing-key-path", "",
		"path to signing keystore file")
	rootCmd.PersistentFlags().StringVar(&signingKeyPriv, "signing-key-priv", "",
		"ECDSA private key in hex format")
	rootCmd.PersistentFlags().StringVar(&password, "password", "",
		"password for keystore (required only when using --signing-key-path)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"enable debug logging")

	rootCmd.SetVersionTemplate(`Version: {{.Version}}
`)
}

// initConfig resolves the config file path. Without a file the updater runs
// from environment variables only.
func initConfig() {
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			log.Fatal().Str("path", cfgFile).Msg("Config file not found")
		}
		return
	}

	if _, err := os.Stat(defaultConfigPath); err == nil {
		cfgFile = defaultConfigPath
		return
	}
	log.Debug().Str("path", defaultConfigPath).Msg("Default config file not found, using environment only")
}
