package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"osint-desk/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	appCfg  config.Config
)

// keys that may be overridden from the environment as OSINT_<KEY>, dots become underscores
var envKeys = []string{
	"app.log_level",
	"dataset.path",
	"dataset.region",
	"redis.addr",
	"redis.username",
	"redis.password",
	"redis.db",
	"lock.enabled",
	"lock.ttl",
	"openai.api_key",
	"openai.model",
	"openai.base_url",
	"server.addr",
	"briefing.output_dir",
}

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:          "osint-desk",
	Short:        "OSINT event desk CLI",
	Long:         "Imports OSINT event exports into the dashboard dataset and serves, filters and briefs it.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/osint-desk")
		v.AddConfigPath("configs")
	}

	v.SetEnvPrefix("OSINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing config: %v\n", err)
		os.Exit(1)
	}

	appCfg.FillDefaults()
	if err := appCfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	lvl, _ := config.ParseLevel(appCfg.App.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// GetConfig exposes the loaded configuration to subcommands.
func GetConfig() config.Config {
	return appCfg
}
