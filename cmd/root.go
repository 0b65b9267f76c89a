package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/enroll/internal/config"
	"github.com/zjrosen/enroll/internal/log"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "enroll <program> <user>",
	Short: "Enroll users into training programs",
	Long: `Enroll a user into a training program.

Each program runs its own enrollment steps (request tracking, provisioning,
scheduling, mentor matching) against the configured collaborator services.

Examples:
  enroll cashier alice
  enroll inventory bob --format json
  enroll programs:list`,
	Version:           version,
	Args:              cobra.ExactArgs(2),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { teardown() },
	RunE:              runEnroll,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .enroll/config.yaml or ~/.config/enroll/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging (also ENROLL_DEBUG)")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text or json")
}

func initConfig() {
	setViperDefaults(viper.GetViper(), config.Defaults())
	viper.SetEnvPrefix("ENROLL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .enroll/config.yaml (current directory)
		// 2. ~/.config/enroll/config.yaml (user config)
		if _, err := os.Stat(".enroll/config.yaml"); err == nil {
			viper.SetConfigFile(".enroll/config.yaml")
		} else {
			viper.AddConfigPath(config.ConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func setViperDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("http.read_timeout", d.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", d.HTTP.WriteTimeout)
	v.SetDefault("http.shutdown_timeout", d.HTTP.ShutdownTimeout)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("mentors", d.Mentors)
	v.SetDefault("scheduling.lead_time", d.Scheduling.LeadTime)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// setup initializes logging and validates the loaded configuration.
func setup(_ *cobra.Command, _ []string) error {
	if debugFlag || os.Getenv("ENROLL_DEBUG") != "" {
		if cfg.LogFile != "" {
			cleanup, err := log.Init(cfg.LogFile)
			if err != nil {
				return fmt.Errorf("initializing logging: %w", err)
			}
			logCleanup = cleanup
		} else {
			log.InitWriter(os.Stderr)
		}
		log.SetMinLevel(log.ParseLevel(cfg.LogLevel))
		if debugFlag {
			log.SetMinLevel(log.LevelDebug)
		}
		log.Debug(log.CatConfig, "config loaded", "file", viper.ConfigFileUsed(), "db_path", cfg.DBPath)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func teardown() {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	log.Reset()
}

// configPath returns the config file in use, or where a new one should go.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(config.ConfigDir(), "config.yaml")
}

// Execute runs the root command
func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
