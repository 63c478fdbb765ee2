package commands

import (
	"github.com/spf13/cobra"

	"github.com/talentscout/candidatevault/internal/archive"
	"github.com/talentscout/candidatevault/internal/config"
	"github.com/talentscout/candidatevault/internal/cryptox"
	"github.com/talentscout/candidatevault/internal/logging"
	"github.com/talentscout/candidatevault/internal/repository/repomanager"
	"github.com/talentscout/candidatevault/internal/vault"
)

var (
	configFile    string
	dataDir       string
	databaseDSN   string
	retentionDays int
	logLevel      string

	cfg    *config.Config
	logger logging.Logger
	repos  repomanager.Manager
	svc    *vault.Service
)

func Execute() error {
	root := &cobra.Command{
		Use:          "candidatevault",
		Short:        "Privacy store for candidate intake data",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("dsn") {
				cfg.DatabaseDSN = databaseDSN
			}
			if cmd.Flags().Changed("retention-days") {
				cfg.RetentionDays = retentionDays
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			logger = logging.NewDefault(cfg.LogLevel)

			if cfg.DatabaseDSN != "" {
				repos, err = repomanager.NewPostgresManager(cmd.Context(), cfg.DatabaseDSN, cfg.DataDir, logger)
			} else {
				repos, err = repomanager.NewFileManager(cfg.DataDir, logger)
			}
			if err != nil {
				return err
			}

			var sealer cryptox.Sealer = cryptox.Passthrough{}
			if cfg.EncryptData {
				key, err := cryptox.LoadOrCreateKey(cfg.KeyPath())
				if err != nil {
					return err
				}
				box, err := cryptox.NewBox(key)
				if err != nil {
					return err
				}
				sealer = box
			}

			var archiver vault.Archiver
			if a := archive.NewS3Archiver(cfg); a != nil {
				archiver = a
			}

			svc = vault.New(repos, sealer, cfg.EncryptData, vault.SystemClock(), archiver, cfg.RetentionDays, logger)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if repos != nil {
				return repos.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to JSON config file")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "data directory")
	root.PersistentFlags().StringVar(&databaseDSN, "dsn", "", "PostgreSQL DSN (empty selects the file backend)")
	root.PersistentFlags().IntVar(&retentionDays, "retention-days", 30, "retention window in days")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")

	root.AddCommand(saveCmd(), loadCmd(), exportCmd(), deleteCmd(), findCmd(), reportCmd(), maintenanceCmd())
	return root.Execute()
}
