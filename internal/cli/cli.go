package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agrilearn/agrilearn/internal/api"
	"github.com/agrilearn/agrilearn/internal/config"
	"github.com/agrilearn/agrilearn/internal/logging"
	"github.com/agrilearn/agrilearn/internal/session"
	"github.com/agrilearn/agrilearn/internal/storage"
)

var (
	flagConfig string
	flagDB     string
)

// New builds the root command. The bare invocation launches the
// interactive terminal app; everything else is a subcommand.
func New(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "agrilearn",
		Short:         "Agricultural learning companion for the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to configuration file")
	cmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to cache database (overrides config)")
	cmd.Flags().Bool("quiet", false, "skip startup banner")

	addAuth(cmd)
	addForum(cmd)
	addSync(cmd)
	addSearch(cmd)
	addWeather(cmd)
	addNews(cmd)
	addAdmin(cmd)
	addGenerateConfig(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("agrilearn %s\n", version)
			fmt.Println("Agricultural learning companion")
			fmt.Println("github.com/agrilearn/agrilearn")
		},
	})

	return cmd
}

// env bundles everything a command needs to talk to the platform.
type env struct {
	cfg    *config.Config
	store  *storage.Store
	sess   *session.Session
	client *api.Client
}

func openEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDB != "" {
		cfg.Cache.Path = flagDB
	}

	if err := logging.Setup(cfg.Log.Level, cfg.Log.Path); err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	store, err := storage.NewStore(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	sess, err := session.Load(store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("loading session: %w", err)
	}

	client, err := api.NewClient(cfg, sess)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &env{cfg: cfg, store: store, sess: sess, client: client}, nil
}

func (e *env) close() {
	logging.Sync()
	_ = e.store.Close()
}
