package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"didauth/internal/app"
)

var (
	home       string
	configPath string
	passphrase string
	relayURL   string
	logLevel   string
	wire       *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return newRoot().ExecuteContext(ctx)
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "didauth",
		Short:         "DID challenge-response authentication CLI",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			dir := home
			if dir == "" {
				dir = os.Getenv(app.EnvHome)
			}
			if dir == "" {
				dir = app.DefaultHome()
			}
			path := configPath
			if path == "" {
				path = filepath.Join(dir, app.ConfigFilename)
			}

			cfg, err := app.LoadConfig(path)
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if relayURL != "" {
				cfg.RelayURL = relayURL
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}

			w, err := app.NewWire(cfg, cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.didauth, or $"+app.EnvHome+")")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/"+app.ConfigFilename+")")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the mnemonic")
	root.PersistentFlags().StringVar(&relayURL, "relay", "", "relay base URL (e.g. http://127.0.0.1:8080)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		initCmd(),
		importCmd(),
		didCmd(),
		pathCmd(),
		deriveCmd(),
		startCmd(),
		verifyCmd(),
		sendCmd(),
		recvCmd(),
	)
	return root
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}
