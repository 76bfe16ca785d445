package main

import (
	"os"

	"github.com/spf13/cobra"

	"worldexplorer/internal/client/api"
	"worldexplorer/internal/client/session"
)

const defaultServerURL = "http://localhost:8080/api"

// rootConfig holds flags shared by every subcommand.
type rootConfig struct {
	serverURL string
	tokenPath string
}

// NewRootCmd creates the root command for the explorer CLI.
func NewRootCmd() *cobra.Command {
	cfg := &rootConfig{}

	cmd := &cobra.Command{
		Use:           "explorer",
		Short:         "WorldExplorer - browse countries from your terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	serverURL := os.Getenv("WORLDEXPLORER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}
	cmd.PersistentFlags().StringVar(&cfg.serverURL, "server", serverURL, "server base URL")
	cmd.PersistentFlags().StringVar(&cfg.tokenPath, "token-file", "", "token file path (default: user config dir)")

	cmd.AddCommand(newRegisterCmd(cfg))
	cmd.AddCommand(newLoginCmd(cfg))
	cmd.AddCommand(newMeCmd(cfg))
	cmd.AddCommand(newLogoutCmd(cfg))
	cmd.AddCommand(newCountriesCmd(cfg))

	return cmd
}

func (c *rootConfig) client() *api.Client {
	return api.New(c.serverURL, nil)
}

func (c *rootConfig) store() (*session.Store, error) {
	path := c.tokenPath
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return session.NewStore(c.client(), path), nil
}
