package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"buildmyhome/internal/client"
	"buildmyhome/internal/config"
	"buildmyhome/internal/session"
)

var (
	home      string
	apiBase   string
	storeKind string
	offline   bool

	cfg   *config.Config
	store session.Store
	api   *client.APIClient
)

func Execute() error {
	root := &cobra.Command{
		Use:           "builder",
		Short:         "Design a custom home and get a cost estimate",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			if home == "" {
				home = cfg.Client.StateDir
			}
			if apiBase == "" {
				apiBase = cfg.Client.APIBase
			}
			if storeKind == "" {
				storeKind = cfg.Client.SessionStore
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			store, err = openStore(storeKind, home)
			if err != nil {
				return err
			}
			if !offline {
				api = client.New(apiBase, cfg.Estimation.RemoteTimeout)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c, ok := store.(io.Closer); ok {
				return c.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.buildmyhome)")
	root.PersistentFlags().StringVar(&apiBase, "api", "", "API base URL (e.g. http://127.0.0.1:8080/api/v1)")
	root.PersistentFlags().StringVar(&storeKind, "store", "", "session store: file or sqlite")
	root.PersistentFlags().BoolVar(&offline, "offline", false, "never contact the API")

	root.AddCommand(wizardCmd(), estimateCmd(), plansCmd(), packagesCmd())
	return root.Execute()
}

func openStore(kind, dir string) (session.Store, error) {
	switch kind {
	case "file":
		return session.NewFileStore(filepath.Join(dir, "session"))
	case "sqlite":
		return session.OpenSQLite(filepath.Join(dir, "session.db"))
	default:
		return nil, fmt.Errorf("unknown session store %q (want file or sqlite)", kind)
	}
}

// requireAPI fails commands that only make sense against the server
func requireAPI() error {
	if api == nil {
		return fmt.Errorf("this command needs the API; drop --offline")
	}
	return nil
}
