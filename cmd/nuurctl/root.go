package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jrsteele09/nuur-client/apiclient"
	"github.com/jrsteele09/nuur-client/internal/config"
	"github.com/jrsteele09/nuur-client/internal/logging"
	"github.com/jrsteele09/nuur-client/sessions"
	"github.com/jrsteele09/nuur-client/sessions/filestore"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	apiURL  string
	dataDir string
	verbose bool

	client  *apiclient.Client
	session *sessions.Store
)

var rootCmd = &cobra.Command{
	Use:   "nuurctl",
	Short: "Command line client for the NuuR safety API",
	Long: `nuurctl signs in to the NuuR backend and manages your profile, emergency
contacts, tracked paths, emergency reports and anti-theft settings.

The session is kept in $FOLDER/nuur-auth-storage.json and refreshed
automatically. Set SESSION_PASSPHRASE to encrypt it at rest.

Example usage:
  nuurctl login --email hana@example.com --password ...
  nuurctl whoami
  nuurctl contacts list
  nuurctl emergency nearby --lat 9.03 --lon 38.74`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initClient(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (default $NUUR_API_URL)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "session folder (default $FOLDER)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// cliConfig lets flags override the environment.
type cliConfig struct {
	config.Config
	apiURL  string
	dataDir string
}

func (c cliConfig) GetAPIBaseURL() string {
	if c.apiURL != "" {
		return strings.TrimRight(c.apiURL, "/")
	}
	return c.Config.GetAPIBaseURL()
}

func (c cliConfig) GetDataFolder() string {
	if c.dataDir != "" {
		return c.dataDir
	}
	return c.Config.GetDataFolder()
}

func initClient(cmd *cobra.Command) error {
	cfg := cliConfig{Config: config.New(), apiURL: apiURL, dataDir: dataDir}

	level := cfg.GetLogLevel()
	if verbose {
		level = "debug"
	}
	logger := logging.SetupWriter(cmd.ErrOrStderr(), cfg.GetEnv(), level)

	var opts []filestore.Option
	if p := cfg.GetSessionPassphrase(); p != "" {
		opts = append(opts, filestore.WithPassphrase(p))
	}
	store, err := sessions.Open(filestore.New(cfg.GetDataFolder(), opts...), sessions.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	session = store

	client = apiclient.New(cfg, store,
		apiclient.WithLogger(logger),
		apiclient.WithRefreshCoalescing(),
		apiclient.WithNavigator(apiclient.NavigatorFunc(func(string) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Your session has ended. Run `nuurctl login` to sign in again.")
		})),
	)
	log.Debug().Str("api", cfg.GetAPIBaseURL()).Msg("client ready")
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult prints the data of a successful envelope.
func printResult[T any](cmd *cobra.Command, env *apiclient.Envelope[T], err error) error {
	if err != nil {
		return err
	}
	if err := env.Err(); err != nil {
		return err
	}
	if env.Data == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	}
	return printJSON(cmd, env.Data)
}

// optional returns a pointer to the flag value when the flag was given.
func optional[T any](cmd *cobra.Command, name string, get func(string) (T, error)) *T {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := get(name)
	if err != nil {
		return nil
	}
	return &v
}

func optionalString(cmd *cobra.Command, name string) *string {
	return optional(cmd, name, cmd.Flags().GetString)
}
