package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/teachforge-io/agent/internal/api"
	"github.com/teachforge-io/agent/internal/config"
	"github.com/teachforge-io/agent/internal/models"
	"github.com/teachforge-io/agent/internal/session"
)

// Global configuration instance
var cfg *config.Config
var sessionStore *session.Store
var apiClient *api.Client

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

// preRunClientE loads config and session state and wires up the API client.
// Every command goes through here before running.
func preRunClientE(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// check if verbose flag is set
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Endpoint override from the flag
	endpoint, err := cmd.Flags().GetString("endpoint")
	if err == nil && len(endpoint) > 0 {
		cfg.API.Endpoint = endpoint
	}

	sessionStore = session.GetStore()
	if err := sessionStore.Load(); err != nil {
		return fmt.Errorf("failed to load session state: %w", err)
	}

	apiClient = api.NewClient(
		cfg.GetAPIEndpoint(),
		sessionStore,
		api.WithTimeout(cfg.GetAPITimeout()),
		api.WithEvictionHook(func() {
			fmt.Println(warningStyle.Render("Session expired or rejected by the server."))
			fmt.Println("Run " + infoStyle.Render("teachforge login") + " to sign in again.")
		}),
	)

	return nil
}

// preRunAuthenticatedE additionally requires a valid session. Restored
// sessions are verified against the backend once per invocation; transient
// developer sessions skip verification.
func preRunAuthenticatedE(cmd *cobra.Command, args []string) error {
	if err := preRunClientE(cmd, args); err != nil {
		return err
	}

	if !sessionStore.Authenticated() {
		return fmt.Errorf("not logged in. Run 'teachforge login' first")
	}

	if sessionStore.Transient() {
		logrus.Debugln("Transient session, skipping startup verification")
		return nil
	}

	if _, err := apiClient.VerifySession(cmd.Context()); err != nil {
		if models.IsUnauthorized(err) {
			// The client has already evicted the session.
			return fmt.Errorf("session is no longer valid, please login again")
		}
		// Backend unreachable or unhappy; commands get to decide how much
		// they care. Log and continue with the restored session.
		logrus.WithError(err).Warnln("Could not verify the stored session")
	}

	return nil
}

var rootCmd = &cobra.Command{
	Use:   "teachforge",
	Short: "TeachForge Agent - lesson plans, exercises and AI media from the terminal",
	Long: `TeachForge Agent connects to a TeachForge server to manage lesson plans,
courses and exercises, and to run AI generation jobs (lessons, exercises,
images, video) without leaving the terminal.

If no config file is specified, the agent will look for config files in the
following locations:
  - ./config.yaml
  - ./config/config.yaml
  - /etc/teachforge/config.yaml
  - ~/.config/teachforge/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ~/.config/teachforge/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "Override the API endpoint (e.g., http://localhost:8000/api/v1)")
}

func GetCommandOptions() *cobra.Command {
	return rootCmd
}

// commandContext returns the cobra command context, falling back to a fresh
// background context when none was set.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
