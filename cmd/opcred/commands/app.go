package commands

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/systmms/opcred/internal/config"
	"github.com/systmms/opcred/internal/logging"
	"github.com/systmms/opcred/internal/metrics"
	"github.com/systmms/opcred/internal/onepassword"
	"github.com/systmms/opcred/internal/providers"
	"github.com/systmms/opcred/internal/secure"
	pkgexec "github.com/systmms/opcred/pkg/exec"
)

// MetricsFileEnv sets --metrics-file from the environment.
const MetricsFileEnv = "OPCRED_METRICS_FILE"

// App carries the global flags and the collaborators every command shares.
// Init fills the collaborators in once flags are parsed.
type App struct {
	ConfigPath  string
	Debug       bool
	NoColor     bool
	MetricsFile string

	Version string
	Build   string

	Config  *config.Config
	Logger  *logging.Logger
	Client  *onepassword.Client
	Metrics *metrics.Metrics
	Tokens  *secure.TokenStore

	// Executor runs op. Nil means the real binary, given the keyring's
	// service account token when one is stored.
	Executor pkgexec.CommandExecutor
	// LogOutput receives log lines. Nil means stderr.
	LogOutput io.Writer
	// AccountResolver builds the AWS account lookup. Nil means STS.
	AccountResolver func(ctx context.Context, opts providers.STSOptions) (providers.AccountResolver, error)
}

// Init builds the logger, loads the configuration and creates the op client.
func (a *App) Init() error {
	a.Logger = logging.New(a.Debug, a.NoColor)
	if a.LogOutput != nil {
		a.Logger = a.Logger.WithWriter(a.LogOutput)
	}

	path := a.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	a.Config = config.New(path)
	a.Config.Logger = a.Logger
	a.Config.Debug = a.Debug
	a.Config.NoColor = a.NoColor
	if err := a.Config.Load(); err != nil {
		return err
	}
	a.Logger.Debug("Configuration: %s", a.Config.Path)

	if a.Tokens == nil {
		a.Tokens = secure.NewTokenStore()
	}
	if a.Executor == nil {
		a.Executor = a.defaultExecutor()
	}
	a.Client = onepassword.NewClientWithExecutor(a.Executor, a.Logger)

	if a.MetricsFile == "" {
		a.MetricsFile = os.Getenv(MetricsFileEnv)
	}
	if a.MetricsFile != "" {
		a.Metrics = metrics.New()
		a.Client.SetRecorder(a.Metrics)
	}
	return nil
}

// defaultExecutor runs the real op. A service account token from the
// keyring is passed along unless the environment already carries one.
func (a *App) defaultExecutor() pkgexec.CommandExecutor {
	if os.Getenv(secure.ServiceAccountTokenEnv) != "" {
		return pkgexec.DefaultExecutor()
	}
	env, err := a.Tokens.Env()
	if err != nil {
		if !errors.Is(err, secure.ErrNoToken) {
			a.Logger.Debug("Keyring unavailable: %v", err)
		}
		return pkgexec.DefaultExecutor()
	}
	a.Logger.Debug("Using service account token from keyring")
	return &pkgexec.RealCommandExecutor{Env: []string{env}}
}

// Flush writes collected metrics when a metrics file is configured.
// It runs after the command, whether or not the command failed.
func (a *App) Flush() error {
	if a.Metrics == nil || a.MetricsFile == "" {
		return nil
	}
	return a.Metrics.WriteTextfile(a.MetricsFile)
}

// Deps returns the provider collaborators. accounts may be nil.
func (a *App) Deps(accounts providers.AccountResolver) providers.Deps {
	return providers.Deps{
		Config:   a.Config,
		Client:   a.Client,
		Logger:   a.Logger,
		Accounts: accounts,
	}
}

func (a *App) accounts(ctx context.Context, opts providers.STSOptions) (providers.AccountResolver, error) {
	if a.AccountResolver != nil {
		return a.AccountResolver(ctx, opts)
	}
	return providers.NewSTSAccountResolver(ctx, opts)
}

// NewRootCommand assembles the opcred command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opcred",
		Short: "Manage infrastructure credentials in 1Password",
		Long: `opcred creates, reads, lists and rotates structured credentials for
infrastructure providers (AWS, Proxmox and generic services) through the
1Password CLI.`,
		Version:       app.Build,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Init()
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file path (default ~/.config/opcreds/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Log every op invocation")
	rootCmd.PersistentFlags().StringVar(&app.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile ($"+MetricsFileEnv+")")

	rootCmd.AddCommand(
		NewVersionCommand(app),
		NewCreateCommand(app),
		NewGetCommand(app),
		NewListCommand(app),
		NewRotateCommand(app),
		NewDeleteCommand(app),
		NewReadCommand(app),
		NewInjectCommand(app),
		NewVaultsCommand(app),
		NewConfigCommand(app),
		NewPolicyCommand(app),
		NewDoctorCommand(app),
		NewTokenCommand(app),
		NewCompletionCommand(app),
	)

	return rootCmd
}
