package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/signup/internal/app"
	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/ui/signup"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const defaultConfigPath = ".signup/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	logFile   string
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account from the terminal",
	Long: `A terminal sign-up form. Fill in username, e-mail and a password twice,
then press Sign Up (Enter on the button, Ctrl+S anywhere, or click it).

The form posts to {api.base_url}/api/1.0/users. Run 'signup serve' for a
local backend.`,
	Version:           version,
	PersistentPreRunE: setup,
	RunE:              runApp,
	SilenceUsage:      true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .signup/config.yaml or ~/.config/signup/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging (also SIGNUP_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"debug log path (default: debug.log, also SIGNUP_LOG)")
	rootCmd.PersistentFlags().String("api-url", "",
		"registration backend base URL (overrides api.base_url)")

	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.timeout", defaults.API.Timeout)
	viper.SetDefault("ui.spinner", defaults.UI.Spinner)
	viper.SetDefault("ui.width", defaults.UI.Width)
	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.latency", defaults.Server.Latency)
	viper.SetDefault("server.reject_usernames", defaults.Server.RejectUsernames)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	viper.SetEnvPrefix("SIGNUP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .signup/config.yaml (current directory)
		// 2. ~/.config/signup/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "signup"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .signup/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				viper.SetConfigFile(defaultConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		} else {
			cfgErr = fmt.Errorf("reading config %s: %w", viper.ConfigFileUsed(), err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil && cfgErr == nil {
		cfgErr = fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
}

// setup runs before every command: it surfaces config errors and starts
// the debug log.
func setup(cmd *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}

	debug := debugFlag || os.Getenv("SIGNUP_DEBUG") != ""
	if !debug {
		return nil
	}

	logPath := logFile
	if logPath == "" {
		logPath = os.Getenv("SIGNUP_LOG")
	}
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.InitWithTeaLog(logPath, "signup")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	cobra.OnFinalize(cleanup)

	log.Info(log.CatConfig, "signup starting",
		"command", cmd.Name(),
		"version", version,
		"config", viper.ConfigFileUsed(),
		"logPath", logPath)
	return nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	registrar, shutdown, err := newRegistrar(cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	form := signup.New(signup.Config{
		Registrar: registrar,
		Context:   ctx,
		Spinner:   cfg.UI.Spinner,
		Width:     cfg.UI.Width,
	})
	model := app.New(form)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}

	if m, ok := final.(app.Model); ok {
		log.Info(log.CatUI, "Program exited", "status", m.Form().Status())
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
