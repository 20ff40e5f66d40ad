package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ritwikchawla/Golden-Notes/internal/api"
	"github.com/ritwikchawla/Golden-Notes/internal/app"
	"github.com/ritwikchawla/Golden-Notes/internal/auth"
	"github.com/ritwikchawla/Golden-Notes/internal/config"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	serverFlag   = flag.String("server", "", "note server base URL (overrides config)")
	emailFlag    = flag.String("email", "", "login email (overrides config)")
	passwordFlag = flag.String("password", "", "login password (skips cached token)")
	tokenFlag    = flag.String("token", "", "API token (skips login)")
	registerFlag = flag.Bool("register", false, "create an account, then log in")
	nameFlag     = flag.String("name", "", "full name (with -register)")
	phoneFlag    = flag.String("phone", "", "phone number (with -register)")
	logoutFlag   = flag.Bool("logout", false, "clear cached credentials and exit")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("goldennotes version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	if *logoutFlag {
		logout()
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *serverFlag != "" {
		cfg.Server.BaseURL = *serverFlag
		if cfg.Server.MediaBaseURL == "" {
			cfg.Server.MediaBaseURL = *serverFlag
		}
	}
	if *emailFlag != "" {
		cfg.Auth.Email = *emailFlag
	}

	base := api.NewClient(cfg.Server.BaseURL, cfg.Server.MediaBaseURL, "", cfg.Server.RequestTimeout)

	if *registerFlag {
		if err := register(base, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Registration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Account created.")
	}

	token, err := resolveToken(base, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Login failed: %v\n", err)
		os.Exit(1)
	}
	if *emailFlag != "" {
		if err := config.SaveEmail(*emailFlag); err != nil {
			logger.Warn("could not persist email to config", "error", err)
		}
	}

	client := base.WithToken(token)

	// Watch the config file for changes
	opts := []app.Option{app.WithLogger(logger)}
	if updates, stop, werr := config.Watch(*configPath); werr == nil {
		defer stop()
		opts = append(opts, app.WithConfigUpdates(updates))
	} else {
		logger.Debug("config watch unavailable", "error", werr)
	}

	model := app.New(cfg, client, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// logout blacklists the cached token on the server, best effort, then
// clears the local cache.
func logout() {
	if creds, err := auth.Load(); err == nil && creds != nil {
		cfg, cerr := loadConfig(*configPath)
		if cerr == nil {
			client := api.NewClient(cfg.Server.BaseURL, cfg.Server.MediaBaseURL, creds.Refresh, cfg.Server.RequestTimeout)
			if lerr := client.Logout(context.Background()); lerr != nil {
				fmt.Fprintf(os.Stderr, "Server logout failed (clearing local credentials anyway): %v\n", lerr)
			}
		}
	}
	if err := auth.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to clear credentials: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logged out.")
}

// register creates a new account using the register/name/phone flags.
func register(client *api.Client, cfg *config.Config) error {
	if cfg.Auth.Email == "" || *passwordFlag == "" || *nameFlag == "" {
		return fmt.Errorf("-register needs -email, -password and -name")
	}
	return client.Register(context.Background(), *nameFlag, cfg.Auth.Email, *phoneFlag, *passwordFlag)
}

// resolveToken picks the API credential: explicit flag, fresh login when
// a password is given, otherwise the cached token from a previous login.
func resolveToken(client *api.Client, cfg *config.Config, logger *slog.Logger) (string, error) {
	if *tokenFlag != "" {
		return *tokenFlag, nil
	}
	if env := os.Getenv("GOLDENNOTES_TOKEN"); env != "" {
		return env, nil
	}

	if *passwordFlag != "" {
		if cfg.Auth.Email == "" {
			return "", fmt.Errorf("email required for login (use -email or set auth.email in config)")
		}
		tok, err := client.Login(context.Background(), cfg.Auth.Email, *passwordFlag)
		if err != nil {
			return "", err
		}
		if err := auth.Save(cfg.Auth.Email, tok); err != nil {
			logger.Warn("could not cache credentials", "error", err)
		}
		return tok.Refresh, nil
	}

	creds, err := auth.Load()
	if err != nil {
		return "", fmt.Errorf("reading cached credentials: %w", err)
	}
	if creds == nil {
		return "", fmt.Errorf("no cached credentials; log in with -email and -password")
	}
	if cfg.Auth.Email == "" {
		cfg.Auth.Email = creds.Email
	}
	return creds.Refresh, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}

	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: goldennotes [options]\n\n")
		fmt.Fprintf(os.Stderr, "A TUI client for your Golden Notes account.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
