package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hylla/syssla/internal/adapters/storage/sqlite"
	"github.com/hylla/syssla/internal/app"
	"github.com/hylla/syssla/internal/config"
	"github.com/hylla/syssla/internal/domain"
	"github.com/hylla/syssla/internal/platform"
	"github.com/hylla/syssla/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

// rootOptions carries the persistent flag values shared by every command.
type rootOptions struct {
	configPath string
	dbPath     string
	appName    string
	devMode    bool
}

// newRootCmd builds the CLI tree. Running without a subcommand opens the TUI.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	opts := &rootOptions{}
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("SYSSLA_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	defaultAppName := "syssla"
	if envApp := strings.TrimSpace(os.Getenv("SYSSLA_APP_NAME")); envApp != "" {
		defaultAppName = envApp
	}

	root := &cobra.Command{
		Use:           "syssla",
		Short:         "A small task list for the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts, stderr)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to sqlite database")
	root.PersistentFlags().StringVar(&opts.appName, "app", defaultAppName, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&opts.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(
		newAddCmd(opts, stdout, stderr),
		newListCmd(opts, stdout, stderr),
		newDoneCmd(opts, stdout, stderr),
		newRemoveCmd(opts, stdout, stderr),
		newThemeCmd(opts, stdout, stderr),
		newExportCmd(opts, stdout, stderr),
		newImportCmd(opts, stdout, stderr),
		newPathsCmd(opts, stdout),
	)
	return root
}

// runtimeState bundles everything an open command flow needs.
type runtimeState struct {
	cfg        config.Config
	paths      platform.Paths
	configPath string
	logger     *runtimeLogger
	store      *sqlite.Store
	svc        *app.Service
}

// resolveLocations applies env fallbacks over flags and platform defaults.
func resolveLocations(opts *rootOptions) (platform.Paths, string, string, bool, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return platform.Paths{}, "", "", false, err
	}

	configPath := opts.configPath
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("SYSSLA_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}

	dbPath := opts.dbPath
	dbOverridden := strings.TrimSpace(dbPath) != ""
	if !dbOverridden {
		if envPath := strings.TrimSpace(os.Getenv("SYSSLA_DB_PATH")); envPath != "" {
			dbPath = envPath
			dbOverridden = true
		} else {
			dbPath = paths.DBPath
		}
	}
	return paths, configPath, dbPath, dbOverridden, nil
}

// openRuntime loads config, wires the logger, opens the store, and loads the
// task service. The caller must Close the returned state.
func openRuntime(ctx context.Context, opts *rootOptions, stderr io.Writer, muteConsole bool) (*runtimeState, error) {
	paths, configPath, dbPath, dbOverridden, err := resolveLocations(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath, config.Default(dbPath))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dbOverridden {
		cfg.Database.Path = dbPath
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, time.Now)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	if muteConsole {
		// Keep TUI rendering clean: runtime logs stay in the dev-file sink while the list is active.
		logger.SetConsoleEnabled(false)
	}

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "db_path", cfg.Database.Path)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	logger.Info("opening sqlite key-value store", "db_path", cfg.Database.Path)
	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("sqlite open failed", "db_path", cfg.Database.Path, "err", err)
		closeRuntimeLogger(logger, stderr)
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	svc := app.NewService(store, uuid.NewString, nil, app.ServiceConfig{
		DefaultTheme: domain.ParseTheme(cfg.UI.DefaultTheme),
	})
	if err := svc.Load(ctx); err != nil {
		logger.Error("task load failed", "db_path", cfg.Database.Path, "err", err)
		_ = store.Close()
		closeRuntimeLogger(logger, stderr)
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	logger.Debug("task service initialized", "tasks", len(svc.Tasks()), "theme", svc.Theme())

	return &runtimeState{
		cfg:        cfg,
		paths:      paths,
		configPath: configPath,
		logger:     logger,
		store:      store,
		svc:        svc,
	}, nil
}

// Close releases the store and log sinks.
func (rt *runtimeState) Close(stderr io.Writer) {
	if rt == nil {
		return
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.logger.Warn("sqlite close failed", "db_path", rt.cfg.Database.Path, "err", err)
		}
	}
	closeRuntimeLogger(rt.logger, stderr)
}

// withRuntime runs one command flow against an open runtime.
func withRuntime(ctx context.Context, opts *rootOptions, stderr io.Writer, name string, fn func(*runtimeState) error) error {
	rt, err := openRuntime(ctx, opts, stderr, false)
	if err != nil {
		return err
	}
	defer rt.Close(stderr)

	rt.logger.Info("command flow start", "command", name)
	if err := fn(rt); err != nil {
		rt.logger.Error("command flow failed", "command", name, "err", err)
		return err
	}
	rt.logger.Info("command flow complete", "command", name)
	return nil
}

// runTUI opens the runtime with a muted console and runs the program loop.
func runTUI(ctx context.Context, opts *rootOptions, stderr io.Writer) error {
	rt, err := openRuntime(ctx, opts, stderr, true)
	if err != nil {
		return err
	}
	defer rt.Close(stderr)

	rt.logger.Info("command flow start", "command", "tui")
	m := tui.NewModel(
		rt.svc,
		tui.WithRuntimeConfig(toTUIRuntimeConfig(rt.cfg)),
		tui.WithLogger(rt.logger.FileSink()),
	)
	rt.logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		rt.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	rt.logger.Info("command flow complete", "command", "tui")
	return nil
}

// newAddCmd adds one task from the command line.
func newAddCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, stderr, "add", func(rt *runtimeState) error {
				task, added, err := rt.svc.Add(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return fmt.Errorf("add task: %w", err)
				}
				if !added {
					// Blank input is absorbed silently.
					return nil
				}
				_, _ = fmt.Fprintf(stdout, "added %s  %s\n", task.ID, task.Text)
				return nil
			})
		},
	}
}

// newListCmd prints one section of the list.
func newListCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), opts, stderr, "list", func(rt *runtimeState) error {
				sec := domain.ParseSection(section)
				tasks := rt.svc.Filtered(sec)
				if len(tasks) == 0 {
					_, _ = fmt.Fprintln(stdout, app.EmptyStateMessage(sec))
					return nil
				}
				for _, task := range tasks {
					mark := "[ ]"
					if task.Completed {
						mark = "[x]"
					}
					_, _ = fmt.Fprintf(stdout, "%s %s  %s\n", mark, task.ID, task.Text)
				}
				_, _ = fmt.Fprintln(stdout, app.SummaryText(rt.svc.Stats(), sec))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&section, "section", "all", "section to list (all, today, completed)")
	return cmd
}

// newDoneCmd toggles completion on one task.
func newDoneCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task done or back to open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, stderr, "done", func(rt *runtimeState) error {
				changed, err := rt.svc.Toggle(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("toggle task: %w", err)
				}
				if !changed {
					return fmt.Errorf("unknown task id: %s", args[0])
				}
				_, _ = fmt.Fprintf(stdout, "toggled %s\n", args[0])
				return nil
			})
		},
	}
}

// newRemoveCmd deletes one task. The CLI commits immediately; the cosmetic
// removal delay only applies in the TUI.
func newRemoveCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, stderr, "rm", func(rt *runtimeState) error {
				if !rt.svc.MarkForRemoval(args[0]) {
					return fmt.Errorf("unknown task id: %s", args[0])
				}
				removed, err := rt.svc.CommitRemoval(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("remove task: %w", err)
				}
				if !removed {
					return fmt.Errorf("unknown task id: %s", args[0])
				}
				_, _ = fmt.Fprintf(stdout, "removed %s\n", args[0])
				return nil
			})
		},
	}
}

// newThemeCmd shows or sets the persisted theme.
func newThemeCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the color theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, stderr, "theme", func(rt *runtimeState) error {
				if len(args) == 0 {
					_, _ = fmt.Fprintln(stdout, rt.svc.Theme())
					return nil
				}
				var theme domain.Theme
				switch strings.ToLower(strings.TrimSpace(args[0])) {
				case "light":
					theme = domain.ThemeLight
				case "dark":
					theme = domain.ThemeDark
				default:
					return fmt.Errorf("unknown theme: %s", args[0])
				}
				applied, err := rt.svc.SetTheme(cmd.Context(), theme)
				if err != nil {
					return fmt.Errorf("set theme: %w", err)
				}
				_, _ = fmt.Fprintln(stdout, applied)
				return nil
			})
		},
	}
}

// newExportCmd writes a snapshot as JSON or a static HTML page.
func newExportCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var (
		outPath string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), opts, stderr, "export", func(rt *runtimeState) error {
				snap := rt.svc.ExportSnapshot()

				var encoded []byte
				switch strings.ToLower(strings.TrimSpace(format)) {
				case "json":
					out, err := json.MarshalIndent(snap, "", "  ")
					if err != nil {
						return fmt.Errorf("encode snapshot json: %w", err)
					}
					encoded = append(out, '\n')
				case "html":
					encoded = []byte(app.RenderHTML(snap))
				default:
					return fmt.Errorf("unknown export format: %s", format)
				}

				if outPath == "-" {
					if _, err := stdout.Write(encoded); err != nil {
						return fmt.Errorf("write snapshot to stdout: %w", err)
					}
					return nil
				}
				if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
					return fmt.Errorf("create export output dir: %w", err)
				}
				if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "output format (json, html)")
	return cmd
}

// newImportCmd replaces the task list from a snapshot file.
func newImportCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var inPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a task list snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), opts, stderr, "import", func(rt *runtimeState) error {
				if inPath == "" {
					return fmt.Errorf("--in is required")
				}
				content, err := os.ReadFile(inPath)
				if err != nil {
					return fmt.Errorf("read import file: %w", err)
				}
				var snap app.Snapshot
				if err := json.Unmarshal(content, &snap); err != nil {
					return fmt.Errorf("decode snapshot json: %w", err)
				}
				if err := rt.svc.ImportSnapshot(cmd.Context(), snap); err != nil {
					return fmt.Errorf("import snapshot: %w", err)
				}
				_, _ = fmt.Fprintf(stdout, "imported %d tasks\n", len(rt.svc.Tasks()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input snapshot JSON file")
	return cmd
}

// newPathsCmd prints the resolved config and data locations.
func newPathsCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, configPath, dbPath, _, err := resolveLocations(opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", configPath)
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "db: %s\n", dbPath)
			return nil
		},
	}
}

// toTUIRuntimeConfig maps persisted config values into runtime model options.
func toTUIRuntimeConfig(cfg config.Config) tui.RuntimeConfig {
	return tui.RuntimeConfig{
		RemoveDelay: cfg.RemoveDelay(),
		ShowSummary: cfg.UI.ShowSummary,
		Keys: tui.KeyConfig{
			AddTask:     cfg.Keys.AddTask,
			ToggleTask:  cfg.Keys.ToggleTask,
			DeleteTask:  cfg.Keys.DeleteTask,
			NextSection: cfg.Keys.NextSection,
			ToggleTheme: cfg.Keys.ToggleTheme,
			YankText:    cfg.Keys.YankText,
		},
	}
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
