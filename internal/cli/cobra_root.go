package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cue-cards/internal/config"
	"cue-cards/internal/logging"
	"cue-cards/internal/repository"
)

// AppFactory builds the App used by card commands
type AppFactory func(cfg *config.Config, opts ...AppOption) (*App, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	config    *config.Config
	newApp    AppFactory
	app       *App
	serveDocs repository.DocumentStore
}

// RootOption configures a RootCommand
type RootOption func(*RootCommand)

// WithAppFactory replaces how the App is built
func WithAppFactory(factory AppFactory) RootOption {
	return func(r *RootCommand) { r.newApp = factory }
}

// WithServeStore makes serve use docs instead of opening the configured store
func WithServeStore(docs repository.DocumentStore) RootOption {
	return func(r *RootCommand) { r.serveDocs = docs }
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, opts ...RootOption) *RootCommand {
	root := &RootCommand{
		config: cfg,
		newApp: NewAppFromConfig,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "cc",
		Short: "Cue cards for recurring tasks",
		Long: `Cue Cards (cc) keeps a deck of recurring tasks and shows them one at a time
in a random order that stays fixed for the session.

EXAMPLES:
  cc serve                                   # Serve GET/POST /api/cards over the card file
  cc add "Water plants" -c Home -r 3         # Add a card repeating every 3 days
  cc session                                 # Work through active cards one by one
  cc list plants                             # List cards matching "plants"
  cc categories add Garden                   # Add a category
  cc done 3f2a                               # Mark a card done by id prefix

CONFIGURATION:
  Priority order: command-line flags > environment variables > config file > defaults

    CC_CONFIG                YAML config file
    CC_STORE_DRIVER          file, sqlite or memory (default: file)
    CC_STORE_DIR             Store directory (default: .)
    CC_STORE_FILENAME        Store filename (default: cards.json, cards.db for sqlite)
    CC_SERVER_ADDR           Listen address for serve (default: 127.0.0.1:5173)
    CC_SERVER_PATH           Resource path (default: /api/cards)
    CC_BACKUP_INTERVAL       Snapshot interval for serve, 0 disables (default: 0)
    CC_BACKUP_DIR            Snapshot directory (default: backups)
    CC_API_URL               Talk to a running server instead of the store
    CC_API_TIMEOUT           HTTP timeout (default: 10s)
    CC_SESSION_RECONCILE     frozen, prune or reshuffle (default: frozen)
    CC_APP_TIMEOUT           Timeout for non-interactive commands (default: 60s)
    CC_DEBUG                 Print debug output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.closeApp()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Command exposes the cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML config file (overrides CC_CONFIG)")

	// Storage configuration
	flags.String("store-driver", "", "Store driver: file, sqlite or memory (overrides CC_STORE_DRIVER)")
	flags.String("store-dir", "", "Store directory (overrides CC_STORE_DIR)")
	flags.String("store-file", "", "Store filename (overrides CC_STORE_FILENAME)")

	// Server configuration
	flags.String("addr", "", "Listen address for serve (overrides CC_SERVER_ADDR)")
	flags.Duration("backup-interval", 0, "Snapshot interval for serve (overrides CC_BACKUP_INTERVAL)")

	// Client configuration
	flags.String("api-url", "", "Card server URL (overrides CC_API_URL)")
	flags.Duration("api-timeout", 0, "HTTP timeout (overrides CC_API_TIMEOUT)")

	// Session configuration
	flags.String("reconcile", "", "Session policy: frozen, prune or reshuffle (overrides CC_SESSION_RECONCILE)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides CC_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides CC_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the card document over HTTP",
		Long: `Serve GET and POST on the configured path (default /api/cards).

GET returns the stored document, or {"cards":[],"categories":[]} when nothing
has been saved. POST stores any valid JSON body verbatim.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(r.config, r.serveDocs).Execute(cmd.Context(), args)
		},
	}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Work through active cards one at a time",
		Long: `Show active cards one at a time in a random order fixed for the session.

Actions: d done, s skip, e edit description, c change category,
t <n> toggle subtask n, q quit.`,
		Args: cobra.NoArgs,
		RunE: r.runRegistered("session", false),
	}

	listCmd := &cobra.Command{
		Use:   "list [filter]",
		Short: "List cards",
		Long:  "List all cards. A filter matches description or category, ignoring case.",
		RunE:  r.runRegistered("list", true),
	}

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Show categories with active card counts",
		Args:  cobra.NoArgs,
		RunE:  r.runRegistered("categories", true),
	}
	categoriesCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.runRegistered("add-category", true),
	})

	r.cmd.AddCommand(
		serveCmd,
		sessionCmd,
		listCmd,
		categoriesCmd,
		r.newAddCommand(),
		r.newEditCommand(),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a card",
			Args:  cobra.ExactArgs(1),
			RunE:  r.runRegistered("delete", true),
		},
		&cobra.Command{
			Use:   "done <id>",
			Short: "Mark a card done now",
			Args:  cobra.ExactArgs(1),
			RunE:  r.runRegistered("done", true),
		},
		&cobra.Command{
			Use:   "archive <id>",
			Short: "Archive a card so sessions skip it",
			Args:  cobra.ExactArgs(1),
			RunE:  r.runRegistered("archive", true),
		},
		&cobra.Command{
			Use:   "unarchive <id>",
			Short: "Return an archived card to sessions",
			Args:  cobra.ExactArgs(1),
			RunE:  r.runRegistered("unarchive", true),
		},
	)
}

func (r *RootCommand) newAddCommand() *cobra.Command {
	var (
		category string
		repeat   int
		once     bool
		subtasks []string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a card",
		Long: `Add a card. A category that does not exist yet is added to the category set.

Examples:
  cc add "Water plants" --category Home --repeat 3
  cc add "Renew passport" --once --subtask "Photo" --subtask "Form"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext(cmd, true)
			defer cancel()

			handler := NewAddCommand(app)
			handler.Category = category
			handler.Repeat = repeat
			handler.Once = once
			handler.Subtasks = subtasks
			return handler.Execute(ctx, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&category, "category", "c", "", "Category (default: first category or General)")
	flags.IntVarP(&repeat, "repeat", "r", 1, "Repeat frequency in days")
	flags.BoolVar(&once, "once", false, "Card does not repeat")
	flags.StringArrayVarP(&subtasks, "subtask", "s", nil, "Subtask text (repeatable)")
	return cmd
}

func (r *RootCommand) newEditCommand() *cobra.Command {
	var (
		description   string
		category      string
		repeat        int
		once          bool
		subtasks      []string
		clearSubtasks bool
		removeAt      []int
		moves         []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a card",
		Long: `Edit a card by id or unique id prefix. Only the given flags change.

Subtask positions are 1-based. Removals refer to the list as it was, moves
apply after removals and new subtasks are appended last.

Examples:
  cc edit abc1 --repeat 7
  cc edit abc1 --remove-subtask 2 --move-subtask 3:1 --subtask "Check soil"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext(cmd, true)
			defer cancel()

			handler := NewEditCommand(app)
			flags := cmd.Flags()
			if flags.Changed("description") {
				handler.Description = &description
			}
			if flags.Changed("category") {
				handler.Category = &category
			}
			if flags.Changed("repeat") {
				handler.Repeat = &repeat
			}
			if flags.Changed("once") {
				handler.Once = &once
			}
			handler.AddSubtasks = subtasks
			handler.ClearSubtasks = clearSubtasks
			handler.RemoveSubtasks = removeAt
			handler.MoveSubtasks = moves
			return handler.Execute(ctx, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&description, "description", "d", "", "New description")
	flags.StringVarP(&category, "category", "c", "", "New category")
	flags.IntVarP(&repeat, "repeat", "r", 0, "New repeat frequency in days")
	flags.BoolVar(&once, "once", false, "Card does not repeat")
	flags.StringArrayVarP(&subtasks, "subtask", "s", nil, "Subtask to append (repeatable)")
	flags.BoolVar(&clearSubtasks, "clear-subtasks", false, "Remove existing subtasks first")
	flags.IntSliceVar(&removeAt, "remove-subtask", nil, "Remove the subtask at a position (repeatable)")
	flags.StringArrayVar(&moves, "move-subtask", nil, "Move a subtask, as FROM:TO positions (repeatable)")
	return cmd
}

// runRegistered runs a registry command. Interactive commands get no timeout.
func (r *RootCommand) runRegistered(name string, withTimeout bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := r.getApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := r.commandContext(cmd, withTimeout)
		defer cancel()
		return app.registry.Execute(ctx, name, args)
	}
}

func (r *RootCommand) commandContext(cmd *cobra.Command, withTimeout bool) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !withTimeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.getAppTimeout())
}

// getApp builds the App on first use
func (r *RootCommand) getApp(cmd *cobra.Command) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	app, err := r.newApp(r.config, WithOutput(cmd.OutOrStdout()), WithInput(cmd.InOrStdin()))
	if err != nil {
		return nil, err
	}
	r.app = app
	return app, nil
}

func (r *RootCommand) closeApp() error {
	if r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	return err
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if path, _ := flags.GetString("config"); flags.Changed("config") {
		loaded, err := config.NewLoader().WithFile(path).Load()
		if err != nil {
			return err
		}
		*r.config = *loaded
	}

	overrides := &config.ConfigOverrides{}
	stringOverride := func(name string, target **string) {
		if flags.Changed(name) {
			value, _ := flags.GetString(name)
			*target = &value
		}
	}
	durationOverride := func(name string, target **time.Duration) {
		if flags.Changed(name) {
			value, _ := flags.GetDuration(name)
			*target = &value
		}
	}

	stringOverride("store-driver", &overrides.StoreDriver)
	stringOverride("store-dir", &overrides.StoreDir)
	stringOverride("store-file", &overrides.StoreFilename)
	stringOverride("addr", &overrides.ServerAddr)
	durationOverride("backup-interval", &overrides.BackupInterval)
	stringOverride("api-url", &overrides.APIURL)
	durationOverride("api-timeout", &overrides.APITimeout)
	stringOverride("reconcile", &overrides.Reconcile)
	durationOverride("app-timeout", &overrides.Timeout)
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	overrides.Apply(r.config)
	if err := r.config.Validate(); err != nil {
		return err
	}

	logging.SetVerbose(r.config.Application.Verbose)
	return nil
}
