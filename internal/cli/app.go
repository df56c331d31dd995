package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cue-cards/internal/client"
	"cue-cards/internal/config"
	"cue-cards/internal/domain"
	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/repository"
	"cue-cards/internal/store"
	"cue-cards/internal/validation"
)

// App represents the main CLI application
type App struct {
	config   *config.Config
	store    *store.Store
	docs     repository.DocumentStore // nil when talking to a remote endpoint
	registry *CommandRegistry
	errors   *ErrorHandler

	cardValidator     *validation.CardValidator
	categoryValidator *validation.CategoryValidator

	out       io.Writer
	in        io.Reader
	loaded    bool
	storeOpts []store.Option
}

// AppOption configures an App
type AppOption func(*App)

// WithOutput sets where commands print
func WithOutput(w io.Writer) AppOption {
	return func(a *App) { a.out = w }
}

// WithInput sets where interactive commands read from
func WithInput(r io.Reader) AppOption {
	return func(a *App) { a.in = r }
}

// WithDocuments records a local document store the App owns and closes
func WithDocuments(docs repository.DocumentStore) AppOption {
	return func(a *App) { a.docs = docs }
}

// WithStoreOptions passes options to the App's card store
func WithStoreOptions(opts ...store.Option) AppOption {
	return func(a *App) { a.storeOpts = append(a.storeOpts, opts...) }
}

// NewApp creates a new CLI application over the given backend
func NewApp(cfg *config.Config, backend store.Backend, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		config:            cfg,
		errors:            NewErrorHandler(),
		cardValidator:     validation.NewCardValidatorWithConfig(cfg),
		categoryValidator: validation.NewCategoryValidatorWithConfig(cfg),
		out:               os.Stdout,
		in:                os.Stdin,
	}
	for _, opt := range opts {
		opt(app)
	}
	app.store = store.New(backend, app.storeOpts...)
	app.registry = NewCommandRegistry(app)
	return app
}

// NewAppFromConfig picks the HTTP client when an API URL is configured and
// the local document store otherwise.
func NewAppFromConfig(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg.UsesRemoteAPI() {
		return NewApp(cfg, client.NewFromConfig(cfg), opts...), nil
	}

	docs, err := config.CreateDocumentStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open card store: %w", err)
	}
	opts = append(opts, WithDocuments(docs))
	return NewApp(cfg, store.NewDocumentBackend(docs), opts...), nil
}

// Close releases the local document store, if any
func (a *App) Close() error {
	if a.docs == nil {
		return nil
	}
	return a.docs.Close()
}

// Run executes a registered command by name
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// load fetches the document once per App
func (a *App) load(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	if err := a.store.Load(ctx); err != nil {
		return apperrors.WrapError(err, errorTypeOf(err), a.store.Err())
	}
	a.loaded = true
	return nil
}

// saveFailed wraps a failed store mutation with the store's error slot
func (a *App) saveFailed(err error) error {
	message := a.store.Err()
	if message == "" {
		message = apperrors.MessageSaveFailed
	}
	return apperrors.WrapError(err, errorTypeOf(err), message)
}

// findCard resolves an exact card id or a unique id prefix
func (a *App) findCard(ref string) (domain.Card, error) {
	data := a.store.Data()
	if card, ok := data.FindCard(ref); ok {
		return card, nil
	}

	var matches []domain.Card
	for _, c := range data.Cards {
		if ref != "" && strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Card{}, apperrors.NewNotFoundError("card", ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Card{}, apperrors.NewInvalidInputError("id", ref, fmt.Sprintf("matches %d cards", len(matches)))
	}
}

// ensureCategory adds name to the category set when it is new
func (a *App) ensureCategory(ctx context.Context, name string) error {
	if a.store.Data().HasCategory(name) {
		return nil
	}
	if err := a.store.AddCategory(ctx, name); err != nil {
		return a.saveFailed(err)
	}
	return nil
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// errorTypeOf keeps the type of an underlying AppError when wrapping
func errorTypeOf(err error) apperrors.ErrorType {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.Type
	}
	return apperrors.ErrorTypeStorage
}
