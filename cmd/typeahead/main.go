package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/typeahead"
	"github.com/fwojciec/typeahead/catalog"
	"github.com/fwojciec/typeahead/fuzzy"
	typeaheadhttp "github.com/fwojciec/typeahead/http"
	"github.com/fwojciec/typeahead/lru"
	"github.com/fwojciec/typeahead/search"
	taslog "github.com/fwojciec/typeahead/slog"
	"github.com/fwojciec/typeahead/toml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// HTTP client shared by all remote searchers. Set before calling Run().
	HTTPClient *http.Client
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("typeahead"),
		kong.Description("Incremental search over a local catalog and remote search APIs."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{
			"spotify_url":  typeaheadhttp.DefaultArtistURL,
			"itunes_url":   typeaheadhttp.DefaultArtistCatalogURL,
			"geocoder_url": typeaheadhttp.DefaultGeocoderURL,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'typeahead --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Debounce = cli.Debounce

	kind, err := typeahead.ParseKind(cli.kindArg(kongCtx.Selected().Name))
	if err != nil {
		return err
	}

	engine, err := m.buildEngine(kind, cli.Config, deps.Logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", typeahead.ErrorMessage(err))
		return err
	}
	deps.Engines = map[typeahead.Kind]*search.Engine{kind: engine}

	return kongCtx.Run(deps)
}

// buildEngine wires the local index, result cache and remote searchers for
// kind. Each kind gets its own cache.
func (m *Main) buildEngine(kind typeahead.Kind, cfg Config, logger *slog.Logger) (*search.Engine, error) {
	cat, err := loadCatalog(kind, cfg.Catalog)
	if err != nil {
		return nil, err
	}
	index := taslog.NewLoggingIndex(fuzzy.NewIndex(cat.Records(), fuzzy.WithLimit(cfg.Cap)), logger)

	c, err := lru.NewCache(cfg.CacheSize, lru.WithTTL(cfg.CacheTTL))
	if err != nil {
		return nil, err
	}
	cache := taslog.NewLoggingCache(c, logger)

	opts := []typeaheadhttp.Option{
		typeaheadhttp.WithHTTPClient(m.HTTPClient),
		typeaheadhttp.WithTimeout(cfg.Timeout),
		typeaheadhttp.WithLimit(cfg.Cap),
	}

	switch kind {
	case typeahead.KindCity:
		if cfg.Countries != "" {
			opts = append(opts, typeaheadhttp.WithCountry(cfg.Countries))
		}
		geocoder := typeaheadhttp.NewGeocoder(cfg.GeocoderURL, opts...)
		primary := search.NewRemoteResolver(
			taslog.NewLoggingSearcher(geocoder, "geocoder", logger),
			cache, typeahead.OriginRemotePrimary)
		return search.NewEngine(index,
			search.WithCap(cfg.Cap),
			search.WithPrimary(primary),
		), nil

	case typeahead.KindArtist:
		if cfg.Market != "" {
			opts = append(opts, typeaheadhttp.WithCountry(cfg.Market))
		}
		artists := typeaheadhttp.NewArtistSearcher(cfg.SpotifyURL, cfg.SpotifyToken, opts...)
		primary := search.NewRemoteResolver(
			taslog.NewLoggingSearcher(artists, "spotify", logger),
			cache, typeahead.OriginRemotePrimary,
			search.WithCredentialCheck(artists.HasCredential))
		fallback := search.NewRemoteResolver(
			taslog.NewLoggingSearcher(typeaheadhttp.NewArtistCatalogSearcher(cfg.ItunesURL, opts...), "itunes", logger),
			cache, typeahead.OriginRemoteFallback)
		return search.NewEngine(index,
			search.WithCap(cfg.Cap),
			search.WithPrimary(primary),
			search.WithFallback(fallback),
		), nil
	}
	return nil, typeahead.Errorf(typeahead.EINVALID, "unknown search kind %q", kind)
}

// loadCatalog returns the catalog at path, or the built-in catalog for
// kind when path is empty.
func loadCatalog(kind typeahead.Kind, path string) (*typeahead.Catalog, error) {
	if path == "" {
		return catalog.ForKind(kind)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	cat, err := toml.ParseCatalog(f)
	if err != nil {
		return nil, err
	}
	if cat.Kind != kind {
		return nil, typeahead.Errorf(typeahead.EINVALID, "catalog %s holds %s records, not %s", path, cat.Kind, kind)
	}
	return cat, nil
}
