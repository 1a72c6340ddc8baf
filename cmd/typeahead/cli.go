package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/typeahead"
	"github.com/fwojciec/typeahead/search"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Debounce time.Duration
	Engines  map[typeahead.Kind]*search.Engine
}

// engine returns the engine wired for kind.
func (d *Dependencies) engine(kind string) (*search.Engine, error) {
	k, err := typeahead.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	e, ok := d.Engines[k]
	if !ok {
		return nil, typeahead.Errorf(typeahead.ENOTFOUND, "no engine configured for %s", k)
	}
	return e, nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config `embed:""`

	Search      SearchCmd      `cmd:"" help:"Search the local catalog and remote APIs"`
	Local       LocalCmd       `cmd:"" help:"Search the local catalog only"`
	Interactive InteractiveCmd `cmd:"" help:"Treat each stdin line as the next state of an input field"`
}

// kindArg returns the kind argument of the selected command.
func (c *CLI) kindArg(command string) string {
	switch command {
	case "search":
		return c.Search.Kind
	case "local":
		return c.Local.Kind
	case "interactive":
		return c.Interactive.Kind
	}
	return ""
}

// Config holds the flags shared by every command.
type Config struct {
	Verbose   bool          `short:"v" help:"Log debug output to stderr"`
	Catalog   string        `type:"existingfile" help:"TOML catalog replacing the built-in one"`
	Debounce  time.Duration `default:"200ms" env:"TYPEAHEAD_DEBOUNCE" help:"Quiet period before a query runs"`
	Cap       int           `default:"8" env:"TYPEAHEAD_CAP" help:"Maximum records shown per query"`
	CacheSize int           `default:"4096" env:"TYPEAHEAD_CACHE_SIZE" help:"Remote responses kept per kind"`
	CacheTTL  time.Duration `name:"cache-ttl" env:"TYPEAHEAD_CACHE_TTL" help:"Expire cached responses after this long (0 keeps them)"`
	Timeout   time.Duration `default:"10s" help:"Timeout for each remote request"`

	SpotifyToken string `env:"SPOTIFY_TOKEN" help:"Bearer token for the primary artist search API"`
	SpotifyURL   string `name:"spotify-url" default:"${spotify_url}" env:"SPOTIFY_API_URL" help:"Primary artist search API"`
	ItunesURL    string `name:"itunes-url" default:"${itunes_url}" env:"ITUNES_API_URL" help:"Fallback artist catalog API"`
	Market       string `default:"US" env:"ITUNES_COUNTRY" help:"Country code for artist searches"`
	GeocoderURL  string `name:"geocoder-url" default:"${geocoder_url}" env:"GEOCODER_API_URL" help:"City geocoding API"`
	Countries    string `env:"GEOCODER_COUNTRIES" help:"Comma-separated country codes limiting city searches"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Kind  string `arg:"" enum:"city,artist" help:"What to search for (city, artist)"`
	Query string `arg:"" help:"Search text"`
}

// LocalCmd is the "local" subcommand.
type LocalCmd struct {
	Kind  string `arg:"" enum:"city,artist" help:"What to search for (city, artist)"`
	Query string `arg:"" help:"Search text"`
}

// InteractiveCmd is the "interactive" subcommand.
type InteractiveCmd struct {
	Kind string `arg:"" enum:"city,artist" help:"What to search for (city, artist)"`
}
