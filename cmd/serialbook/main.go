package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/serialbook/pkg/books"
	"github.com/umputun/serialbook/pkg/config"
	"github.com/umputun/serialbook/pkg/content"
	"github.com/umputun/serialbook/pkg/domain"
	"github.com/umputun/serialbook/pkg/repository"
	"github.com/umputun/serialbook/pkg/scheduler"
	"github.com/umputun/serialbook/pkg/source"
	"github.com/umputun/serialbook/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	DB     string `long:"db" env:"DB" description:"database DSN, overrides config"`
	Output string `short:"o" long:"output" env:"OUTPUT" description:"books output directory, overrides config"`

	Server   struct{}    `command:"server" description:"run API server with background sync"`
	Sync     SyncCmd     `command:"sync" description:"sync posts of creators"`
	Build    BuildCmd    `command:"build" description:"build books from stored posts of a creator"`
	Update   UpdateCmd   `command:"update" description:"add new chapters to an existing book"`
	Detect   DetectCmd   `command:"detect" description:"show series detected in stored posts of a creator"`
	Creators CreatorsCmd `command:"creators" description:"manage followed creators"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// SyncCmd options
type SyncCmd struct {
	Full    bool   `long:"full" description:"fetch all available posts instead of the recent ones"`
	Creator string `long:"creator" description:"sync only this creator"`
}

// BuildCmd options
type BuildCmd struct {
	Creator       string `long:"creator" required:"true" description:"creator slug"`
	DefaultSeries string `long:"default-series" description:"series for posts with unrecognized titles"`
}

// UpdateCmd options
type UpdateCmd struct {
	Creator string `long:"creator" required:"true" description:"creator slug"`
	Series  string `long:"series" description:"series to update, all existing books of creator if empty"`
	EPUB    string `long:"epub" description:"book to update, default location of the series book if empty"`
}

// DetectCmd options
type DetectCmd struct {
	Creator string `long:"creator" required:"true" description:"creator slug"`
}

// CreatorsCmd is a group of creator management commands
type CreatorsCmd struct {
	Add struct {
		URL  string `long:"url" required:"true" description:"creator page URL"`
		Name string `long:"name" description:"display name, derived from URL if empty"`
	} `command:"add" description:"follow a creator"`
	Remove struct {
		Slug string `long:"slug" required:"true" description:"creator slug"`
	} `command:"remove" description:"stop following a creator, stored posts are kept"`
	List struct{} `command:"list" description:"list followed creators"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	cmd := activeCommand(parser.Active)
	if cmd == "" {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, cmd)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %s failed: %v", cmd, err)
		os.Exit(1)
	}
}

// activeCommand returns full name of the selected command, like "creators add"
func activeCommand(c *flags.Command) string {
	var names []string
	for ; c != nil; c = c.Active {
		names = append(names, c.Name)
	}
	return strings.Join(names, " ")
}

// app holds components shared by commands
type app struct {
	cfg     *config.Config
	repos   *repository.Repositories
	books   *books.Service
	syncer  *scheduler.Syncer
	version string
	debug   bool
}

func run(ctx context.Context, opts Opts, cmd string) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	if opts.Output != "" {
		cfg.Books.OutputDir = opts.Output
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	a := newApp(cfg, repos, opts.Debug)
	if err := a.seedCreators(ctx); err != nil {
		return err
	}

	switch cmd {
	case "server":
		return a.runServer(ctx)
	case "sync":
		return a.runSync(ctx, opts.Sync)
	case "build":
		return a.runBuild(ctx, opts.Build)
	case "update":
		return a.runUpdate(ctx, opts.Update)
	case "detect":
		return a.runDetect(ctx, opts.Detect)
	case "creators add":
		return a.addCreator(ctx, opts.Creators.Add.URL, opts.Creators.Add.Name)
	case "creators remove":
		return a.removeCreator(ctx, opts.Creators.Remove.Slug)
	case "creators list":
		return a.listCreators(ctx)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func newApp(cfg *config.Config, repos *repository.Repositories, debug bool) *app {
	fetchOpts := source.Options{
		Timeout:   cfg.Fetch.Timeout,
		UserAgent: cfg.Fetch.UserAgent,
		Limiter:   source.NewLimiter(cfg.Fetch.RateLimit),
	}
	if cfg.Fetch.Extract {
		fetchOpts.Extractor = content.NewHTTPExtractor(cfg.Fetch.Timeout, cfg.Fetch.UserAgent, cfg.Fetch.MinTextLength)
	}

	booksSvc := books.NewService(books.Params{
		Posts:     repos.Post,
		Creators:  repos.Creator,
		OutputDir: cfg.Books.OutputDir,
		Options: func(slug string) books.CreatorOptions {
			c := cfg.Creator(slug)
			return books.CreatorOptions{CustomPattern: c.CustomPattern, SeriesName: c.SeriesName, DefaultSeries: c.DefaultSeries}
		},
	})

	syncParams := scheduler.SyncerParams{
		Posts:       repos.Post,
		Creators:    repos.Creator,
		SyncLog:     repos.SyncLog,
		Settings:    repos.Setting,
		Fetcher:     source.NewFetcher(fetchOpts),
		FeedURL:     cfg.FeedURL,
		RecentLimit: cfg.Sync.RecentLimit,
		MaxWorkers:  cfg.Sync.MaxWorkers,
	}
	if cfg.Sync.AutoUpdate {
		syncParams.Books = booksSvc
	}

	return &app{cfg: cfg, repos: repos, books: booksSvc, syncer: scheduler.NewSyncer(syncParams), version: revision, debug: debug}
}

// seedCreators stores creators listed in config, existing ones get name, url and enabled flag from config
func (a *app) seedCreators(ctx context.Context) error {
	for _, c := range a.cfg.Creators {
		slug := c.Slug()
		name := c.Name
		if name == "" {
			name = domain.NameFromSlug(slug)
		}
		if err := a.repos.Creator.Save(ctx, domain.Creator{Slug: slug, Name: name, URL: c.URL, Enabled: !c.Disabled}); err != nil {
			return fmt.Errorf("failed to save configured creator %s: %w", slug, err)
		}
	}
	return nil
}

func (a *app) runServer(ctx context.Context) error {
	lgr.Printf("[INFO] starting serialbook version %s", a.version)

	sched := scheduler.NewScheduler(a.syncer, a.cfg.Sync.Interval)
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(a.cfg, server.NewRepositoryAdapter(a.repos), sched, a.books, a.version, a.debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	lgr.Print("[INFO] shutdown complete")
	return nil
}

func (a *app) runSync(ctx context.Context, cmd SyncCmd) error {
	report, err := a.syncer.SyncAll(ctx, cmd.Full, cmd.Creator)
	if err != nil {
		return err
	}
	for _, c := range report.Creators {
		if c.Error != "" {
			fmt.Printf("%-24s failed: %s\n", c.Creator, c.Error)
			continue
		}
		fmt.Printf("%-24s fetched %d, new %d\n", c.Creator, c.Fetched, c.Added)
	}
	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d creator(s) failed to sync", failed, len(report.Creators))
	}
	return nil
}

func (a *app) runBuild(ctx context.Context, cmd BuildCmd) error {
	results, err := a.books.Build(ctx, cmd.Creator, cmd.DefaultSeries)
	for _, r := range results {
		fmt.Printf("%s: %d chapter(s) -> %s\n", r.Series, r.Chapters, r.Path)
	}
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no series detected")
	}
	return nil
}

func (a *app) runUpdate(ctx context.Context, cmd UpdateCmd) error {
	if cmd.Series == "" {
		if cmd.EPUB != "" {
			return errors.New("--epub requires --series")
		}
		results, err := a.books.UpdateExisting(ctx, cmd.Creator)
		for _, r := range results {
			fmt.Printf("%s: added %d chapter(s)\n", r.Path, r.Added)
		}
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no new chapters")
		}
		return nil
	}

	res, err := a.books.Update(ctx, cmd.Creator, cmd.Series, cmd.EPUB)
	if err != nil {
		return err
	}
	if res.Warning != "" {
		fmt.Printf("warning: %s\n", res.Warning)
	}
	fmt.Printf("%s: %d existing, added %d chapter(s)\n", res.Path, res.Existing, res.Added)
	return nil
}

func (a *app) runDetect(ctx context.Context, cmd DetectCmd) error {
	det, err := a.books.Detect(ctx, cmd.Creator)
	if err != nil {
		return err
	}
	for _, s := range det.Series {
		state := "new"
		if s.Exists {
			state = "exists"
		}
		fmt.Printf("%-40s %4d chapter(s) %s-%s [%s]\n", s.Key, s.Chapters, numStr(s.First), numStr(s.Last), state)
	}
	if len(det.Unmatched) > 0 {
		fmt.Printf("%d post(s) without series:\n", len(det.Unmatched))
		for _, title := range det.Unmatched {
			fmt.Printf("  %s\n", title)
		}
	}
	return nil
}

func (a *app) addCreator(ctx context.Context, creatorURL, name string) error {
	slug := domain.SlugFromURL(creatorURL)
	if slug == "" {
		return fmt.Errorf("can't get creator slug from %q", creatorURL)
	}
	if name == "" {
		name = domain.NameFromSlug(slug)
	}
	if err := a.repos.Creator.Save(ctx, domain.Creator{Slug: slug, Name: name, URL: creatorURL, Enabled: true}); err != nil {
		return err
	}
	fmt.Printf("added %s (%s)\n", name, slug)
	return nil
}

func (a *app) removeCreator(ctx context.Context, slug string) error {
	if err := a.repos.Creator.Remove(ctx, slug); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", slug)
	return nil
}

func (a *app) listCreators(ctx context.Context) error {
	creators, err := a.repos.Creator.List(ctx, false)
	if err != nil {
		return err
	}
	for _, c := range creators {
		lastSync, latest := "never", "-"
		if c.LastSync != nil {
			lastSync = c.LastSync.Local().Format(time.DateTime)
		}
		published, err := a.repos.Post.LatestPublished(ctx, c.Slug)
		if err != nil {
			return err
		}
		if published != nil {
			latest = published.Local().Format(time.DateOnly)
		}
		state := ""
		if !c.Enabled {
			state = " [disabled]"
		}
		fmt.Printf("%-24s %-30s posts: %-5d latest: %-10s synced: %s%s\n", c.Slug, c.Name, c.TotalPosts, latest, lastSync, state)
	}
	return nil
}

func numStr(n *int) string {
	if n == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *n)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(os.Stderr)}
	if dbg {
		logOpts = []lgr.Option{lgr.Out(os.Stderr), lgr.Err(os.Stderr), lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
