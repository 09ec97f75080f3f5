package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/texpress/app/generate"
	"github.com/umputun/texpress/app/janitor"
	"github.com/umputun/texpress/app/notify"
	"github.com/umputun/texpress/app/typeset"
	"github.com/umputun/texpress/app/web"
	"github.com/umputun/texpress/app/web/persistence"
)

var opts struct {
	Port        int     `long:"port" env:"PORT" default:"5000" description:"web server port"`
	Listen      string  `long:"listen" env:"TEXPRESS_LISTEN" default:"" description:"listen address, empty for all interfaces"`
	WorkDir     string  `long:"work-dir" env:"TEXPRESS_WORK_DIR" description:"directory for job files, texpress dir in system temp dir if empty"`
	StaticDir   string  `long:"static" env:"TEXPRESS_STATIC" description:"directory with frontend files served at /"`
	BaseURL     string  `long:"base-url" env:"TEXPRESS_BASE_URL" description:"base URL path for reverse proxy (e.g., /texpress)"`
	MaxBodySize int64   `long:"max-body" env:"TEXPRESS_MAX_BODY" default:"1048576" description:"max request body size in bytes"`
	RateLimit   float64 `long:"rate-limit" env:"TEXPRESS_RATE_LIMIT" default:"0" description:"max generation requests per second per ip, 0 to disable"`
	GeminiKey   string  `long:"gemini-key" env:"GEMINI_API_KEY" description:"Gemini API key"`
	Dbg         bool    `long:"dbg" env:"TEXPRESS_DEBUG" description:"debug mode"`

	Compiler struct {
		Binary   string        `long:"binary" env:"BINARY" description:"compiler executable, tectonic if empty"`
		Timeout  time.Duration `long:"timeout" env:"TIMEOUT" default:"0s" description:"compilation timeout, 0 for none"`
		MaxDiags int           `long:"max-diag" env:"MAX_DIAG" default:"200" description:"max stderr lines returned as diagnostics"`
	} `group:"compiler" namespace:"compiler" env-namespace:"TEXPRESS_COMPILER"`

	Gen struct {
		Model      string        `long:"model" env:"MODEL" description:"Gemini model, gemini-2.5-flash if empty"`
		PromptFile string        `long:"prompt" env:"PROMPT" description:"yaml file with prompt overrides"`
		Timeout    time.Duration `long:"timeout" env:"TIMEOUT" default:"0s" description:"generation timeout, 0 for none"`
		BaseURL    string        `long:"api-url" env:"API_URL" description:"Gemini API endpoint override"`

		Repeater struct {
			Attempts int           `long:"attempts" env:"ATTEMPTS" default:"1" description:"how many times to call generation service"`
			Duration time.Duration `long:"duration" env:"DURATION" default:"1s" description:"initial duration"`
			Factor   float64       `long:"factor" env:"FACTOR" default:"3" description:"backoff factor"`
			Jitter   bool          `long:"jitter" env:"JITTER" description:"jitter"`
		} `group:"repeater" namespace:"repeater" env-namespace:"REPEATER"`
	} `group:"gen" namespace:"gen" env-namespace:"TEXPRESS_GEN"`

	History struct {
		DBPath string `long:"db" env:"DB" description:"sqlite file for job history, disabled if empty"`
		Keep   int    `long:"keep" env:"KEEP" default:"10000" description:"max history records to keep, 0 for all"`
	} `group:"history" namespace:"history" env-namespace:"TEXPRESS_HISTORY"`

	Janitor struct {
		Interval    time.Duration `long:"interval" env:"INTERVAL" default:"10m" description:"sweep interval"`
		MaxAge      time.Duration `long:"max-age" env:"MAX_AGE" default:"1h" description:"remove job files older than this"`
		MinDiskFree int           `long:"min-disk-free" env:"MIN_DISK_FREE" default:"0" description:"warn if free disk percent drops below, 0 to disable"`
	} `group:"janitor" namespace:"janitor" env-namespace:"TEXPRESS_JANITOR"`

	Notify struct {
		Destinations []string      `long:"dest" env:"DEST" env-delim:"," description:"failure report destinations, webhook URLs or mailto: addresses"`
		Timeout      time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"notification timeout"`
		MaxLines     int           `long:"max-lines" env:"MAX_LINES" default:"20" description:"max diagnostic lines in report"`
		HostName     string        `long:"host" env:"HOSTNAME" description:"host name reported in notifications"`
		SMTPHost     string        `long:"smtp-host" env:"SMTP_HOST" description:"SMTP host"`
		SMTPPort     int           `long:"smtp-port" env:"SMTP_PORT" default:"25" description:"SMTP port"`
		SMTPUsername string        `long:"smtp-username" env:"SMTP_USERNAME" description:"SMTP user name"`
		SMTPPassword string        `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password"`
		SMTPTLS      bool          `long:"smtp-tls" env:"SMTP_TLS" description:"enable SMTP TLS"`
	} `group:"notify" namespace:"notify" env-namespace:"TEXPRESS_NOTIFY"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging to file"`
		Filename        string `long:"filename" env:"FILENAME" default:"texpress.log" description:"file to write logs to"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"maximum size in megabytes before rotation"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"maximum number of old log files to retain"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"0" description:"maximum days to retain old log files"`
		EnabledCompress bool   `long:"enabled-compress" env:"ENABLED_COMPRESS" description:"compress rotated log files"`
	} `group:"log" namespace:"log" env-namespace:"TEXPRESS_LOG"`
}

var revision = "unknown"

func main() {
	fmt.Printf("texpress %s\n", revision)

	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}
	logOut := setupLogs()
	if closer, ok := logOut.(io.Closer); ok {
		defer closer.Close()
	}

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel) // handle SIGQUIT and SIGTERM

	if err := run(ctx); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	workDir := resolveWorkDir(opts.WorkDir)
	if err := os.MkdirAll(workDir, 0o750); err != nil {
		return fmt.Errorf("can't make work dir %s: %w", workDir, err)
	}

	compiler := &typeset.Compiler{Binary: opts.Compiler.Binary, Timeout: opts.Compiler.Timeout, MaxDiagLines: opts.Compiler.MaxDiags}
	typesetter := typeset.NewService(compiler, workDir)

	gen, model, err := makeGenerator()
	if err != nil {
		return err
	}

	var store *persistence.SQLiteStore
	if opts.History.DBPath != "" {
		if store, err = persistence.NewSQLiteStore(opts.History.DBPath); err != nil {
			return fmt.Errorf("can't open job history: %w", err)
		}
		defer store.Close()
		log.Printf("[INFO] job history enabled, %s", opts.History.DBPath)
	}

	cfg := web.Config{
		Typesetter:  typesetter,
		Generator:   gen,
		BaseURL:     validateBaseURL(opts.BaseURL),
		StaticDir:   opts.StaticDir,
		Version:     revision,
		MaxBodySize: opts.MaxBodySize,
		RateLimit:   opts.RateLimit,
		Settings: web.Settings{
			CompilerBinary:   compilerBinary(compiler),
			CompilerTimeout:  opts.Compiler.Timeout,
			WorkDir:          workDir,
			GeneratorModel:   model,
			GeneratorEnabled: opts.GeminiKey != "",
			HistoryEnabled:   store != nil,
		},
	}
	if store != nil {
		cfg.Store = store // avoid typed nil in the interface
	}
	if notif := makeNotifier(); notif != nil {
		cfg.Notifier = notif
	}

	srv, err := web.New(cfg)
	if err != nil {
		return err
	}

	jn := &janitor.Janitor{Dir: workDir, MaxAge: opts.Janitor.MaxAge, Interval: opts.Janitor.Interval,
		MinDiskFree: opts.Janitor.MinDiskFree}
	if store != nil {
		jn.History, jn.KeepHistory = store, opts.History.Keep
	}
	go func() {
		if err := jn.Run(ctx); err != nil {
			log.Printf("[WARN] janitor failed, %v", err)
		}
	}()

	return srv.Run(ctx, net.JoinHostPort(opts.Listen, strconv.Itoa(opts.Port)))
}

// makeGenerator returns generator with Gemini client, the model reported in status
func makeGenerator() (*generate.Generator, string, error) {
	var promptCfg generate.PromptConfig
	if opts.Gen.PromptFile != "" {
		var err error
		if promptCfg, err = generate.LoadPromptConfig(opts.Gen.PromptFile); err != nil {
			return nil, "", err
		}
	}

	model := generate.DefaultModel
	switch {
	case opts.Gen.Model != "":
		model = opts.Gen.Model
	case promptCfg.Model != "":
		model = promptCfg.Model
	}
	if opts.GeminiKey == "" {
		log.Printf("[WARN] %s not set, latex generation requests will fail", "GEMINI_API_KEY")
	}

	client := &generate.GeminiClient{APIKey: opts.GeminiKey, Model: model, Timeout: opts.Gen.Timeout, BaseURL: opts.Gen.BaseURL}

	var rptr generate.Repeater
	if opts.Gen.Repeater.Attempts > 1 {
		rptr = repeater.New(&strategy.Backoff{Repeats: opts.Gen.Repeater.Attempts, Duration: opts.Gen.Repeater.Duration,
			Factor: opts.Gen.Repeater.Factor, Jitter: opts.Gen.Repeater.Jitter})
	}

	gen, err := generate.New(client, rptr, promptCfg)
	if err != nil {
		return nil, "", fmt.Errorf("can't make generator: %w", err)
	}
	return gen, model, nil
}

func makeNotifier() *notify.Notifier {
	if len(opts.Notify.Destinations) == 0 {
		return nil
	}
	params := notify.Params{
		Destinations: opts.Notify.Destinations,
		Timeout:      opts.Notify.Timeout,
		Host:         makeHostName(),
		MaxLines:     opts.Notify.MaxLines,
	}
	if opts.Notify.SMTPHost != "" {
		params.SMTP = &notify.SMTPParams{
			Host:     opts.Notify.SMTPHost,
			Port:     opts.Notify.SMTPPort,
			TLS:      opts.Notify.SMTPTLS,
			Username: opts.Notify.SMTPUsername,
			Password: opts.Notify.SMTPPassword,
		}
	}
	log.Printf("[INFO] failure notifications enabled, %d destination(s)", len(params.Destinations))
	return notify.New(params)
}

func makeHostName() string {
	if opts.Notify.HostName != "" {
		return opts.Notify.HostName
	}
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

// resolveWorkDir returns dir or, if empty, a dedicated texpress directory inside the system temp dir.
// The janitor sweeps the work dir, so it never points to the shared temp dir itself.
func resolveWorkDir(dir string) string {
	if dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "texpress")
}

func compilerBinary(c *typeset.Compiler) string {
	if c.Binary != "" {
		return c.Binary
	}
	return typeset.DefaultBinary
}

// validateBaseURL normalizes base URL, returns empty for root
func validateBaseURL(u string) string {
	u = strings.TrimSuffix(u, "/")
	if u != "" && !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return u
}

// setupLogs configures lgr and returns the writer logs go to
func setupLogs() io.Writer {
	var out io.Writer = os.Stdout
	if opts.Log.Enabled {
		out = &lumberjack.Logger{
			Filename:   opts.Log.Filename,
			MaxSize:    opts.Log.MaxSize,
			MaxBackups: opts.Log.MaxBackups,
			MaxAge:     opts.Log.MaxAge,
			Compress:   opts.Log.EnabledCompress,
		}
	}

	logOpts := []log.Option{log.Msec, log.LevelBraces, log.Out(out), log.Err(out)}
	if opts.Dbg {
		logOpts = append(logOpts, log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile)
	}
	log.Setup(logOpts...)
	return out
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == stackDumpSignal { // print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			log.Printf("[INFO] %v received, shutting down", sig)
			cancel()
		}
	}()
	signal.Notify(sigChan, stackDumpSignal, syscall.SIGTERM, os.Interrupt)
}
