// Command borepix ingests depth-scan CSVs into a frame database and serves
// the resulting images over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/borepix/borepix"
	"github.com/borepix/borepix/internal/csvframe"
	"github.com/borepix/borepix/internal/httpapi"
	"github.com/borepix/borepix/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "ingest":
		err = runIngest(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: borepix <command> [flags]

commands:
  ingest   load a scan CSV into the frame database
  serve    serve stored frames over HTTP
  verify   list stored frames and check their PNG signatures`)
}

// setupLogging installs a text slog handler at the requested level.
func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("bad log level %q: %w", level, err)
	}
	borepix.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

func runIngest(args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	var (
		csvPath     = fs.String("csv", "data/frames.csv", "path to the scan CSV")
		dbPath      = fs.String("db", "frames.db", "path to the SQLite database")
		chunkSize   = fs.Int("chunk-size", csvframe.DefaultChunkSize, "frames per database transaction")
		sourceWidth = fs.Int("source-width", borepix.DefaultSourceWidth, "expected samples per CSV row")
		targetWidth = fs.Int("target-width", borepix.DefaultTargetWidth, "output image width")
		logLevel    = fs.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	_ = fs.Parse(args)
	if err := setupLogging(*logLevel); err != nil {
		return err
	}

	pipeline, err := borepix.NewPipeline(borepix.WithWidths(*sourceWidth, *targetWidth))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	f, err := os.Open(*csvPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	res, err := csvframe.Ingest(ctx, f, pipeline, st, *chunkSize)
	if err != nil {
		return err
	}

	fmt.Printf("rows processed:  %d\n", res.RowsProcessed)
	fmt.Printf("frames upserted: %d\n", res.FramesUpserted)
	fmt.Printf("rows skipped:    %d\n", res.RowsSkipped)
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		addr     = fs.String("addr", ":8080", "listen address")
		dbPath   = fs.String("db", "frames.db", "path to the SQLite database")
		logLevel = fs.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	_ = fs.Parse(args)
	if err := setupLogging(*logLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	lut, err := borepix.BuildLUT(borepix.DefaultStops)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.New(st, lut),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	borepix.Logger().Info("serving frames", slog.String("addr", *addr), slog.String("db", *dbPath))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	dbPath := fs.String("db", "frames.db", "path to the SQLite database")
	_ = fs.Parse(args)

	ctx := context.Background()
	st, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	metas, err := st.List(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("frames in database: %d\n", len(metas))

	bad := 0
	for _, m := range metas {
		f, err := st.Get(ctx, m.Depth)
		if err != nil {
			return err
		}
		ok := borepix.IsPNG(f.PNG)
		if !ok {
			bad++
		}
		fmt.Printf("depth %8.2f | %dx%d | %7d bytes | png=%v | updated %s\n",
			m.Depth, m.Width, m.Height, len(f.PNG), ok, m.UpdatedAt.Format(time.RFC3339))
	}
	if bad > 0 {
		return fmt.Errorf("%d frames with an invalid PNG signature", bad)
	}
	return nil
}
