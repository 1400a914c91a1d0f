package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hailam/polybook/internal/book"
	"github.com/hailam/polybook/internal/config"
)

var (
	configPath    = flag.String("config", "", "YAML configuration file")
	bookPath      = flag.String("book", "", "Polyglot book file (.bin, optionally zstd compressed)")
	positionsPath = flag.String("positions", "", "file with one FEN per line")
	workers       = flag.Int("workers", 0, "number of positions probed in parallel")
	castling      = flag.String("castling", "", "castling notation: uci or polyglot")
	stats         = flag.Bool("stats", false, "print book statistics")
	cpuprofile    = flag.String("cpuprofile", "", "write cpu profile to file")
)

// fenFlags collects repeated -fen flags.
type fenFlags []string

func (f *fenFlags) String() string     { return strings.Join(*f, ", ") }
func (f *fenFlags) Set(s string) error { *f = append(*f, s); return nil }

func main() {
	var fens fenFlags
	flag.Var(&fens, "fen", "position to probe (repeatable)")
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	positions := cfg.Positions
	for _, fen := range fens {
		positions = append(positions, config.Position{FEN: fen})
	}
	if *positionsPath != "" {
		more, err := readPositions(*positionsPath)
		if err != nil {
			log.Fatal(err)
		}
		positions = append(positions, more...)
	}

	start := time.Now()
	tbl, err := book.LoadFile(cfg.Book)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Loaded %s: %d records in %v", cfg.Book, tbl.Len(), time.Since(start).Round(time.Millisecond))

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *stats {
		fmt.Fprintf(out, "records   %d\n", tbl.Len())
		fmt.Fprintf(out, "positions %d\n", tbl.Positions())
	}

	if len(positions) == 0 {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reports, err := probeAll(ctx, tbl, positions, cfg)
	if err != nil {
		out.Flush()
		log.Fatal(err)
	}
	for _, r := range reports {
		r.print(out)
	}
}

// loadConfig merges the config file, if any, with command-line flags.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	if *bookPath != "" {
		cfg.Book = *bookPath
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *castling != "" {
		cfg.Castling = *castling
	}
	return cfg, cfg.Validate()
}

// readPositions reads one FEN per line. Blank lines and lines starting
// with '#' are skipped.
func readPositions(filename string) ([]config.Position, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "positions")
	}
	defer f.Close()

	var positions []config.Position
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		positions = append(positions, config.Position{
			Name: fmt.Sprintf("%s:%d", filename, line),
			FEN:  text,
		})
	}
	return positions, errors.Wrap(scanner.Err(), "positions")
}
