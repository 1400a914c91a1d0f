package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/polybook/internal/board"
	"github.com/hailam/polybook/internal/book"
	"github.com/hailam/polybook/internal/config"
)

type candidate struct {
	move   string
	weight uint16
	learn  uint32
}

type report struct {
	name       string
	fen        string
	key        uint64
	candidates []candidate
	skipped    []string
}

// probeAll looks every position up in tbl. Lookups share the table without
// locking; reports come back in input order.
func probeAll(ctx context.Context, tbl *book.Table, positions []config.Position, cfg *config.Config) ([]report, error) {
	reports := make([]report, len(positions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range positions {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := probe(tbl, positions[i], cfg.Castling)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func probe(tbl *book.Table, p config.Position, castling string) (report, error) {
	pos, err := board.ParseFEN(p.FEN)
	if err != nil {
		return report{}, errors.Wrapf(err, "position %q", p.Name)
	}

	r := report{name: p.Name, fen: pos.ToFEN(), key: pos.PolyglotHash()}
	for _, rec := range tbl.EntriesFor(r.key) {
		m, ok, err := rec.DecodeMove()
		if err != nil {
			r.skipped = append(r.skipped, fmt.Sprintf("%04x: %v", rec.Move, err))
			continue
		}
		if !ok {
			continue
		}
		if castling == config.CastlingUCI && m.IsCastleCandidate() {
			if pos.KingOn(pos.Turn, board.NewSquare(int(m.FromFile), int(m.FromRank))) {
				m = m.KingTarget()
			}
		}
		r.candidates = append(r.candidates, candidate{move: m.String(), weight: rec.Weight, learn: rec.Learn})
	}
	return r, nil
}

func (r report) print(w io.Writer) {
	if r.name != "" {
		fmt.Fprintf(w, "# %s\n", r.name)
	}
	fmt.Fprintf(w, "fen %s\n", r.fen)
	fmt.Fprintf(w, "key %016x\n", r.key)
	if len(r.candidates) == 0 {
		fmt.Fprintln(w, "  (not in book)")
	}
	for _, c := range r.candidates {
		fmt.Fprintf(w, "  %-6s weight=%-5d learn=%d\n", c.move, c.weight, c.learn)
	}
	for _, s := range r.skipped {
		fmt.Fprintf(w, "  skipped %s\n", s)
	}
	fmt.Fprintln(w)
}
