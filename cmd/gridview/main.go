// Command gridview scrolls a large grid of randomly sized cells in the
// terminal. With -dump it prints one text snapshot instead.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/on-the-ground/gridview/config"
	"github.com/on-the-ground/gridview/grid"
	"github.com/on-the-ground/gridview/internal/logging"
	"github.com/on-the-ground/gridview/render/textgrid"
	"github.com/on-the-ground/gridview/sizes"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Engine units per terminal cell.
const (
	unitsPerColumn = 10.0
	unitsPerRow    = 25.0
)

const (
	rowTable    = "row_sizes"
	rowColumn   = "height"
	columnTable = "column_sizes"
	columnCol   = "width"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "gridview:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gridview", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	dbPath := fs.String("db", "", "SQLite file holding row_sizes and column_sizes tables")
	saveDB := fs.Bool("save", false, "write the generated sizes to -db instead of reading them")
	dump := fs.Bool("dump", false, "print one snapshot and exit")
	width := fs.Int("width", 80, "snapshot width in characters")
	height := fs.Int("height", 24, "snapshot height in characters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Defaults()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logPath, err := cfg.String(config.LogFile)
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.NewConsole(logFile, level)
	defer logging.Sync(logger)

	heights, widths, err := loadSizes(ctx, cfg, *dbPath, *saveDB)
	if err != nil {
		return err
	}
	logger.Info("loaded sizes", zap.Int("rows", len(heights)), zap.Int("columns", len(widths)))

	if *dump {
		e, err := newEngine(cfg, heights, widths, *width, *height, logger)
		if err != nil {
			return err
		}
		return snapshot(stdout, e)
	}
	return interactive(ctx, cfg, heights, widths, logger)
}

// loadSizes generates the demo sizes or reads them from a SQLite file.
func loadSizes(ctx context.Context, cfg *config.Binding, dbPath string, save bool) (heights, widths []float64, err error) {
	if dbPath != "" && !save {
		db, err := sizes.OpenSQLite(dbPath)
		if err != nil {
			return nil, nil, err
		}
		defer db.Close()
		return readSizes(ctx, db)
	}

	var rows, columns, seed int
	var e error
	rows, e = cfg.Int(config.DemoRows)
	err = multierr.Append(err, e)
	columns, e = cfg.Int(config.DemoColumns)
	err = multierr.Append(err, e)
	seed, e = cfg.Int(config.DemoSeed)
	err = multierr.Append(err, e)
	if err != nil {
		return nil, nil, err
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	widths = sizes.Random(rng, columns, 75, 50)
	heights = sizes.Random(rng, rows, 25, 50)

	if save {
		db, err := sizes.OpenSQLite(dbPath)
		if err != nil {
			return nil, nil, err
		}
		defer db.Close()
		err = multierr.Combine(
			sizes.StoreSQLite(ctx, db, rowTable, rowColumn, heights),
			sizes.StoreSQLite(ctx, db, columnTable, columnCol, widths),
		)
		if err != nil {
			return nil, nil, err
		}
	}
	return heights, widths, nil
}

func readSizes(ctx context.Context, db *sql.DB) (heights, widths []float64, err error) {
	if heights, err = sizes.LoadSQLite(ctx, db, rowTable, rowColumn); err != nil {
		return nil, nil, err
	}
	if widths, err = sizes.LoadSQLite(ctx, db, columnTable, columnCol); err != nil {
		return nil, nil, err
	}
	return heights, widths, nil
}

// newEngine sizes the viewport to a terminal of cols x lines characters,
// one line of which holds the header strip.
func newEngine(cfg *config.Binding, heights, widths []float64, cols, lines int, logger *zap.Logger) (*grid.Engine, error) {
	opts, err := cfg.GridOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, grid.WithHeaderHeight(unitsPerRow), grid.WithLogger(logger))

	return grid.New(grid.Config{
		RowCount:       len(heights),
		ColumnCount:    len(widths),
		RowSize:        sizes.Slice(heights),
		ColumnSize:     sizes.Slice(widths),
		ViewportHeight: float64(max(lines-1, 0)) * unitsPerRow,
		ViewportWidth:  float64(cols) * unitsPerColumn,
	}, opts...)
}

func snapshot(w io.Writer, e *grid.Engine) error {
	_, err := fmt.Fprintln(w, textgrid.Draw(e.RenderPass(), unitsPerColumn, unitsPerRow))
	return err
}
