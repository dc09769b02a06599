// Command mint compiles a routing profile and optionally scores an edge.
//
//	mint -p bike.mint                  check a profile and print its constants
//	mint -p bike.mint -e edge.yaml     score the edge described in edge.yaml
//	mint -p bike.mint -s               also save the profile in the store
//	mint -n bike -e edge.yaml          load the profile "bike" from the store
//
// The store location defaults to $MINT_DB, the cache size to
// $MINT_CACHE_SIZE, and $MINT_DEBUG enables debug logging.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/xyproto/env/v2"

	"github.com/sandrolain/gomint"
	"github.com/sandrolain/gomint/pkg/cache"
	"github.com/sandrolain/gomint/pkg/parser"
	"github.com/sandrolain/gomint/pkg/scoring"
	"github.com/sandrolain/gomint/pkg/store"
	"github.com/sandrolain/gomint/pkg/tagdict"
	"github.com/sandrolain/gomint/pkg/types"
)

type options struct {
	profileFile string
	edgeFile    string
	dbPath      string
	name        string
	save        bool
	verbose     bool
	cacheSize   int
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: mint [options]\n"+
		"\n"+
		"options:\n"+
		"  -p FILE  profile source file\n"+
		"  -n NAME  load the named profile from the store\n"+
		"  -e FILE  edge fixture (YAML) to score\n"+
		"  -d PATH  profile store database [$MINT_DB]\n"+
		"  -s       save the profile in the store\n"+
		"  -v       verbose output [$MINT_DEBUG]\n"+
		"  -h       show this help\n"+
		"\n"+
		"mint %s\n", gomint.Version())
}

func parseArgs(args []string) (*options, int) {
	o := &options{
		dbPath:    env.Str("MINT_DB", "mint.db"),
		cacheSize: env.Int("MINT_CACHE_SIZE", cache.DefaultCapacity),
		verbose:   env.Bool("MINT_DEBUG"),
	}

	opts, optind, err := getopt.Getopts(args, "p:e:d:n:svh")
	if err != nil {
		fail("%v", err)
		return nil, 2
	}
	if optind < len(args) {
		fail("unexpected argument %q", args[optind])
		return nil, 2
	}

	for _, optV := range opts {
		switch optV.Option {
		case 'p':
			o.profileFile = optV.Value
		case 'e':
			o.edgeFile = optV.Value
		case 'd':
			o.dbPath = optV.Value
		case 'n':
			o.name = optV.Value
		case 's':
			o.save = true
		case 'v':
			o.verbose = true
		default: // case 'h':
			usage()
			return nil, 1
		}
	}

	if (o.profileFile == "") == (o.name == "") {
		fail("exactly one of -p and -n is required")
		return nil, 2
	}
	return o, 0
}

func run(o *options) int {
	ctx := context.Background()

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var db *store.Store
	if o.name != "" || o.save {
		var err error
		if db, err = store.Open(o.dbPath); err != nil {
			fail("%v", err)
			return 1
		}
		defer db.Close()
	}

	source, err := readSource(ctx, o, db)
	if err != nil {
		fail("%v", err)
		return 1
	}

	profile, err := parser.Parse(source)
	if err != nil {
		reportError(source, err)
		return 1
	}

	var edge *edgeFixture
	if o.edgeFile != "" {
		if edge, err = loadEdge(o.edgeFile); err != nil {
			fail("%v", err)
			return 1
		}
	}

	dict := tagdict.New()
	dict.InsertAll(profile.Vocabulary()...)
	if edge != nil {
		dict.InsertAll(edge.words()...)
	}

	loader := gomint.NewLoader(dict,
		gomint.WithCacheSize(o.cacheSize),
		gomint.WithDebug(o.verbose),
		gomint.WithLogger(logger),
		gomint.WithRuntimeOptions(scoring.WithGlobals(globalNames(edge)...)),
	)
	defer loader.Close()

	rt, err := loader.Load(source)
	if err != nil {
		reportError(source, err)
		return 1
	}
	color.Green("profile %q ok", rt.Name())

	consts := rt.Constants()
	for i, def := range profile.Constants {
		fmt.Printf("  %-24s %s\n", def.Name, consts[i])
	}

	if o.save {
		if err := db.Put(ctx, rt.Name(), source); err != nil {
			fail("%v", err)
			return 1
		}
		color.Cyan("saved %q to %s", rt.Name(), o.dbPath)
	}

	if edge == nil {
		return 0
	}

	score, err := rt.Score(
		dict.Encode(edge.Source),
		dict.Encode(edge.Target),
		dict.Encode(edge.Way),
		edge.lookup,
	)
	if err != nil {
		reportError(source, err)
		return 1
	}

	if score.Penalty >= scoring.Impassable {
		color.Red("impassable (penalty %g)", score.Penalty)
	} else {
		fmt.Printf("penalty     %g\n", score.Penalty)
	}
	fmt.Printf("cost factor %g\n", score.CostFactor)
	return 0
}

func readSource(ctx context.Context, o *options, db *store.Store) (string, error) {
	if o.name != "" {
		return db.Source(ctx, o.name)
	}
	data, err := os.ReadFile(o.profileFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func globalNames(edge *edgeFixture) []string {
	names := append([]string(nil), scoring.DefaultGlobals...)
	if edge == nil {
		return names
	}
	for name := range edge.Globals {
		names = append(names, name)
	}
	return names
}

func reportError(source string, err error) {
	fail("%v", err)

	var perr *types.Error
	if !errors.As(err, &perr) || perr.Position < 0 || perr.Position > len(source) {
		return
	}
	line, col := 1, 1
	for _, r := range source[:perr.Position] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	color.New(color.FgYellow).Fprintf(os.Stderr, "  at line %d, column %d\n", line, col)
}

func fail(format string, args ...interface{}) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "mint: "+format+"\n", args...)
}

func main() {
	o, code := parseArgs(os.Args)
	if o == nil {
		os.Exit(code)
	}
	os.Exit(run(o))
}
