// Command welltest-inspect prints the contents of the well test ledger and,
// optionally, the archived decision reports. Backends are selected through
// the same environment variables the engine uses (WELLCORE_STORAGE_DRIVER,
// WELLCORE_BLOB_DRIVER and friends).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"wellcore/internal/blob"
	"wellcore/internal/core"
	"wellcore/pkg/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type wellEntry struct {
	Name        string  `json:"name"`
	Reason      string  `json:"reason,omitempty"`
	SimTime     float64 `json:"sim_time,omitempty"`
	Completions []int   `json:"closed_completions,omitempty"`
}

type ledgerDump struct {
	Wells     []wellEntry `json:"closed_wells"`
	OpenWells []wellEntry `json:"open_wells_with_closed_completions,omitempty"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("welltest-inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "emit the ledger as JSON")
	reports := fs.Bool("reports", false, "list archived decision reports")
	prefix := fs.String("prefix", "reports/", "archive key prefix when -reports is set")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	store, err := core.OpenLedgerStore(core.NewDefaultRulesEngine(nil))
	if err != nil {
		fmt.Fprintf(stderr, "open ledger: %v\n", err)
		return 1
	}

	var dump ledgerDump
	if err := store.View(ctx, func(view domain.LedgerView) error {
		for _, name := range view.ClosedWells() {
			closure, _ := view.Closure(name)
			dump.Wells = append(dump.Wells, wellEntry{
				Name:        name,
				Reason:      string(closure.Reason),
				SimTime:     closure.SimTime,
				Completions: view.ClosedCompletions(name),
			})
		}
		for _, name := range view.CompletionWells() {
			if view.WellClosed(name) {
				continue
			}
			dump.OpenWells = append(dump.OpenWells, wellEntry{Name: name, Completions: view.ClosedCompletions(name)})
		}
		return nil
	}); err != nil {
		fmt.Fprintf(stderr, "read ledger: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dump); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return 1
		}
	} else {
		if len(dump.Wells) == 0 && len(dump.OpenWells) == 0 {
			fmt.Fprintln(stdout, "ledger is empty")
		}
		for _, w := range dump.Wells {
			fmt.Fprintf(stdout, "well %s closed (%s) at t=%g", w.Name, w.Reason, w.SimTime)
			if len(w.Completions) > 0 {
				fmt.Fprintf(stdout, " completions=%v", w.Completions)
			}
			fmt.Fprintln(stdout)
		}
		for _, w := range dump.OpenWells {
			fmt.Fprintf(stdout, "well %s open, closed completions %v\n", w.Name, w.Completions)
		}
	}

	if *reports {
		return listReports(ctx, stdout, stderr, *prefix)
	}
	return 0
}

func listReports(ctx context.Context, stdout, stderr io.Writer, prefix string) int {
	archive, err := blob.Open(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "open archive: %v\n", err)
		return 1
	}
	infos, err := archive.List(ctx, prefix)
	if err != nil {
		fmt.Fprintf(stderr, "list archive: %v\n", err)
		return 1
	}
	for _, info := range infos {
		fmt.Fprintf(stdout, "report %s (%d bytes, %s)\n", info.Key, info.Size, info.LastModified.Format("2006-01-02T15:04:05Z07:00"))
	}
	if len(infos) == 0 {
		fmt.Fprintln(stdout, "no archived reports")
	}
	return 0
}
