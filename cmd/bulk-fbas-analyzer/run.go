package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/fbas-go/analyzer/internal/analysis"
	"github.com/fbas-go/analyzer/internal/cache"
	"github.com/fbas-go/analyzer/internal/fbas"
	"github.com/fbas-go/analyzer/internal/ingest"
	"github.com/fbas-go/analyzer/internal/logger"
	"github.com/fbas-go/analyzer/internal/orgmerge"
)

var log = logger.New("fbas/bulk")

// outputDataPoint is one CSV row, one per analyzed input file.
type outputDataPoint struct {
	Label                 string
	File                  string
	Nodes                 int
	MergedByOrganizations bool
	HasQuorumIntersection bool
	TopTierSize           int
	MinimalQuorums        int
	MinimalBlockingSets   int
	MinimalSplittingSets  int
	DurationSeconds       float64
}

var csvHeader = []string{
	"label", "file", "nodes", "merged_by_organizations", "has_quorum_intersection",
	"top_tier_size", "minimal_quorums", "minimal_blocking_sets", "minimal_splitting_sets",
	"duration_seconds",
}

func (o outputDataPoint) csvRow() []string {
	return []string{
		o.Label,
		o.File,
		strconv.Itoa(o.Nodes),
		strconv.FormatBool(o.MergedByOrganizations),
		strconv.FormatBool(o.HasQuorumIntersection),
		strconv.Itoa(o.TopTierSize),
		strconv.Itoa(o.MinimalQuorums),
		strconv.Itoa(o.MinimalBlockingSets),
		strconv.Itoa(o.MinimalSplittingSets),
		strconv.FormatFloat(o.DurationSeconds, 'f', 6, 64),
	}
}

// runBulk fans inputs out over a bounded pool of goroutines, consults the
// result cache before running a full analysis, and writes one CSV row per
// input once every analysis has finished.
func runBulk(ctx context.Context, inputs []inputDataPoint, concurrency int, c *cache.Cache, out io.Writer) error {
	results := make([]outputDataPoint, len(inputs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	progress := term.IsTerminal(int(os.Stderr.Fd()))
	done := 0

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			result, err := analyzeOne(in, c)
			if err != nil {
				return fmt.Errorf("%s: %w", in.NodesPath, err)
			}
			results[i] = result
			if progress {
				done++
				fmt.Fprintf(os.Stderr, "\ranalyzed %d/%d", done, len(inputs))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if progress {
		fmt.Fprintln(os.Stderr)
	}

	return writeCSV(out, results)
}

func analyzeOne(in inputDataPoint, c *cache.Cache) (outputDataPoint, error) {
	start := time.Now()

	f, err := loadFBAS(in.NodesPath)
	if err != nil {
		return outputDataPoint{}, err
	}

	mergedByOrg := in.OrganizationsPath != ""
	if mergedByOrg {
		orgs, err := loadOrganizations(in.OrganizationsPath, f)
		if err != nil {
			return outputDataPoint{}, err
		}
		f, _ = orgmerge.Merge(f, orgs)
	}

	fingerprint := f.Fingerprint()
	var result analysis.Result
	if c != nil {
		if found, err := c.Get(fingerprint, &result); err == nil && found {
			log.Debug("cache hit for %s (fingerprint %x)", in.NodesPath, fingerprint)
			result.AllNodes = f.AllNodes()
			return toOutputDataPoint(in, mergedByOrg, result, time.Since(start)), nil
		}
	}

	result = analysis.Run(f, analysis.Options{})
	if c != nil {
		if err := c.Put(fingerprint, result); err != nil {
			log.Warning("failed to cache result for %s: %v", in.NodesPath, err)
		}
	}
	return toOutputDataPoint(in, mergedByOrg, result, time.Since(start)), nil
}

func toOutputDataPoint(in inputDataPoint, mergedByOrg bool, result analysis.Result, elapsed time.Duration) outputDataPoint {
	return outputDataPoint{
		Label:                 in.Label,
		File:                  in.NodesPath,
		Nodes:                 result.AllNodes.Len(),
		MergedByOrganizations: mergedByOrg,
		HasQuorumIntersection: result.HasQuorumIntersection,
		TopTierSize:           result.TopTier.Len(),
		MinimalQuorums:        len(result.MinimalQuorums),
		MinimalBlockingSets:   len(result.MinimalBlockingSets),
		MinimalSplittingSets:  len(result.MinimalSplittingSets),
		DurationSeconds:       elapsed.Seconds(),
	}
}

func loadFBAS(path string) (*fbas.FBAS, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer file.Close()
	return ingest.FromReader(file)
}

func loadOrganizations(path string, f *fbas.FBAS) ([]orgmerge.Organization, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer file.Close()
	return orgmerge.ParseOrganizations(file, f)
}

func writeCSV(out io.Writer, results []outputDataPoint) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range results {
		if err := w.Write(r.csvRow()); err != nil {
			return fmt.Errorf("writing CSV row for %q: %w", r.File, err)
		}
	}
	w.Flush()
	return w.Error()
}
