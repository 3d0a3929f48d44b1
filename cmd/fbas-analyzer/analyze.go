package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fbas-go/analyzer/internal/analysis"
	"github.com/fbas-go/analyzer/internal/fbas"
	"github.com/fbas-go/analyzer/internal/ingest"
	"github.com/fbas-go/analyzer/internal/logger"
	"github.com/fbas-go/analyzer/internal/orgmerge"
)

func runAnalyze(ctx context.Context, opts *options) error {
	if opts.logConfigFile != "" {
		if err := logger.LoadConfigFile(opts.logConfigFile); err != nil {
			return fmt.Errorf("loading log config: %w", err)
		}
	} else if err := logger.Configure(logger.Config{DefaultLevel: opts.logLevel}); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	f, err := readFBAS(opts.nodesPath)
	if err != nil {
		return err
	}

	prettyName := map[fbas.NodeId]string{}
	for _, id := range f.AllNodes().Slice() {
		pk, _ := f.GetPublicKey(id)
		prettyName[id] = pk
	}

	if opts.organizationsPath != "" {
		fmt.Fprintln(os.Stderr, "will collapse by organization; reading organizations JSON from file...")
		orgs, err := readOrganizations(opts.organizationsPath, f)
		if err != nil {
			return err
		}
		var oldToNew map[fbas.NodeId]fbas.NodeId
		f, oldToNew = orgmerge.Merge(f, orgs)

		orgNameByNewID := make(map[fbas.NodeId]string, len(orgs))
		for _, org := range orgs {
			if len(org.Validators) > 0 {
				orgNameByNewID[oldToNew[org.Validators[0]]] = org.Name
			}
		}
		newPretty := map[fbas.NodeId]string{}
		for _, id := range f.AllNodes().Slice() {
			if name, ok := orgNameByNewID[id]; ok {
				newPretty[id] = name
			} else {
				pk, _ := f.GetPublicKey(id)
				newPretty[id] = pk
			}
		}
		prettyName = newPretty
	}

	if len(opts.withoutNodes) > 0 {
		toRemove := fbas.NewNodeIdSet(f.NumberOfNodes())
		for _, pk := range opts.withoutNodes {
			id, ok := f.GetNodeId(pk)
			if !ok {
				return fmt.Errorf("--without-nodes: unknown node %q", pk)
			}
			toRemove.Insert(id)
		}
		var remap map[fbas.NodeId]fbas.NodeId
		f, remap = fbas.WithoutNodes(f, toRemove)
		newPretty := map[fbas.NodeId]string{}
		for old, neu := range remap {
			newPretty[neu] = prettyName[old]
		}
		prettyName = newPretty
	}

	q, c, b, i := opts.minimalQuorums, opts.checkQuorumIntersection, opts.minimalBlockingSets, opts.minimalSplittingSets
	if opts.all {
		q, c, b, i = true, true, true, true
	}
	if !q && !c && !b && !i {
		fmt.Fprintln(os.Stderr, "nothing to do... (try the -a flag?)")
		return nil
	}

	result := analysis.Run(f, analysis.Options{
		SkipBlockingSets:  !b,
		SkipSplittingSets: !i,
	})

	say := func(format string, args ...interface{}) {
		if !opts.silent {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}

	say("found %d unsatisfiable nodes (ignored in the following)", result.UnsatisfiableNodes.Len())
	printIDs("unsatisfiable_nodes", result.UnsatisfiableNodes, f, prettyName, opts)

	if q {
		say("found %d minimal quorums", len(result.MinimalQuorums))
		printSets("minimal_quorums", result.MinimalQuorums, f, prettyName, opts)
	}
	if c {
		if result.HasQuorumIntersection {
			say("all quorums intersect")
			fmt.Println("has_quorum_intersection: true")
		} else {
			say("some quorums don't intersect - safety is threatened")
			fmt.Println("has_quorum_intersection: false")
		}
	}
	if b {
		say("found %d minimal blocking sets", len(result.MinimalBlockingSets))
		printSets("minimal_blocking_sets", result.MinimalBlockingSets, f, prettyName, opts)
	}
	if i {
		say("found %d minimal splitting sets", len(result.MinimalSplittingSets))
		printSets("minimal_splitting_sets", result.MinimalSplittingSets, f, prettyName, opts)
	}
	if q || b || i {
		var all []fbas.NodeIdSet
		all = append(all, result.MinimalQuorums...)
		all = append(all, result.MinimalBlockingSets...)
		all = append(all, result.MinimalSplittingSets...)
		involved := fbas.InvolvedNodes(all)
		say("there is a total of %d distinct nodes involved in all of these sets", involved.Len())
		if opts.describe {
			fmt.Printf("involved_nodes: %d\n", involved.Len())
		} else {
			printIDs("involved_nodes", involved, f, prettyName, opts)
		}
	}
	return nil
}

func readFBAS(path string) (*fbas.FBAS, error) {
	if path == "" {
		fmt.Fprintln(os.Stderr, "reading FBAS JSON from stdin...")
		return ingest.FromReader(os.Stdin)
	}
	fmt.Fprintln(os.Stderr, "reading FBAS JSON from file...")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer file.Close()
	return ingest.FromReader(file)
}

func readOrganizations(path string, f *fbas.FBAS) ([]orgmerge.Organization, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer file.Close()
	return orgmerge.ParseOrganizations(file, f)
}

func printIDs(name string, ids fbas.NodeIdSet, f *fbas.FBAS, pretty map[fbas.NodeId]string, opts *options) {
	if opts.describe {
		fmt.Printf("%s: %d\n", name, ids.Len())
		return
	}
	fmt.Printf("%s: %s\n", name, formatIDs(ids.Slice(), pretty, opts.outputPretty))
}

func printSets(name string, sets []fbas.NodeIdSet, f *fbas.FBAS, pretty map[fbas.NodeId]string, opts *options) {
	if opts.describe {
		d := fbas.Describe(sets)
		fmt.Printf("%s: (%d, %d, %d, %.2f, %d)\n", name, d.Count, d.MinSize, d.MaxSize, d.MeanSize, d.InvolvedNodes)
		return
	}
	parts := make([]string, len(sets))
	for i, s := range sets {
		parts[i] = "{" + formatIDs(s.Slice(), pretty, opts.outputPretty) + "}"
	}
	fmt.Printf("%s: [%s]\n", name, strings.Join(parts, ", "))
}

func formatIDs(ids []fbas.NodeId, pretty map[fbas.NodeId]string, usePretty bool) string {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, len(ids))
	for i, id := range ids {
		if usePretty {
			parts[i] = pretty[id]
		} else {
			parts[i] = fmt.Sprint(id)
		}
	}
	return strings.Join(parts, ", ")
}
