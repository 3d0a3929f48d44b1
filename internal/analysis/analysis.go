// Package analysis runs the structural analyses over an FBAS and collects
// their results. It holds no state across calls: Run is a pure function of
// the FBAS and Options it is given, consistent with the core's
// no-persistent-state, no-incremental-update contract.
package analysis

import (
	"github.com/fbas-go/analyzer/internal/fbas"
	"github.com/fbas-go/analyzer/internal/logger"
)

var log = logger.New("fbas/analysis")

// Options customizes which analyses Run performs and which node set the
// blocking- and splitting-set enumerators draw candidates from.
type Options struct {
	// BlockingSetTarget restricts the blocking-set enumerator's candidate
	// pool. The zero value means "use the intact set", the conventional
	// default.
	BlockingSetTarget fbas.NodeIdSet

	// SplittingSetTarget restricts the splitting-set enumerator's candidate
	// pool. The zero value means "use the intact set", spec's Open Question
	// resolution for which nodes a splitting set may be drawn from.
	SplittingSetTarget fbas.NodeIdSet

	// SkipBlockingSets and SkipSplittingSets let a caller that only wants
	// quorum intersection skip the more expensive enumerators.
	SkipBlockingSets  bool
	SkipSplittingSets bool
}

// Result collects everything Run computed.
type Result struct {
	AllNodes              fbas.NodeIdSet
	SatisfiableNodes      fbas.NodeIdSet
	UnsatisfiableNodes    fbas.NodeIdSet
	OneNodeQuorums        []fbas.NodeId
	TopTier               fbas.NodeIdSet
	MinimalQuorums        []fbas.NodeIdSet
	HasQuorumIntersection bool
	MinimalBlockingSets   []fbas.NodeIdSet
	MinimalSplittingSets  []fbas.NodeIdSet
}

// Run performs the full analysis pipeline: intact-set reduction, per-SCC
// minimal-quorum enumeration, quorum-intersection decision, and (unless
// skipped) minimal blocking- and splitting-set enumeration.
func Run(f *fbas.FBAS, opts Options) Result {
	log.Debug("starting analysis of an FBAS with %d nodes", f.NumberOfNodes())

	satisfiable, unsatisfiable := fbas.FindSatisfiableNodes(f.AllNodes(), f)
	log.Debug("intact set has %d of %d nodes", satisfiable.Len(), f.NumberOfNodes())

	var quorums []fbas.NodeIdSet
	for _, scc := range fbas.StronglyConnectedComponents(satisfiable, f) {
		if fbas.ContainsQuorum(scc, f) {
			quorums = append(quorums, fbas.FindMinimalQuorums(scc, f)...)
		}
	}
	quorums = fbas.RemoveNonMinimal(quorums)
	log.Debug("found %d minimal quorums", len(quorums))

	topTier := fbas.NewNodeIdSet(f.NumberOfNodes())
	for _, q := range quorums {
		topTier.Union(q)
	}

	result := Result{
		AllNodes:              f.AllNodes(),
		SatisfiableNodes:      satisfiable,
		UnsatisfiableNodes:    unsatisfiable,
		OneNodeQuorums:        fbas.OneNodeQuorums(f),
		TopTier:               topTier,
		MinimalQuorums:        quorums,
		HasQuorumIntersection: fbas.HasQuorumIntersection(quorums),
	}

	if !opts.SkipBlockingSets {
		target := opts.BlockingSetTarget
		if target.IsEmpty() {
			target = satisfiable
		}
		result.MinimalBlockingSets = fbas.FindMinimalBlockingSets(quorums, target)
		log.Debug("found %d minimal blocking sets", len(result.MinimalBlockingSets))
	}
	if !opts.SkipSplittingSets {
		target := opts.SplittingSetTarget
		if target.IsEmpty() {
			target = satisfiable
		}
		result.MinimalSplittingSets = fbas.FindMinimalSplittingSets(quorums, target)
		log.Debug("found %d minimal splitting sets", len(result.MinimalSplittingSets))
	}

	return result
}
