// Package orgmerge collapses every node belonging to the same organization
// into a single logical node, so set-based analyses (minimal quorums,
// blocking sets, splitting sets) can be interpreted at organization
// granularity instead of individual-validator granularity.
package orgmerge

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fbas-go/analyzer/internal/fbas"
	"github.com/fbas-go/analyzer/internal/logger"
)

var log = logger.New("fbas/orgmerge")

// Organization names a set of NodeIds that vouch for one another: any single
// member suffices for the organization as a whole to vouch for a statement.
type Organization struct {
	Name       string
	Validators []fbas.NodeId
}

type rawOrganization struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Validators []string `json:"validators"`
}

// ParseOrganizations reads a stellarbeat organizations document and resolves
// each member's public key against f. A member referencing a public key f
// does not know about is dropped rather than treated as an error, matching
// the original ingestion's "unknown members are simply not grouped" policy
// (organizations are metadata about nodes that must already exist, unlike a
// quorum set reference, which asserts something about the FBAS's structure).
func ParseOrganizations(r io.Reader, f *fbas.FBAS) ([]Organization, error) {
	var raw []rawOrganization
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("orgmerge: failed to parse organizations JSON: %w", err)
	}
	orgs := make([]Organization, 0, len(raw))
	for _, ro := range raw {
		var validators []fbas.NodeId
		for _, pk := range ro.Validators {
			id, ok := f.GetNodeId(pk)
			if !ok {
				log.Warning("organization %q references unknown public key %q, dropping it", ro.Name, pk)
				continue
			}
			validators = append(validators, id)
		}
		if len(validators) == 0 {
			continue
		}
		orgs = append(orgs, Organization{Name: ro.Name, Validators: validators})
	}
	return orgs, nil
}

// merger maps every original NodeId to the representative NodeId of its
// organization (or to itself, for nodes belonging to no organization).
type merger struct {
	representative []fbas.NodeId
}

func newMerger(n int, orgs []Organization) *merger {
	rep := make([]fbas.NodeId, n)
	for i := range rep {
		rep[i] = fbas.NodeId(i)
	}
	for _, org := range orgs {
		if len(org.Validators) == 0 {
			continue
		}
		leader := org.Validators[0]
		for _, v := range org.Validators {
			rep[v] = leader
		}
	}
	return &merger{representative: rep}
}

func (m *merger) mergeNode(id fbas.NodeId) fbas.NodeId {
	return m.representative[id]
}

// mergeQuorumSet rewrites qs so every validator reference points at its
// organization's representative, then folds any inner quorum set that
// collapsed down to a single effective validator into the validator list —
// the inlined quorum set itself had to have already absorbed any further
// nesting for this to apply, so an inner quorum set that both collapses to
// one validator and still carries of its own inner quorum sets has those
// dropped. If every validator ends up identical after merging (the whole
// thing reduced to one organization), the validator list collapses to that
// single validator with threshold 1; any remaining inner sets are kept
// beside it.
func (m *merger) mergeQuorumSet(qs fbas.QuorumSet) fbas.QuorumSet {
	threshold := qs.Threshold
	validators := make([]fbas.NodeId, len(qs.Validators))
	for i, v := range qs.Validators {
		validators[i] = m.mergeNode(v)
	}

	var innerSets []fbas.QuorumSet
	for _, inner := range qs.InnerSets {
		merged := m.mergeQuorumSet(inner)
		if len(merged.Validators) == 1 {
			validators = append(validators, merged.Validators[0])
		} else {
			innerSets = append(innerSets, merged)
		}
	}

	if len(validators) > 0 {
		allSame := true
		for _, v := range validators {
			if v != validators[0] {
				allSame = false
				break
			}
		}
		if allSame {
			validators = []fbas.NodeId{validators[0]}
			threshold = 1
		}
	}

	return fbas.QuorumSet{Threshold: threshold, Validators: validators, InnerSets: innerSets}
}

// Merge rewrites f so that every organization's members collapse into one
// node: the representative's quorum set becomes a one-of-N choice over its
// members' own (merged) quorum sets, matching "any one member suffices for
// the organization to vouch". Nodes belonging to no organization keep their
// own (merged) quorum set unchanged. It returns the merged FBAS together
// with a map from every original NodeId to its NodeId in the merged FBAS,
// so per-node results computed over the original FBAS can be reinterpreted
// at organization granularity.
func Merge(f *fbas.FBAS, orgs []Organization) (*fbas.FBAS, map[fbas.NodeId]fbas.NodeId) {
	n := f.NumberOfNodes()
	m := newMerger(n, orgs)

	orgByLeader := make(map[fbas.NodeId]Organization)
	for _, org := range orgs {
		if len(org.Validators) > 0 {
			orgByLeader[org.Validators[0]] = org
		}
	}

	var representatives []fbas.NodeId
	for id := 0; id < n; id++ {
		nid := fbas.NodeId(id)
		if m.mergeNode(nid) == nid {
			representatives = append(representatives, nid)
		}
	}

	repToNew := make(map[fbas.NodeId]fbas.NodeId, len(representatives))
	for i, rep := range representatives {
		repToNew[rep] = fbas.NodeId(i)
	}

	merged := fbas.New()
	for _, rep := range representatives {
		qs := m.mergedQuorumSetFor(rep, orgByLeader, f)
		qs = remapToDense(qs, repToNew)
		pk, _ := f.GetPublicKey(rep)
		if _, err := merged.AddNode(fbas.Node{PublicKey: pk, QuorumSet: qs}); err != nil {
			// representatives are distinct public keys by construction, and
			// mergedQuorumSetFor never exceeds its own child count.
			panic(fmt.Sprintf("orgmerge: unexpected AddNode failure for %q: %v", pk, err))
		}
	}

	oldToNew := make(map[fbas.NodeId]fbas.NodeId, n)
	for id := 0; id < n; id++ {
		oldToNew[fbas.NodeId(id)] = repToNew[m.mergeNode(fbas.NodeId(id))]
	}

	log.Debug("merged %d nodes into %d organizations/nodes", n, len(representatives))
	return merged, oldToNew
}

func (m *merger) mergedQuorumSetFor(rep fbas.NodeId, orgByLeader map[fbas.NodeId]Organization, f *fbas.FBAS) fbas.QuorumSet {
	org, isOrg := orgByLeader[rep]
	if !isOrg {
		node, _ := f.Node(rep)
		return m.mergeQuorumSet(node.QuorumSet)
	}
	inner := make([]fbas.QuorumSet, 0, len(org.Validators))
	for _, member := range org.Validators {
		node, ok := f.Node(member)
		if !ok {
			continue
		}
		inner = append(inner, m.mergeQuorumSet(node.QuorumSet))
	}
	return fbas.QuorumSet{Threshold: 1, InnerSets: inner}
}

func remapToDense(qs fbas.QuorumSet, repToNew map[fbas.NodeId]fbas.NodeId) fbas.QuorumSet {
	validators := make([]fbas.NodeId, len(qs.Validators))
	for i, v := range qs.Validators {
		validators[i] = repToNew[v]
	}
	inner := make([]fbas.QuorumSet, len(qs.InnerSets))
	for i, is := range qs.InnerSets {
		inner[i] = remapToDense(is, repToNew)
	}
	return fbas.QuorumSet{Threshold: qs.Threshold, Validators: validators, InnerSets: inner}
}

// MergeNodeSet rewrites every member of s to its organization's NodeId in
// the merged FBAS that oldToNew describes.
func MergeNodeSet(s fbas.NodeIdSet, oldToNew map[fbas.NodeId]fbas.NodeId) fbas.NodeIdSet {
	var out fbas.NodeIdSet
	for _, id := range s.Slice() {
		out.Insert(oldToNew[id])
	}
	return out
}

// MergeNodeSets applies MergeNodeSet to every set and sieves the result down
// to sets minimal w.r.t. each other, since merging commonly turns previously
// distinct sets into duplicates or supersets of one another.
func MergeNodeSets(sets []fbas.NodeIdSet, oldToNew map[fbas.NodeId]fbas.NodeId) []fbas.NodeIdSet {
	out := make([]fbas.NodeIdSet, len(sets))
	for i, s := range sets {
		out[i] = MergeNodeSet(s, oldToNew)
	}
	return fbas.RemoveNonMinimal(out)
}
