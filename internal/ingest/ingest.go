// Package ingest parses the stellarbeat "nodes" JSON shape into an
// fbas.FBAS and renders an FBAS back out in the same shape.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fbas-go/analyzer/internal/fbas"
	"github.com/fbas-go/analyzer/internal/logger"
)

var log = logger.New("fbas/ingest")

// rawQuorumSet mirrors the stellarbeat quorumSet object.
type rawQuorumSet struct {
	Threshold       int            `json:"threshold"`
	Validators      []string       `json:"validators"`
	InnerQuorumSets []rawQuorumSet `json:"innerQuorumSets,omitempty"`
}

// rawNode mirrors one element of the stellarbeat nodes array. Fields the
// schema carries but this analyzer has no use for (isp, geoData, versionStr,
// and friends) are intentionally left unmapped; json.Unmarshal ignores them.
type rawNode struct {
	PublicKey string        `json:"publicKey"`
	QuorumSet *rawQuorumSet `json:"quorumSet"`
}

func unsatisfiableRawQuorumSet() rawQuorumSet {
	return rawQuorumSet{Threshold: 1}
}

// resolver turns public keys into NodeIds, registering one the first time it
// sees a public key no input node declared: spec's divergence from the
// original ingestion, which drops such references silently.
type resolver struct {
	pkToID  map[string]fbas.NodeId
	order   []string
	unknown map[string]bool
}

func newResolver(knownPKs []string) *resolver {
	r := &resolver{
		pkToID:  make(map[string]fbas.NodeId, len(knownPKs)),
		unknown: make(map[string]bool),
	}
	for i, pk := range knownPKs {
		r.pkToID[pk] = fbas.NodeId(i)
	}
	r.order = append(r.order, knownPKs...)
	return r
}

func (r *resolver) resolve(pk string) fbas.NodeId {
	if id, ok := r.pkToID[pk]; ok {
		return id
	}
	id := fbas.NodeId(len(r.order))
	r.pkToID[pk] = id
	r.order = append(r.order, pk)
	r.unknown[pk] = true
	log.Warning("quorum set references unregistered public key %q, registering it as unsatisfiable", pk)
	return id
}

func (r *resolver) resolveQuorumSet(raw *rawQuorumSet) fbas.QuorumSet {
	if raw == nil {
		raw = new(rawQuorumSet)
		*raw = unsatisfiableRawQuorumSet()
	}
	validators := make([]fbas.NodeId, len(raw.Validators))
	for i, pk := range raw.Validators {
		validators[i] = r.resolve(pk)
	}
	inner := make([]fbas.QuorumSet, len(raw.InnerQuorumSets))
	for i := range raw.InnerQuorumSets {
		inner[i] = r.resolveQuorumSet(&raw.InnerQuorumSets[i])
	}
	return fbas.QuorumSet{Threshold: raw.Threshold, Validators: validators, InnerSets: inner}
}

// FromReader parses the stellarbeat nodes JSON array read from r.
func FromReader(r io.Reader) (*fbas.FBAS, error) {
	var nodes []rawNode
	if err := json.NewDecoder(r).Decode(&nodes); err != nil {
		return nil, fmt.Errorf("ingest: failed to parse nodes JSON: %w", err)
	}
	return fromRawNodes(nodes)
}

// FromBytes parses the stellarbeat nodes JSON array held in data.
func FromBytes(data []byte) (*fbas.FBAS, error) {
	var nodes []rawNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("ingest: failed to parse nodes JSON: %w", err)
	}
	return fromRawNodes(nodes)
}

func fromRawNodes(nodes []rawNode) (*fbas.FBAS, error) {
	knownPKs := make([]string, len(nodes))
	seen := make(map[string]bool, len(nodes))
	for i, n := range nodes {
		if seen[n.PublicKey] {
			return nil, fmt.Errorf("ingest: duplicate public key %q", n.PublicKey)
		}
		seen[n.PublicKey] = true
		knownPKs[i] = n.PublicKey
	}

	r := newResolver(knownPKs)
	resolvedQS := make([]fbas.QuorumSet, len(nodes))
	for i, n := range nodes {
		resolvedQS[i] = r.resolveQuorumSet(n.QuorumSet)
	}

	f := fbas.New()
	for i, n := range nodes {
		if _, err := f.AddNode(fbas.Node{PublicKey: n.PublicKey, QuorumSet: resolvedQS[i]}); err != nil {
			return nil, fmt.Errorf("ingest: node %q: %w", n.PublicKey, err)
		}
	}
	for _, pk := range r.order[len(nodes):] {
		qs := fbas.QuorumSet{Threshold: 1}
		if _, err := f.AddNode(fbas.Node{PublicKey: pk, QuorumSet: qs}); err != nil {
			return nil, fmt.Errorf("ingest: unresolved reference %q: %w", pk, err)
		}
	}
	log.Debug("ingested %d declared nodes plus %d unresolved references", len(nodes), len(r.order)-len(nodes))
	return f, nil
}

// Marshal renders f back into the stellarbeat nodes JSON shape, for tooling
// that wants to hand a reduced or merged FBAS to something else stellarbeat-
// shaped downstream.
func Marshal(f *fbas.FBAS) ([]byte, error) {
	ids := f.AllNodes().Slice()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]rawNode, len(ids))
	for i, id := range ids {
		node, ok := f.Node(id)
		if !ok {
			continue
		}
		qs := toRawQuorumSet(node.QuorumSet, f)
		out[i] = rawNode{PublicKey: node.PublicKey, QuorumSet: &qs}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("ingest: failed to marshal FBAS: %w", err)
	}
	return data, nil
}

func toRawQuorumSet(qs fbas.QuorumSet, f *fbas.FBAS) rawQuorumSet {
	validators := make([]string, len(qs.Validators))
	for i, v := range qs.Validators {
		if pk, ok := f.GetPublicKey(v); ok {
			validators[i] = pk
		} else {
			validators[i] = fmt.Sprintf("missing #%d", v)
		}
	}
	inner := make([]rawQuorumSet, len(qs.InnerSets))
	for i, is := range qs.InnerSets {
		inner[i] = toRawQuorumSet(is, f)
	}
	return rawQuorumSet{Threshold: qs.Threshold, Validators: validators, InnerQuorumSets: inner}
}
