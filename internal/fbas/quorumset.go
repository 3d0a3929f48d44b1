package fbas

import "fmt"

// QuorumSet is a recursive threshold structure: it is satisfied by a NodeIdSet
// S iff at least Threshold of its children (each validator counts 1 if it is
// in S; each inner set counts 1 if it is recursively satisfied by S) are
// satisfied.
type QuorumSet struct {
	Threshold  int
	Validators []NodeId
	InnerSets  []QuorumSet
}

// childCount returns the number of direct children (validators plus inner sets).
func (qs QuorumSet) childCount() int {
	return len(qs.Validators) + len(qs.InnerSets)
}

// Validate checks the invariant 0 <= Threshold <= childCount, recursively.
// A childless quorum set is exempt from the upper bound: any nonnegative
// threshold is valid there, since with no children to count a positive
// threshold is simply the "never satisfied" degenerate case rather than a
// malformed one (see IsQuorumSlice).
func (qs QuorumSet) Validate() error {
	children := qs.childCount()
	if qs.Threshold < 0 || (children > 0 && qs.Threshold > children) {
		return fmt.Errorf("%w: threshold %d, %d children", ErrMalformedQuorumSet, qs.Threshold, children)
	}
	for _, inner := range qs.InnerSets {
		if err := inner.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsQuorumSlice decides whether S satisfies qs, counting satisfied children
// until the threshold is reached and short-circuiting once it is.
//
// Threshold 0 is satisfied by any S, including the empty set (spec-mandated;
// this differs from treating an all-zero quorum set as "never satisfied").
// A threshold exceeding the number of children can never be satisfied.
func (qs QuorumSet) IsQuorumSlice(s NodeIdSet) bool {
	if qs.Threshold == 0 {
		return true
	}
	if qs.Threshold > qs.childCount() {
		return false
	}

	satisfied := 0
	for _, v := range qs.Validators {
		if s.Contains(v) {
			satisfied++
			if satisfied >= qs.Threshold {
				return true
			}
		}
	}
	for _, inner := range qs.InnerSets {
		if inner.IsQuorumSlice(s) {
			satisfied++
			if satisfied >= qs.Threshold {
				return true
			}
		}
	}
	return false
}

// ContainedNodes returns every validator named anywhere in qs, recursively.
func (qs QuorumSet) ContainedNodes() NodeIdSet {
	var out NodeIdSet
	for _, v := range qs.Validators {
		out.Insert(v)
	}
	for _, inner := range qs.InnerSets {
		out.Union(inner.ContainedNodes())
	}
	return out
}

// IsOneNodeQuorumSlice reports whether {v} alone satisfies qs — a node whose
// quorum set has this property forms a one-node quorum all by itself, which
// the original literature flags as a usually-unintentional configuration.
func (qs QuorumSet) IsOneNodeQuorumSlice(v NodeId) bool {
	var singleton NodeIdSet
	singleton.Insert(v)
	return qs.IsQuorumSlice(singleton)
}
