package fbas

// SetsDescription summarizes a family of node sets the way an analysis
// front-end reports on minimal quorums, blocking sets, or splitting sets
// without dumping every member.
type SetsDescription struct {
	Count         int
	InvolvedNodes int
	MinSize       int
	MaxSize       int
	MeanSize      float64
}

// Describe computes count/size statistics over sets.
func Describe(sets []NodeIdSet) SetsDescription {
	if len(sets) == 0 {
		return SetsDescription{}
	}
	minSize, maxSize, sum := sets[0].Len(), sets[0].Len(), 0
	var involved NodeIdSet
	for _, s := range sets {
		n := s.Len()
		if n < minSize {
			minSize = n
		}
		if n > maxSize {
			maxSize = n
		}
		sum += n
		involved.Union(s)
	}
	return SetsDescription{
		Count:         len(sets),
		InvolvedNodes: involved.Len(),
		MinSize:       minSize,
		MaxSize:       maxSize,
		MeanSize:      float64(sum) / float64(len(sets)),
	}
}

// InvolvedNodes returns the union of every set.
func InvolvedNodes(sets []NodeIdSet) NodeIdSet {
	var out NodeIdSet
	for _, s := range sets {
		out.Union(s)
	}
	return out
}
