package fbas

import (
	"bytes"
	"encoding/binary"
	"sort"

	"golang.org/x/crypto/sha3"
)

// Fingerprint returns a content hash of f's standard form: two FBAS values
// that differ only in registration order (and so in NodeId assignment), or
// in unsatisfiable nodes, hash identically; public keys are part of the
// hash. This is used as a cache key for analysis results, since the
// minimal-quorum, blocking-set and splitting-set families depend, up to
// NodeId numbering, only on the standard form.
func (f *FBAS) Fingerprint() [32]byte {
	standard := StandardForm(f)
	var buf bytes.Buffer
	for _, node := range standard.nodes {
		buf.WriteString(node.PublicKey)
		buf.WriteByte(0)
		writeQuorumSet(&buf, node.QuorumSet)
	}
	return sha3.Sum256(buf.Bytes())
}

// writeQuorumSet serializes qs with validators sorted ascending so that
// logically identical quorum sets serialize identically regardless of the
// order their validators were declared in.
func writeQuorumSet(buf *bytes.Buffer, qs QuorumSet) {
	var thresholdBytes [8]byte
	binary.LittleEndian.PutUint64(thresholdBytes[:], uint64(qs.Threshold))
	buf.Write(thresholdBytes[:])

	validators := append([]NodeId(nil), qs.Validators...)
	sort.Slice(validators, func(i, j int) bool { return validators[i] < validators[j] })

	var lenBytes [8]byte
	binary.LittleEndian.PutUint64(lenBytes[:], uint64(len(validators)))
	buf.Write(lenBytes[:])
	for _, v := range validators {
		binary.LittleEndian.PutUint64(lenBytes[:], uint64(v))
		buf.Write(lenBytes[:])
	}

	binary.LittleEndian.PutUint64(lenBytes[:], uint64(len(qs.InnerSets)))
	buf.Write(lenBytes[:])
	for _, inner := range qs.InnerSets {
		writeQuorumSet(buf, inner)
	}
}
