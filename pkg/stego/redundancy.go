package stego

import (
	"math"

	"github.com/klauspost/reedsolomon"
)

// RedundancyParams bundles the redundancy-layer knobs shared by the data and
// header pipelines, so both can be driven by one free function instead of
// two near-duplicate code paths (spec section 9's design note: there is no
// cyclic dependency between the data and header patterns, just two call
// sites for the same parameterized pipeline).
type RedundancyParams struct {
	RepetitiveRedundancy     int
	RepetitiveRedundancyMode string // "byte_per_byte" or "block"

	AdvancedRedundancy                 string // "reed_solomon"/"rs", "hamming"/"ham", "none"/"no"
	AdvancedRedundancyCorrectionFactor float64
}

func dataParamsFromResolved(r *Resolved) RedundancyParams {
	return RedundancyParams{
		RepetitiveRedundancy:               r.RepetitiveRedundancy,
		RepetitiveRedundancyMode:           r.RepetitiveRedundancyMode,
		AdvancedRedundancy:                 r.AdvancedRedundancy,
		AdvancedRedundancyCorrectionFactor: r.AdvancedRedundancyCorrectionFactor,
	}
}

// headerParamsFromResolved builds the header's redundancy parameters. The
// header's repetition mode is forced to byte_per_byte regardless of the
// data's setting (spec section 4.6).
func headerParamsFromResolved(r *Resolved) RedundancyParams {
	return RedundancyParams{
		RepetitiveRedundancy:               r.HeaderRepetitiveRedundancy,
		RepetitiveRedundancyMode:           "byte_per_byte",
		AdvancedRedundancy:                 r.HeaderAdvancedRedundancy,
		AdvancedRedundancyCorrectionFactor: r.HeaderAdvancedRedundancyCorrectionFactor,
	}
}

// ApplyRedundancy encodes data with advanced redundancy first, then
// repetitive redundancy (spec section 4.2: "RS first, then repetition").
func ApplyRedundancy(data []byte, params RedundancyParams) ([]byte, error) {
	advanced, err := applyAdvancedRedundancy(data, params.AdvancedRedundancy, params.AdvancedRedundancyCorrectionFactor)
	if err != nil {
		return nil, err
	}

	if params.RepetitiveRedundancy <= 1 {
		return advanced, nil
	}

	switch params.RepetitiveRedundancyMode {
	case "byte_per_byte":
		return repeatBytePerByte(advanced, params.RepetitiveRedundancy), nil
	case "block":
		return repeatBlock(advanced, params.RepetitiveRedundancy), nil
	default:
		return nil, ErrInvalidRepetitiveRedundancyMode
	}
}

// ReconstructRedundancy reverses ApplyRedundancy: repetition reconstruction
// first, then advanced redundancy decode.
func ReconstructRedundancy(data []byte, params RedundancyParams) ([]byte, error) {
	reduced := data
	if params.RepetitiveRedundancy > 1 {
		var aligned []byte
		switch params.RepetitiveRedundancyMode {
		case "byte_per_byte":
			aligned = data
		case "block":
			aligned = transposeBlockToBytePerByte(data, params.RepetitiveRedundancy)
		default:
			return nil, ErrInvalidRepetitiveRedundancyMode
		}
		reduced = majorityVoteReconstruct(aligned, params.RepetitiveRedundancy)
	}

	return reconstructAdvancedRedundancy(reduced, params.AdvancedRedundancy, params.AdvancedRedundancyCorrectionFactor)
}

func applyAdvancedRedundancy(data []byte, mode string, factor float64) ([]byte, error) {
	switch mode {
	case "reed_solomon", "rs":
		return rsEncode(data, factor)
	case "hamming", "ham":
		return nil, ErrAdvancedRedundancyNotImplemented
	case "none", "no", "":
		return data, nil
	default:
		return nil, ErrInvalidAdvancedRedundancyMode
	}
}

func reconstructAdvancedRedundancy(data []byte, mode string, factor float64) ([]byte, error) {
	switch mode {
	case "reed_solomon", "rs":
		return rsDecode(data, factor)
	case "hamming", "ham":
		return nil, ErrAdvancedRedundancyNotImplemented
	case "none", "no", "":
		return data, nil
	default:
		return nil, ErrInvalidAdvancedRedundancyMode
	}
}

// --- Repetitive redundancy ---------------------------------------------

func repeatBytePerByte(data []byte, k int) []byte {
	out := make([]byte, 0, len(data)*k)
	for _, b := range data {
		for i := 0; i < k; i++ {
			out = append(out, b)
		}
	}
	return out
}

func repeatBlock(data []byte, k int) []byte {
	out := make([]byte, 0, len(data)*k)
	for i := 0; i < k; i++ {
		out = append(out, data...)
	}
	return out
}

// transposeBlockToBytePerByte converts k concatenated copies of an N/k-byte
// buffer into byte_per_byte layout, by strided indexing rather than
// materializing k copies: output byte j*k+r = input byte r*(N/k)+j (spec
// section 9's design note on the block-mode transpose).
func transposeBlockToBytePerByte(data []byte, k int) []byte {
	if k <= 0 || len(data) == 0 {
		return data
	}
	chunkSize := len(data) / k
	out := make([]byte, len(data))
	for j := 0; j < chunkSize; j++ {
		for r := 0; r < k; r++ {
			out[j*k+r] = data[r*chunkSize+j]
		}
	}
	return out
}

// majorityVoteReconstruct reduces a byte_per_byte-repeated buffer (groups of
// k bytes) to one byte per group by majority vote, with neighbor
// tie-breaking, per spec section 4.2.
func majorityVoteReconstruct(data []byte, k int) []byte {
	groupCount := len(data) / k
	out := make([]byte, 0, groupCount)

	for i := 0; i < groupCount; i++ {
		group := data[i*k : i*k+k]
		majority, tie := pickMajority(group)

		if tie {
			neighbors := redundancyNeighbors(i, out, data, k, groupCount)
			majority = closestToNeighbors(group, neighbors)
		}

		out = append(out, majority)
	}

	return out
}

// pickMajority returns the byte with the highest count in the group, and
// whether multiple bytes were tied for that count.
func pickMajority(group []byte) (byte, bool) {
	counts := make(map[byte]int, len(group))
	for _, b := range group {
		counts[b]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	var candidates []byte
	for _, b := range group { // preserve first-encountered order for stable tie-break
		if counts[b] == maxCount {
			already := false
			for _, c := range candidates {
				if c == b {
					already = true
					break
				}
			}
			if !already {
				candidates = append(candidates, b)
			}
		}
	}

	return candidates[0], len(candidates) > 1
}

// redundancyNeighbors returns the neighbor set used to break majority-vote
// ties: the previously reconstructed byte, if any, and the next group's
// majority byte iff that group has a strict majority.
func redundancyNeighbors(index int, reconstructed []byte, data []byte, k, groupCount int) []byte {
	var neighbors []byte

	if index > 0 {
		neighbors = append(neighbors, reconstructed[index-1])
	}

	if index < groupCount-1 {
		next := data[(index+1)*k : (index+2)*k]
		counts := make(map[byte]int, len(next))
		for _, b := range next {
			counts[b]++
		}
		maxCount := 0
		for _, c := range counts {
			if c > maxCount {
				maxCount = c
			}
		}
		var majorityBytes []byte
		for _, b := range next {
			if counts[b] == maxCount {
				found := false
				for _, m := range majorityBytes {
					if m == b {
						found = true
						break
					}
				}
				if !found {
					majorityBytes = append(majorityBytes, b)
				}
			}
		}
		if len(majorityBytes) == 1 {
			neighbors = append(neighbors, majorityBytes[0])
		}
	}

	return neighbors
}

// closestToNeighbors picks, among the tied candidates (all bytes present in
// group with the tied max count), the one with the minimum total L1
// distance to the neighbor set, breaking further ties by first occurrence.
func closestToNeighbors(group []byte, neighbors []byte) byte {
	counts := make(map[byte]int, len(group))
	for _, b := range group {
		counts[b]++
	}
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	bestByte := group[0]
	bestDistance := math.MaxInt64
	seen := make(map[byte]bool, len(group))

	for _, b := range group {
		if counts[b] != maxCount || seen[b] {
			continue
		}
		seen[b] = true

		distance := 0
		for _, n := range neighbors {
			distance += l1Distance(b, n)
		}

		if distance < bestDistance {
			bestDistance = distance
			bestByte = b
		}
	}

	return bestByte
}

func l1Distance(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// --- Reed-Solomon layer --------------------------------------------------

// rsChunkDataSize returns the maximum number of data symbols per RS(255,k)
// chunk for a given correction factor, per spec section 4.2.
func rsChunkDataSize(factor float64) int {
	n := int(math.Floor(255.0 / (1 + 2*factor)))
	if n < 1 {
		n = 1
	}
	if n > 255 {
		n = 255
	}
	return n
}

func rsParitySymbols(chunkDataSize int, factor float64) int {
	p := int(math.Ceil(factor * float64(chunkDataSize) * 2))
	if p < 1 {
		p = 1
	}
	if chunkDataSize+p > 255 {
		p = 255 - chunkDataSize
	}
	return p
}

// rsRedundantSymbolCount estimates the total redundant symbols a buffer of n
// data bytes would grow by under Reed-Solomon at the given correction
// factor, for capacity planning (spec section 4.5).
func rsRedundantSymbolCount(n int, factor float64) int {
	if n <= 0 {
		return 0
	}
	chunkSize := rsChunkDataSize(factor)
	total := 0
	remaining := n
	for remaining > 0 {
		chunk := remaining
		if chunk > chunkSize {
			chunk = chunkSize
		}
		total += rsParitySymbols(chunk, factor)
		remaining -= chunk
	}
	return total
}

func rsEncode(data []byte, factor float64) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	chunkSize := rsChunkDataSize(factor)
	out := make([]byte, 0, len(data)*2)

	for offset := 0; offset < len(data); {
		chunk := data[offset:]
		if len(chunk) > chunkSize {
			chunk = chunk[:chunkSize]
		}
		parity := rsParitySymbols(len(chunk), factor)

		enc, err := reedsolomon.New(len(chunk), parity)
		if err != nil {
			return nil, err
		}
		shards, err := enc.Split(append([]byte{}, chunk...))
		if err != nil {
			return nil, err
		}
		if err := enc.Encode(shards); err != nil {
			return nil, err
		}
		for _, shard := range shards {
			out = append(out, shard...)
		}

		offset += len(chunk)
	}

	return out, nil
}

func rsDecode(data []byte, factor float64) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	chunkSize := rsChunkDataSize(factor)
	fullParity := rsParitySymbols(chunkSize, factor)
	fullEncodedSize := chunkSize + fullParity

	out := make([]byte, 0, len(data))
	remaining := data

	for len(remaining) > 0 {
		var dataLen, parityLen int

		if len(remaining) > fullEncodedSize {
			dataLen, parityLen = chunkSize, fullParity
		} else {
			dataLen, parityLen = solveLastChunk(len(remaining), chunkSize, factor)
		}

		encodedLen := dataLen + parityLen
		if encodedLen > len(remaining) {
			return nil, ErrRSDecodeFailed
		}

		chunk, err := rsDecodeChunk(remaining[:encodedLen], dataLen, parityLen)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
		remaining = remaining[encodedLen:]
	}

	return out, nil
}

// solveLastChunk recovers the final chunk's data-symbol count from its
// encoded length, by scanning candidate sizes (the relationship between
// chunk size and parity is non-linear due to the ceiling in rsParitySymbols,
// so it is solved by search rather than inverted algebraically).
func solveLastChunk(encodedLen, maxChunkSize int, factor float64) (dataLen, parityLen int) {
	for candidate := 1; candidate <= maxChunkSize; candidate++ {
		parity := rsParitySymbols(candidate, factor)
		if candidate+parity == encodedLen {
			return candidate, parity
		}
	}
	// Fall back to treating the whole remainder as data-only; rsDecodeChunk
	// will fail cleanly if this guess is wrong.
	return encodedLen, 0
}

func rsDecodeChunk(encoded []byte, dataLen, parityLen int) ([]byte, error) {
	enc, err := reedsolomon.New(dataLen, parityLen)
	if err != nil {
		return nil, err
	}

	shards := make([][]byte, dataLen+parityLen)
	for i := range shards {
		shards[i] = append([]byte{}, encoded[i])
	}

	if ok, _ := enc.Verify(shards); ok {
		return joinDataShards(shards, dataLen), nil
	}

	maxErasures := parityLen / 2
	if maxErasures < 1 {
		return nil, ErrRSDecodeFailed
	}

	if fixed := reconstructByErasureSearch(enc, shards, maxErasures); fixed != nil {
		return joinDataShards(fixed, dataLen), nil
	}

	return nil, ErrRSDecodeFailed
}

func joinDataShards(shards [][]byte, dataLen int) []byte {
	out := make([]byte, 0, dataLen)
	for i := 0; i < dataLen; i++ {
		out = append(out, shards[i]...)
	}
	return out
}

// reconstructByErasureSearch corrects up to maxErasures silently-corrupted
// shards by trying each combination of presumed-erased shard indices,
// reconstructing, and verifying -- an exhaustive erasure-based decode used
// because the plain erasure-coding API has no syndrome-based error locator.
func reconstructByErasureSearch(enc reedsolomon.Encoder, shards [][]byte, maxErasures int) [][]byte {
	n := len(shards)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	for size := 1; size <= maxErasures; size++ {
		found := tryErasureCombinations(enc, shards, indices, size)
		if found != nil {
			return found
		}
	}
	return nil
}

func tryErasureCombinations(enc reedsolomon.Encoder, shards [][]byte, indices []int, size int) [][]byte {
	n := len(indices)
	combo := make([]int, size)

	var recurse func(start, depth int) [][]byte
	recurse = func(start, depth int) [][]byte {
		if depth == size {
			candidate := make([][]byte, n)
			for i, s := range shards {
				cp := append([]byte{}, s...)
				candidate[i] = cp
			}
			for _, idx := range combo {
				candidate[idx] = nil
			}
			if err := enc.Reconstruct(candidate); err != nil {
				return nil
			}
			if ok, _ := enc.Verify(candidate); ok {
				return candidate
			}
			return nil
		}
		for i := start; i < n; i++ {
			combo[depth] = indices[i]
			if res := recurse(i+1, depth+1); res != nil {
				return res
			}
		}
		return nil
	}

	return recurse(0, 0)
}
