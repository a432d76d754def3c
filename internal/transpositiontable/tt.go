//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package transpositiontable implements a transposition table (cache)
// data structure and functionality for a chess engine search.
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads. Is especially relevant
// for Resize and Clear which should not be called in parallel
// while searching.
package transpositiontable

import (
	"math"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/corechess/engine/internal/logging"
	"github.com/corechess/engine/internal/position"
	. "github.com/corechess/engine/internal/types"
	"github.com/corechess/engine/internal/util"
)

var out = message.NewPrinter(language.German)

const (
	// MaxSizeInMB maximal memory usage of tt
	MaxSizeInMB = 65_536

	// ClusterSize is the number of entries sharing one bucket. A probe
	// only ever has to look at this many slots instead of walking the
	// whole table, and Put has ClusterSize candidates to pick the worst
	// one from instead of always overwriting a single direct-mapped slot.
	ClusterSize = 3
)

// ttBucket groups ClusterSize entries that all hash to the same index.
type ttBucket struct {
	entries [ClusterSize]TtEntry
}

// TtTable is the actual transposition table
// object holding data and state.
// Create with NewTtTable()
type TtTable struct {
	log                *logging.Logger
	data               []ttBucket
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64 // number of buckets
	numberOfEntries    uint64
	generation         uint8
	Stats              TtStats
}

// TtStats holds statistical data on tt usage
type TtStats struct {
	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfOverwrites uint64
	numberOfUpdates    uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// NewTtTable creates a new TtTable with the given number of megabytes
// as a maximum of memory usage. actual size will be determined
// by the number of elements fitting into this size which need
// to be a power of 2 for efficient hashing/addressing via bit
// masks.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := TtTable{
		log:                myLogging.GetLog(),
		data:               nil,
		sizeInByte:         0,
		hashKeyMask:        0,
		maxNumberOfEntries: 0,
		numberOfEntries:    0,
	}
	tt.Resize(sizeInMByte)
	return &tt
}

// Resize resizes the tt table. All entries will be cleared.
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads. Is especially relevant
// for Resize and Clear which should not be called in parallel
// while searching.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	bucketSize := uint64(unsafe.Sizeof(ttBucket{}))

	// calculate the maximum power of 2 of buckets fitting into the given size in MB
	tt.sizeInByte = uint64(sizeInMByte) * MB
	tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/bucketSize))))
	tt.hashKeyMask = tt.maxNumberOfEntries - 1 // --> 0x0001111....111

	// if TT is resized to 0 we cant have any entries.
	if tt.sizeInByte == 0 {
		tt.maxNumberOfEntries = 0
	}

	// calculate the real memory usage
	tt.sizeInByte = tt.maxNumberOfEntries * bucketSize

	// Create new slice/array - garbage collections takes care of cleanup
	tt.data = make([]ttBucket, tt.maxNumberOfEntries)
	tt.generation = 0

	tt.log.Info(out.Sprintf("TT Size %d MByte, Capacity %d buckets of %d entries (bucket=%dByte, entry=%dByte) (Requested were %d MBytes)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, ClusterSize, bucketSize, unsafe.Sizeof(TtEntry{}), sizeInMByte))
	tt.log.Debug(util.MemStat())
}

// highBits returns the 16 bits of the Zobrist key used to tag entries
// within a bucket.
func highBits(key position.Key) uint16 {
	return uint16(uint64(key) >> 48)
}

// GetEntry returns a pointer to the corresponding tt entry.
// The entry's bucket is located from key and its tag is checked
// against the high bits of key. When it matches, a pointer to the
// entry is returned, otherwise nil. Does not change statistics.
func (tt *TtTable) GetEntry(key position.Key) *TtEntry {
	if tt.maxNumberOfEntries == 0 {
		return nil
	}
	tag := highBits(key)
	bucket := &tt.data[tt.hash(key)]
	for i := range bucket.entries {
		e := &bucket.entries[i]
		if !e.isEmpty() && e.key16 == tag {
			return e
		}
	}
	return nil
}

// Prefetch brings the bucket for key into cache ahead of a Probe/Put for
// it. Go has no portable intrinsic for an explicit CPU prefetch
// instruction, so this is a best effort: touching the bucket's memory
// here overlaps its load latency with whatever the caller does next
// (typically making the move that leads to this position) instead of
// paying for it only once Probe is actually called.
func (tt *TtTable) Prefetch(key position.Key) {
	if tt.maxNumberOfEntries == 0 {
		return
	}
	_ = tt.data[tt.hash(key)]
}

// Probe returns a pointer to the corresponding tt entry, or nil if the
// bucket holds no entry tagged with the high bits of key. On a hit the
// entry's generation is refreshed so it survives future replacement
// decisions a little longer.
func (tt *TtTable) Probe(key position.Key) *TtEntry {
	tt.Stats.numberOfProbes++
	if tt.maxNumberOfEntries == 0 {
		tt.Stats.numberOfMisses++
		return nil
	}
	tag := highBits(key)
	bucket := &tt.data[tt.hash(key)]
	for i := range bucket.entries {
		e := &bucket.entries[i]
		if !e.isEmpty() && e.key16 == tag {
			e.refresh(tt.generation)
			tt.Stats.numberOfHits++
			return e
		}
	}
	tt.Stats.numberOfMisses++
	return nil
}

// Put stores a search result into the tt.
// The bucket for key is scanned for either a matching tag (update in
// place) or an empty slot; if neither exists, the entry with the lowest
// replacementScore in the bucket is evicted.
func (tt *TtTable) Put(key position.Key, move Move, depth int8, value Value, valueType ValueType, eval Value, wasPV bool) {
	if tt.maxNumberOfEntries == 0 {
		return
	}

	tt.Stats.numberOfPuts++

	tag := highBits(key)
	bucket := &tt.data[tt.hash(key)]

	var target *TtEntry
	worstScore := math.MaxInt32
	for i := range bucket.entries {
		e := &bucket.entries[i]
		if e.isEmpty() || e.key16 == tag {
			target = e
			break
		}
		if score := e.replacementScore(tt.generation); score < worstScore {
			worstScore = score
			target = e
		}
	}

	if target.key16 == tag && !target.isEmpty() {
		// Same bucket slot and same tag -> same position. A shallower,
		// non-exact result is dropped entirely - the deeper or exact
		// result already sitting there is worth more than whatever
		// just finished.
		if depth < target.Depth() && valueType != EXACT {
			return
		}
		tt.Stats.numberOfUpdates++
		if move != MoveNone { // preserve an existing move if we store with MoveNone
			target.move = uint16(move)
		}
		if eval != ValueNA { // preserve
			target.eval = int16(eval)
		}
		if value != ValueNA { // preserve
			target.value = int16(value)
			target.setMeta(depth, valueType, wasPV, tt.generation)
		}
		return
	}

	if target.isEmpty() {
		tt.numberOfEntries++
	} else {
		tt.Stats.numberOfCollisions++
		tt.Stats.numberOfOverwrites++
	}
	target.key16 = tag
	target.move = uint16(move)
	target.eval = int16(eval)
	target.value = int16(value)
	target.setMeta(depth, valueType, wasPV, tt.generation)
}

// Clear clears all entries of the tt
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads. Is especially relevant
// for Resize and Clear which should not be called in parallel
// while searching.
func (tt *TtTable) Clear() {
	// Create new slice/array - garbage collections takes care of cleanup
	tt.data = make([]ttBucket, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.generation = 0
	tt.Stats = TtStats{}
}

// Hashfull returns how full the transposition table is in permill as per UCI
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / (tt.maxNumberOfEntries * ClusterSize))
}

// String returns a string representation of this TtTable instance
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB max buckets %d of %d entries (entry=%dByte) entries %d (%d%%) puts %d "+
		"updates %d collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, ClusterSize, unsafe.Sizeof(TtEntry{}), tt.numberOfEntries, tt.Hashfull()/10,
		tt.Stats.numberOfPuts, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfOverwrites, tt.Stats.numberOfProbes,
		tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

// Len returns the number of non empty entries in the tt
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries
}

// AgeEntries starts a new generation. Entries are not touched here -
// Put()'s replacementScore already discounts every entry by how many
// generations old it is, and Probe() refreshes an entry's generation on
// every hit, so ageing is a single counter bump rather than a sweep over
// the whole table.
func (tt *TtTable) AgeEntries() {
	tt.generation = (tt.generation + 1) % genSpan
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

// hash generates the bucket index for the data array from the low bits
// of key. The high bits are used as the in-bucket tag instead (see
// highBits) so the two don't compete for the same entropy.
func (tt *TtTable) hash(key position.Key) uint64 {
	return uint64(key) & tt.hashKeyMask
}
