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

package transpositiontable

import (
	. "github.com/corechess/engine/internal/types"
)

// TtEntry is one slot of a bucket. Only the high 16 bits of the 64-bit
// Zobrist key are stored - the bucket index already accounts for the low
// bits, so a 16-bit tag is enough to make same-bucket collisions rare
// without paying for a full key compare or a full key store.
type TtEntry struct {
	key16 uint16 // high 16 bits of the Zobrist key, 0 means "empty"
	move  uint16 // 16-bit move part of a Move - convert with Move(e.Move)
	eval  int16  // static evaluation value
	value int16  // search value
	vmeta uint16 // depth:7 vtype:2 wasPV:1 gen:6
}

const (
	// TtEntrySize is the size in bytes of one entry.
	TtEntrySize = 10

	genMask    = uint16(0b0000_0000_0011_1111)
	wasPVMask  = uint16(0b0000_0000_0100_0000)
	vtypeMask  = uint16(0b0000_0001_1000_0000)
	vtypeShift = uint16(7)
	depthMask  = uint16(0b1111_1110_0000_0000)
	depthShift = uint16(9)

	// genSpan is the modulus the generation counter wraps at - it has to
	// match what the 6-bit gen field can hold.
	genSpan = uint8(64)
)

func (e *TtEntry) isEmpty() bool {
	return e.key16 == 0 && e.vmeta == 0
}

func (e *TtEntry) setMeta(depth int8, vtype ValueType, wasPV bool, gen uint8) {
	m := uint16(depth)<<depthShift | uint16(vtype)<<vtypeShift | uint16(gen)&genMask
	if wasPV {
		m |= wasPVMask
	}
	e.vmeta = m
}

// refresh marks the entry as just used in the given generation, without
// touching its stored depth/value/move - a TT hit keeps an entry alive
// even if its search value was not deep enough to act on.
func (e *TtEntry) refresh(gen uint8) {
	e.vmeta = (e.vmeta &^ genMask) | (uint16(gen) & genMask)
}

// replacementScore is how worth-keeping this entry is: deeper entries and
// entries written in a more recent generation score higher. Put() replaces
// whichever entry in the bucket scores lowest.
func (e *TtEntry) replacementScore(currentGen uint8) int {
	genDiff := (currentGen - e.Gen()) % genSpan
	return int(e.Depth()) - 8*int(genDiff)
}

func (e *TtEntry) Move() Move {
	return Move(e.move)
}

func (e *TtEntry) Value() Value {
	return Value(e.value)
}

func (e *TtEntry) Eval() Value {
	return Value(e.eval)
}

func (e *TtEntry) Depth() int8 {
	return int8((e.vmeta & depthMask) >> depthShift)
}

func (e *TtEntry) Gen() uint8 {
	return uint8(e.vmeta & genMask)
}

// WasPV reports whether this entry was last written by a PV (or a node
// that was part of a PV search's window) rather than a pure scout search.
// Callers use this to treat a TT hit as "PV-ish" for reduction purposes
// even when the current node itself is not a PV node.
func (e *TtEntry) WasPV() bool {
	return e.vmeta&wasPVMask != 0
}

func (e *TtEntry) Vtype() ValueType {
	return ValueType((e.vmeta & vtypeMask) >> vtypeShift)
}
