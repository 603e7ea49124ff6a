// Package interner gives the compiler and VM stable, O(1)-comparable
// identities for string content: a byte string goes in, a dense integer
// Symbol comes out, and the same content always yields the same Symbol.
package interner

import "hash/fnv"

// Symbol is an opaque handle produced by an Interner. Two symbols from the
// same Interner are equal if and only if the content they were interned
// from is equal.
type Symbol int32

// Interner is a bijection between distinct strings and dense Symbols
// assigned in insertion order starting at 0. The zero value is ready to use.
type Interner struct {
	symbols map[string]Symbol
	strings []string
}

// New returns a ready-to-use Interner.
func New() *Interner {
	return &Interner{symbols: make(map[string]Symbol)}
}

// Intern returns the Symbol for s, allocating a new one if s has not been
// seen before. It never fails.
func (in *Interner) Intern(s string) Symbol {
	if in.symbols == nil {
		in.symbols = make(map[string]Symbol)
	}
	if sym, ok := in.symbols[s]; ok {
		return sym
	}
	sym := Symbol(len(in.strings))
	in.strings = append(in.strings, s)
	in.symbols[s] = sym
	return sym
}

// Lookup returns the string originally interned under sym. It panics if sym
// was not produced by this Interner, which is always a programmer error.
func (in *Interner) Lookup(sym Symbol) string {
	return in.strings[sym]
}

// Hash computes the FNV-1a 64-bit hash of data, using the standard offset
// basis (0xcbf29ce484222325) and prime (0x100000001b3). Go's hash/fnv
// package implements exactly this algorithm, so its output is known and
// testable. The Interner itself does not call Hash: its content-to-Symbol
// table is a Go map, which uses Go's own (unspecified, randomized) hashing.
func Hash(data []byte) uint64 {
	h := fnv.New64a()
	h.Write(data) //nolint:errcheck // hash.Hash.Write never errors
	return h.Sum64()
}
