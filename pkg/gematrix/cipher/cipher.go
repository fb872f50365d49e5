// Package cipher maps text to integer scores under the fixed set of
// gematria ciphers. Every function here is pure and safe for concurrent use.
package cipher

// Cipher identifies one scoring scheme. The string name returned by
// String is the stable key used in persisted score sets.
type Cipher uint8

// Primary ciphers followed by the legacy keys kept for stored rows.
// The order is the order of every Scores value and every score map.
const (
	EnglishGematria Cipher = iota
	SimpleGematria
	UnknownGematria
	PythagorasGematria
	JewishGematria
	PrimeGematria
	ReverseSatanicGematria
	ClockGematria
	ReverseClockGematria
	System9Gematria
	FrancisBaconGematria
	SeptenaryGematria
	GlyphGeometryGematria

	EnglishOrdinal
	ReverseOrdinal
	FullReduction
	ReverseReduction
	Satanic
	Jewish
	Chaldean
	Primes
	Trigonal
	Squares

	numCiphers
)

// Count is the number of score keys produced for every input.
const Count = int(numCiphers)

// PrimaryCount is the number of non-legacy ciphers.
const PrimaryCount = int(EnglishOrdinal)

var names = [Count]string{
	EnglishGematria:        "english_gematria",
	SimpleGematria:         "simple_gematria",
	UnknownGematria:        "unknown_gematria",
	PythagorasGematria:     "pythagoras_gematria",
	JewishGematria:         "jewish_gematria",
	PrimeGematria:          "prime_gematria",
	ReverseSatanicGematria: "reverse_satanic_gematria",
	ClockGematria:          "clock_gematria",
	ReverseClockGematria:   "reverse_clock_gematria",
	System9Gematria:        "system9_gematria",
	FrancisBaconGematria:   "francis_bacon_gematria",
	SeptenaryGematria:      "septenary_gematria",
	GlyphGeometryGematria:  "glyph_geometry_gematria",
	EnglishOrdinal:         "english_ordinal",
	ReverseOrdinal:         "reverse_ordinal",
	FullReduction:          "full_reduction",
	ReverseReduction:       "reverse_reduction",
	Satanic:                "satanic",
	Jewish:                 "jewish",
	Chaldean:               "chaldean",
	Primes:                 "primes",
	Trigonal:               "trigonal",
	Squares:                "squares",
}

var byName = func() map[string]Cipher {
	m := make(map[string]Cipher, Count)
	for i, n := range names {
		m[n] = Cipher(i)
	}
	return m
}()

// String returns the persisted key for c, or "" for an out-of-range value.
func (c Cipher) String() string {
	if !c.Valid() {
		return ""
	}
	return names[c]
}

// Valid reports whether c is one of the defined ciphers.
func (c Cipher) Valid() bool {
	return c < numCiphers
}

// Legacy reports whether c is one of the backward-compatibility keys.
func (c Cipher) Legacy() bool {
	return c >= EnglishOrdinal && c < numCiphers
}

// Parse resolves a persisted key to its Cipher.
func Parse(name string) (Cipher, bool) {
	c, ok := byName[name]
	return c, ok
}

// All returns every cipher in score order.
func All() []Cipher {
	out := make([]Cipher, Count)
	for i := range out {
		out[i] = Cipher(i)
	}
	return out
}

// Names returns every score key in score order.
func Names() []string {
	out := make([]string, Count)
	copy(out, names[:])
	return out
}
