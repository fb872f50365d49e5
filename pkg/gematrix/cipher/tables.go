package cipher

// Table holds the weight for each letter position. Index 0 is unused so
// that Table[1] is A and Table[26] is Z.
type Table [27]int

// Map returns the table as a position -> weight map over 1..26.
func (t *Table) Map() map[int]int {
	m := make(map[int]int, 26)
	for pos := 1; pos <= 26; pos++ {
		m[pos] = t[pos]
	}
	return m
}

func generate(f func(pos int) int) *Table {
	var t Table
	for pos := 1; pos <= 26; pos++ {
		t[pos] = f(pos)
	}
	return &t
}

func explicit(values [26]int) *Table {
	var t Table
	copy(t[1:], values[:])
	return &t
}

var (
	simpleTable         = generate(func(p int) int { return p })
	englishTable        = generate(func(p int) int { return p * 6 })
	unknownTable        = generate(func(p int) int { return p + 98 })
	system9Table        = generate(func(p int) int { return p * 9 })
	francisBaconTable   = generate(func(p int) int { return p + 26 })
	satanicTable        = generate(func(p int) int { return p + 35 })
	reverseSatanicTable = generate(func(p int) int { return 62 - p })
	reverseOrdinalTable = generate(func(p int) int { return 27 - p })
	squaresTable        = generate(func(p int) int { return p * p })
	trigonalTable       = generate(func(p int) int { return p * (p + 1) / 2 })

	pythagorasTable = explicit([26]int{
		1, 2, 3, 4, 5, 6, 7, 8, 9,
		1, 11, 3, 4, 5, 6, 7, 8, 9,
		10, 2, 3, 22, 5, 6, 7, 8,
	})

	jewishTable = explicit([26]int{
		1, 2, 3, 4, 5, 6, 7, 8, 9,
		600, 10, 20, 30, 40, 50, 60, 70, 80, 90,
		100, 200, 700, 900, 300, 400, 500,
	})

	primeTable = explicit([26]int{
		2, 3, 5, 7, 11, 13, 17, 19, 23,
		29, 31, 37, 41, 43, 47, 53, 59, 61, 67,
		71, 73, 79, 83, 89, 97, 101,
	})

	clockTable = explicit([26]int{
		1, 2, 3, 4, 5, 6, 7, 8, 9,
		10, 11, 12, 1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12, 1, 2,
	})

	reverseClockTable = explicit([26]int{
		2, 1, 12, 11, 10, 9, 8, 7, 6,
		5, 4, 3, 2, 1, 12, 11, 10, 9,
		8, 7, 6, 5, 4, 3, 2, 1,
	})

	septenaryTable = explicit([26]int{
		1, 2, 3, 4, 5, 6, 7, 6, 5,
		4, 3, 2, 1, 1, 2, 3, 4, 5,
		6, 7, 6, 5, 4, 3, 2, 1,
	})

	reductionTable = explicit([26]int{
		1, 2, 3, 4, 5, 6, 7, 8, 9,
		1, 2, 3, 4, 5, 6, 7, 8, 9,
		1, 2, 3, 4, 5, 6, 7, 8,
	})

	reverseReductionTable = explicit([26]int{
		8, 7, 6, 5, 4, 3, 2, 1, 9,
		8, 7, 6, 5, 4, 3, 2, 1, 9,
		8, 7, 6, 5, 4, 3, 2, 1,
	})

	chaldeanTable = explicit([26]int{
		1, 2, 3, 4, 5, 8, 3, 5, 1,
		1, 2, 3, 4, 5, 7, 8, 1, 2,
		3, 4, 6, 6, 6, 5, 1, 7,
	})

	glyphGeometryTable = glyphGeometry()
)

// Typographic properties of the capital letters A..Z.
var (
	glyphLines = [26]int{
		3, 1, 0, 1, 4, 3, 1, 3, 1,
		1, 3, 2, 4, 3, 0, 1, 1, 2,
		0, 2, 2, 2, 4, 2, 3, 3,
	}
	glyphCurves = [26]int{
		0, 2, 1, 1, 0, 0, 1, 0, 0,
		1, 0, 0, 0, 0, 1, 1, 1, 1,
		2, 0, 1, 0, 0, 0, 0, 0,
	}
	glyphEnclosed = [26]int{
		1, 2, 0, 1, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 1, 1, 1, 1,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
)

const (
	glyphLineWeight     = 2
	glyphCurveWeight    = 3
	glyphEnclosedWeight = 5
)

func glyphGeometry() *Table {
	return generate(func(p int) int {
		i := p - 1
		return glyphLines[i]*glyphLineWeight +
			glyphCurves[i]*glyphCurveWeight +
			glyphEnclosed[i]*glyphEnclosedWeight
	})
}

// tables is indexed by Cipher. Aliased keys share one table.
var tables = [Count]*Table{
	EnglishGematria:        englishTable,
	SimpleGematria:         simpleTable,
	UnknownGematria:        unknownTable,
	PythagorasGematria:     pythagorasTable,
	JewishGematria:         jewishTable,
	PrimeGematria:          primeTable,
	ReverseSatanicGematria: reverseSatanicTable,
	ClockGematria:          clockTable,
	ReverseClockGematria:   reverseClockTable,
	System9Gematria:        system9Table,
	FrancisBaconGematria:   francisBaconTable,
	SeptenaryGematria:      septenaryTable,
	GlyphGeometryGematria:  glyphGeometryTable,
	EnglishOrdinal:         simpleTable,
	ReverseOrdinal:         reverseOrdinalTable,
	FullReduction:          reductionTable,
	ReverseReduction:       reverseReductionTable,
	Satanic:                satanicTable,
	Jewish:                 jewishTable,
	Chaldean:               chaldeanTable,
	Primes:                 primeTable,
	Trigonal:               trigonalTable,
	Squares:                squaresTable,
}

// Value returns the weight of the letter at pos (1..26) under c.
// Out-of-range positions and invalid ciphers weigh 0.
func (c Cipher) Value(pos int) int {
	if !c.Valid() || pos < 1 || pos > 26 {
		return 0
	}
	return tables[c][pos]
}

// GetCipherTable returns a copy of the position -> weight table for the
// named cipher. Unknown names yield an empty map.
func GetCipherTable(name string) map[int]int {
	c, ok := Parse(name)
	if !ok {
		return map[int]int{}
	}
	return tables[c].Map()
}
