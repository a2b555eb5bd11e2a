package plantuml

// DefaultAlphabetChars is the symbol table the PlantUML server decodes with.
const DefaultAlphabetChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

// alphabetSize is the number of symbols, one per 6-bit value.
const alphabetSize = 64

// Alphabet maps 6-bit values to output characters. It is a value type, so
// copies handed to encoders cannot be mutated behind their back.
type Alphabet [alphabetSize]byte

//nolint:gochecknoglobals // Immutable symbol table
var DefaultAlphabet = mustAlphabet(DefaultAlphabetChars)

// NewAlphabet builds an Alphabet from exactly 64 distinct single-byte characters.
func NewAlphabet(chars string) (alphabet Alphabet, err error) {
	if len(chars) != alphabetSize {
		err = &EncodingError{Reason: "alphabet must contain exactly 64 characters"}
		return alphabet, err
	}

	var seen [256]bool
	for i := 0; i < alphabetSize; i++ {
		c := chars[i]
		if c >= 0x80 {
			err = &EncodingError{Reason: "alphabet must be ASCII"}
			return alphabet, err
		}
		if seen[c] {
			err = &EncodingError{Reason: "alphabet contains duplicate character " + string(c)}
			return alphabet, err
		}
		seen[c] = true
		alphabet[i] = c
	}

	return alphabet, err
}

// String returns the alphabet as a 64-character string.
func (a Alphabet) String() (chars string) {
	chars = string(a[:])
	return chars
}

// Contains reports whether c is one of the alphabet's symbols.
func (a Alphabet) Contains(c byte) (ok bool) {
	for _, s := range a {
		if s == c {
			ok = true
			return ok
		}
	}
	return ok
}

// reverse builds the character to value lookup used by Decode. Entries for
// characters outside the alphabet are -1.
func (a Alphabet) reverse() (table [256]int16) {
	for i := range table {
		table[i] = -1
	}
	for i, c := range a {
		table[c] = int16(i)
	}
	return table
}

func mustAlphabet(chars string) (alphabet Alphabet) {
	var err error
	alphabet, err = NewAlphabet(chars)
	if err != nil {
		panic(err)
	}
	return alphabet
}
