// Package numerator provides the Kode ID contract and the allocation interfaces
// used to number inventory records. Implementations live in infrastructure layer.
package numerator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Prefix starts every identifier.
	Prefix = "INV"

	// Separator splits identifier segments.
	Separator = "-"

	// SequenceWidth is the zero-padded width of the sequence segment.
	SequenceWidth = 3

	// MaxSequence is the largest sequence that fits SequenceWidth.
	MaxSequence = 999
)

// ErrInvalidKodeID is returned by Parse for strings that do not follow INV-NN-SSS-YY.
var ErrInvalidKodeID = errors.New("invalid kode id")

// KodeID is a parsed identifier: INV-{ItemTypeCode}-{Sequence}-{YearSuffix}.
type KodeID struct {
	ItemTypeCode string
	Sequence     int
	YearSuffix   string
}

// String renders the identifier.
func (k KodeID) String() string {
	return Format(k.ItemTypeCode, k.Sequence, k.YearSuffix)
}

// Bucket returns the allocation bucket key of the identifier.
func (k KodeID) Bucket() string {
	return BucketKey(k.ItemTypeCode, k.YearSuffix)
}

// Format builds an identifier, e.g. Format("01", 4, "24") = "INV-01-004-24".
func Format(itemTypeCode string, sequence int, yearSuffix string) string {
	return fmt.Sprintf("%s-%s-%0*d-%s", Prefix, itemTypeCode, SequenceWidth, sequence, yearSuffix)
}

// BucketPrefix is the identifier prefix shared by every record of an item type.
func BucketPrefix(itemTypeCode string) string {
	return Prefix + Separator + itemTypeCode + Separator
}

// BucketKey identifies one (item type, year suffix) numbering bucket.
func BucketKey(itemTypeCode, yearSuffix string) string {
	return itemTypeCode + Separator + yearSuffix
}

// YearSuffix returns the last two digits of the calendar year of t.
func YearSuffix(t time.Time) string {
	return fmt.Sprintf("%02d", t.Year()%100)
}

// SequenceOf extracts the sequence segment (index 2) of an identifier.
// Leading decimal digits are read; a missing or non-numeric segment yields 0.
func SequenceOf(kodeID string) int {
	parts := strings.Split(kodeID, Separator)
	if len(parts) < 3 {
		return 0
	}
	return leadingInt(parts[2])
}

// sequenceCeiling is where leadingInt stops accumulating digits. Any value
// above MaxSequence already makes the next allocation SEQUENCE_EXHAUSTED, so
// clamping keeps that outcome and avoids int overflow on long digit runs.
const sequenceCeiling = MaxSequence + 1

func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t")
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n >= sequenceCeiling {
			return sequenceCeiling
		}
	}
	return n
}

// IsItemTypeCode reports whether s is exactly two ASCII digits.
func IsItemTypeCode(s string) bool {
	return len(s) == 2 && isDigits(s)
}

// Parse parses a well-formed identifier. Unlike SequenceOf it rejects malformed input.
func Parse(s string) (KodeID, error) {
	parts := strings.Split(s, Separator)
	if len(parts) != 4 || parts[0] != Prefix {
		return KodeID{}, fmt.Errorf("%w: %q", ErrInvalidKodeID, s)
	}
	if !IsItemTypeCode(parts[1]) {
		return KodeID{}, fmt.Errorf("%w: item type %q", ErrInvalidKodeID, parts[1])
	}
	if len(parts[2]) < SequenceWidth || !isDigits(parts[2]) {
		return KodeID{}, fmt.Errorf("%w: sequence %q", ErrInvalidKodeID, parts[2])
	}
	if len(parts[3]) != 2 || !isDigits(parts[3]) {
		return KodeID{}, fmt.Errorf("%w: year %q", ErrInvalidKodeID, parts[3])
	}

	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq <= 0 {
		return KodeID{}, fmt.Errorf("%w: sequence %q", ErrInvalidKodeID, parts[2])
	}

	return KodeID{
		ItemTypeCode: parts[1],
		Sequence:     seq,
		YearSuffix:   parts[3],
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
