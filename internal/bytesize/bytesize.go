// Package bytesize formats and parses byte counts for human consumption.
package bytesize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ByteSize is a byte count with human-friendly parsing and formatting.
//
// Parsing accepts plain integers ("1048576"), decimal SI units ("100MB",
// "2G", multiples of 1000) and binary IEC units ("512Mi", "1GiB",
// multiples of 1024). Fractional values like "1.5Gi" are allowed.
// Formatting always uses binary units, so 1536 renders as "1.50KiB".
type ByteSize uint64

// Binary (IEC) multipliers.
const (
	B ByteSize = 1 << (10 * iota)
	KiB
	MiB
	GiB
	TiB
)

// Decimal (SI) multipliers.
const (
	KB ByteSize = 1000
	MB          = 1000 * KB
	GB          = 1000 * MB
	TB          = 1000 * GB
)

// unitFactor resolves a unit suffix, case-insensitively and with or
// without a trailing "B" ("Mi" and "MiB" are the same unit).
func unitFactor(unit string) (ByteSize, bool) {
	switch strings.ToLower(unit) {
	case "", "b":
		return B, true
	case "k", "kb":
		return KB, true
	case "m", "mb":
		return MB, true
	case "g", "gb":
		return GB, true
	case "t", "tb":
		return TB, true
	case "ki", "kib":
		return KiB, true
	case "mi", "mib":
		return MiB, true
	case "gi", "gib":
		return GiB, true
	case "ti", "tib":
		return TiB, true
	}
	return 0, false
}

// ParseByteSize parses strings like "1Gi", "500Mi", "100MB" or "1024".
func ParseByteSize(s string) (ByteSize, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, errors.New("empty byte size string")
	}

	// Split into the leading numeric run (digits plus at most one dot)
	// and the unit suffix.
	split := len(trimmed)
	sawDot := false
	for i, r := range trimmed {
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '.' && !sawDot {
			sawDot = true
			continue
		}
		split = i
		break
	}

	number := trimmed[:split]
	unit := strings.TrimSpace(trimmed[split:])
	if number == "" || number == "." {
		return 0, fmt.Errorf("invalid byte size format: %q", s)
	}

	factor, ok := unitFactor(unit)
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}

	if sawDot {
		v, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number in byte size: %q", number)
		}
		return ByteSize(v * float64(factor)), nil
	}

	v, err := strconv.ParseUint(number, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number in byte size: %q", number)
	}
	return ByteSize(v) * factor, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so ByteSize fields
// decode directly from config files and environment variables.
func (b *ByteSize) UnmarshalText(text []byte) error {
	parsed, err := ParseByteSize(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// String renders the size using the largest binary unit that fits,
// with two decimal places. Values under 1KiB render as plain bytes.
func (b ByteSize) String() string {
	scales := []struct {
		factor ByteSize
		suffix string
	}{
		{TiB, "TiB"},
		{GiB, "GiB"},
		{MiB, "MiB"},
		{KiB, "KiB"},
	}
	for _, s := range scales {
		if b >= s.factor {
			return fmt.Sprintf("%.2f%s", float64(b)/float64(s.factor), s.suffix)
		}
	}
	return strconv.FormatUint(uint64(b), 10) + "B"
}

// Uint64 returns the size as a raw byte count.
func (b ByteSize) Uint64() uint64 {
	return uint64(b)
}

// Int64 returns the size as an int64. Sizes above 2^63-1 overflow.
func (b ByteSize) Int64() int64 {
	return int64(b)
}
