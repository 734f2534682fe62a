package format

import (
	"fmt"
	"strings"
)

type (
	Axis            uint8
	Orientation     uint8
	StopReason      uint8
	CompressionType uint8
)

const (
	AxisX Axis = 0x1 // AxisX is the first measurement column.
	AxisY Axis = 0x2 // AxisY is the second measurement column.

	OrientationNormal  Orientation = 0x1 // OrientationNormal regresses Y on X.
	OrientationSwapped Orientation = 0x2 // OrientationSwapped regresses X on Y.

	StopConverged   StopReason = 0x1 // StopConverged means the last round found no outliers.
	StopSingleRound StopReason = 0x2 // StopSingleRound means iteration was disabled.
	StopExhausted   StopReason = 0x3 // StopExhausted means removal left fewer than two points.
	StopFailed      StopReason = 0x4 // StopFailed means a fit or classification failed.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents gzip compression (streams only).
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "unknown"
	}
}

// Other returns the opposite axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}

	return AxisX
}

func (o Orientation) String() string {
	switch o {
	case OrientationNormal:
		return "normal"
	case OrientationSwapped:
		return "swapped"
	default:
		return "unknown"
	}
}

// Independent returns the axis used as the regressor for the orientation.
func (o Orientation) Independent() Axis {
	if o == OrientationSwapped {
		return AxisY
	}

	return AxisX
}

func (s StopReason) String() string {
	switch s {
	case StopConverged:
		return "converged"
	case StopSingleRound:
		return "single-round"
	case StopExhausted:
		return "exhausted"
	case StopFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// Extension returns the conventional file extension for the compression type,
// including the leading dot. CompressionNone has no extension.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	case CompressionGzip:
		return ".gz"
	default:
		return ""
	}
}

// ParseCompression parses a case-insensitive compression name such as "zstd" or "none".
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, true
	case "zstd", "zst":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	case "gzip", "gz":
		return CompressionGzip, true
	default:
		return 0, false
	}
}

func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Orientation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "normal":
		*o = OrientationNormal
	case "swapped":
		*o = OrientationSwapped
	default:
		return fmt.Errorf("unknown orientation %q", b)
	}

	return nil
}

func (s StopReason) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *StopReason) UnmarshalText(b []byte) error {
	for _, r := range []StopReason{StopConverged, StopSingleRound, StopExhausted, StopFailed} {
		if r.String() == string(b) {
			*s = r
			return nil
		}
	}

	return fmt.Errorf("unknown stop reason %q", b)
}

func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Axis) UnmarshalText(b []byte) error {
	switch string(b) {
	case "x":
		*a = AxisX
	case "y":
		*a = AxisY
	default:
		return fmt.Errorf("unknown axis %q", b)
	}

	return nil
}
