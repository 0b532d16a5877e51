// Package setuputils gathers the curve-level helpers shared by the ceremony
// phases: point codecs, batched exponentiation, subgroup checks, ratio proofs,
// transcript hashing and deterministic randomness.
package setuputils

import "fmt"

// UseCompression selects the point encoding of a buffer.
type UseCompression uint8

const (
	// Uncompressed stores both coordinates of each point.
	Uncompressed UseCompression = iota
	// Compressed stores the x coordinate and a sign mask.
	Compressed
)

func (c UseCompression) String() string {
	if c == Compressed {
		return "compressed"
	}
	return "uncompressed"
}

// CheckForCorrectness selects the validation applied to deserialized points.
type CheckForCorrectness uint8

const (
	// CheckFull rejects points at infinity and points outside the prime-order subgroup.
	CheckFull CheckForCorrectness = iota
	// CheckOnlyNonZero rejects points at infinity only.
	CheckOnlyNonZero
	// CheckOnlyInGroup rejects points outside the prime-order subgroup only.
	CheckOnlyInGroup
	// CheckNo performs no validation.
	CheckNo
)

func (c CheckForCorrectness) String() string {
	switch c {
	case CheckFull:
		return "full"
	case CheckOnlyNonZero:
		return "only-non-zero"
	case CheckOnlyInGroup:
		return "only-in-group"
	default:
		return "no"
	}
}

// SubgroupCheckMode selects how batch subgroup membership is established.
type SubgroupCheckMode uint8

const (
	// SubgroupCheckAuto picks direct or batched from the batch size.
	SubgroupCheckAuto SubgroupCheckMode = iota
	// SubgroupCheckDirect checks each point individually.
	SubgroupCheckDirect
	// SubgroupCheckBatched checks a random linear combination of the batch.
	SubgroupCheckBatched
)

func (m SubgroupCheckMode) String() string {
	switch m {
	case SubgroupCheckDirect:
		return "direct"
	case SubgroupCheckBatched:
		return "batched"
	default:
		return "auto"
	}
}

// SubgroupCheckModeFromString parses a mode name as found in CLI flags.
func SubgroupCheckModeFromString(s string) (SubgroupCheckMode, error) {
	switch s {
	case "auto":
		return SubgroupCheckAuto, nil
	case "direct":
		return SubgroupCheckDirect, nil
	case "batched":
		return SubgroupCheckBatched, nil
	default:
		return SubgroupCheckAuto, fmt.Errorf("unknown subgroup check mode %q", s)
	}
}

// BatchExpMode selects the fixed-scalar batch exponentiation strategy.
type BatchExpMode uint8

const (
	// BatchExpAuto picks direct or batch-inversion from the batch size.
	BatchExpAuto BatchExpMode = iota
	// BatchExpDirect multiplies each point individually.
	BatchExpDirect
	// BatchExpBatchInversion shares the Jacobian-to-affine conversions across the batch.
	BatchExpBatchInversion
)

func (m BatchExpMode) String() string {
	switch m {
	case BatchExpDirect:
		return "direct"
	case BatchExpBatchInversion:
		return "batch-inversion"
	default:
		return "auto"
	}
}

// BatchExpModeFromString parses a mode name as found in CLI flags.
func BatchExpModeFromString(s string) (BatchExpMode, error) {
	switch s {
	case "auto":
		return BatchExpAuto, nil
	case "direct":
		return BatchExpDirect, nil
	case "batch-inversion":
		return BatchExpBatchInversion, nil
	default:
		return BatchExpAuto, fmt.Errorf("unknown batch exponentiation mode %q", s)
	}
}

// ElementType identifies one of the accumulator segments.
type ElementType uint8

const (
	TauG1 ElementType = iota
	TauG2
	AlphaG1
	BetaG1
	BetaG2
)

func (e ElementType) String() string {
	switch e {
	case TauG1:
		return "TauG1"
	case TauG2:
		return "TauG2"
	case AlphaG1:
		return "AlphaG1"
	case BetaG1:
		return "BetaG1"
	case BetaG2:
		return "BetaG2"
	default:
		return "unknown"
	}
}
