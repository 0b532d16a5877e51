package setuputils

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// subgroupBatchThreshold is the batch size above which a random linear
// combination beats per-point subgroup checks.
const subgroupBatchThreshold = 1 << 12

// CheckSubgroupG1 verifies that every point lies in the prime-order subgroup.
func CheckSubgroupG1(points []bn254.G1Affine, mode SubgroupCheckMode) error {
	if len(points) == 0 {
		return nil
	}
	if mode == SubgroupCheckAuto {
		if len(points) >= subgroupBatchThreshold {
			mode = SubgroupCheckBatched
		} else {
			mode = SubgroupCheckDirect
		}
	}

	if mode == SubgroupCheckBatched {
		scalars := make([]fr.Element, len(points))
		for i := range scalars {
			if _, err := scalars[i].SetRandom(); err != nil {
				return err
			}
		}
		var combined bn254.G1Affine
		if _, err := combined.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
			return err
		}
		if !combined.IsInSubGroup() {
			return ErrIncorrectSubgroup
		}
		return nil
	}

	var (
		mu   sync.Mutex
		gErr error
	)
	Execute(len(points), func(start, end int) {
		for i := start; i < end; i++ {
			if !points[i].IsInSubGroup() {
				mu.Lock()
				if gErr == nil {
					gErr = fmt.Errorf("element %d: %w", i, ErrIncorrectSubgroup)
				}
				mu.Unlock()
				return
			}
		}
	})
	return gErr
}

// CheckSubgroupG2 verifies that every point lies in the prime-order subgroup.
func CheckSubgroupG2(points []bn254.G2Affine, mode SubgroupCheckMode) error {
	if len(points) == 0 {
		return nil
	}
	if mode == SubgroupCheckAuto {
		if len(points) >= subgroupBatchThreshold {
			mode = SubgroupCheckBatched
		} else {
			mode = SubgroupCheckDirect
		}
	}

	if mode == SubgroupCheckBatched {
		scalars := make([]fr.Element, len(points))
		for i := range scalars {
			if _, err := scalars[i].SetRandom(); err != nil {
				return err
			}
		}
		var combined bn254.G2Affine
		if _, err := combined.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
			return err
		}
		if !combined.IsInSubGroup() {
			return ErrIncorrectSubgroup
		}
		return nil
	}

	var (
		mu   sync.Mutex
		gErr error
	)
	Execute(len(points), func(start, end int) {
		for i := start; i < end; i++ {
			if !points[i].IsInSubGroup() {
				mu.Lock()
				if gErr == nil {
					gErr = fmt.Errorf("element %d: %w", i, ErrIncorrectSubgroup)
				}
				mu.Unlock()
				return
			}
		}
	})
	return gErr
}
