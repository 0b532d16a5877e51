package setuputils

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/require"
)

func TestCheckSubgroup(t *testing.T) {
	const n = 20
	g1s := make([]bn254.G1Affine, n)
	g2s := make([]bn254.G2Affine, n)
	for i := range g1s {
		g1s[i] = randomG1(t)
		g2s[i] = randomG2(t)
	}

	for _, mode := range []SubgroupCheckMode{SubgroupCheckAuto, SubgroupCheckDirect, SubgroupCheckBatched} {
		require.NoError(t, CheckSubgroupG1(g1s, mode), mode)
		require.NoError(t, CheckSubgroupG2(g2s, mode), mode)
	}

	require.NoError(t, CheckSubgroupG1(nil, SubgroupCheckAuto))
}
