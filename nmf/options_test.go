// SPDX-License-Identifier: MIT
package nmf_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/lvnmf/matrix"
	"github.com/katalvlaran/lvnmf/nmf"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	e, err := nmf.New(3, 4, 2)
	require.NoError(t, err)

	cfg := e.Config()
	require.Equal(t, nmf.DefaultVEps, cfg.VEps)
	require.Equal(t, cfg.VEps, cfg.UEps)
	require.Equal(t, nmf.DefaultZero, cfg.Zero)
	require.Equal(t, 100, cfg.InnerLoopMax)
	require.Equal(t, 100, cfg.OuterLoopMax)
	require.Zero(t, cfg.StepCoefficient)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, int64(1), cfg.Seed)
	require.NotNil(t, cfg.Ctx)
	require.Nil(t, cfg.Persister)

	require.Equal(t, nmf.DefaultZero, e.U().Zero())
}

func TestConfig_UEpsResolution(t *testing.T) {
	cases := []struct {
		name string
		opts []nmf.Option
		want float64
	}{
		{"follows vEps", []nmf.Option{nmf.WithVEps(1e-3)}, 1e-3},
		{"scaled", []nmf.Option{nmf.WithScaledUEps()}, 1e-6 * math.Sqrt(3+4)},
		{"scaled custom vEps", []nmf.Option{nmf.WithVEps(1e-2), nmf.WithScaledUEps()}, 1e-2 * math.Sqrt(7)},
		{"explicit wins", []nmf.Option{nmf.WithScaledUEps(), nmf.WithUEps(5e-4)}, 5e-4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := nmf.New(3, 4, 2, tc.opts...)
			require.NoError(t, err)
			require.InDelta(t, tc.want, e.Config().UEps, 1e-18)
		})
	}
}

func TestConfig_Violations(t *testing.T) {
	bad := map[string]nmf.Option{
		"vEps negative":  nmf.WithVEps(-1),
		"uEps NaN":       nmf.WithUEps(math.NaN()),
		"zero Inf":       nmf.WithZero(math.Inf(1)),
		"inner zero":     nmf.WithInnerLoopMax(0),
		"outer negative": nmf.WithOuterLoopMax(-1),
		"step negative":  nmf.WithStepCoefficient(-0.1),
		"workers zero":   nmf.WithWorkers(0),
	}
	for name, opt := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := nmf.New(2, 2, 1, opt)
			require.ErrorIs(t, err, nmf.ErrOptionViolation)
		})
	}
}

func TestConfig_NilArgumentsIgnored(t *testing.T) {
	//nolint:staticcheck // nil context must be ignored
	e, err := nmf.New(2, 2, 1, nil, nmf.WithContext(nil), nmf.WithOnOuterIteration(nil), nmf.WithPersister(nil))
	require.NoError(t, err)
	require.Equal(t, context.Background(), e.Config().Ctx)
}

func TestConfig_ZeroPropagates(t *testing.T) {
	e, err := nmf.New(2, 3, 2, nmf.WithZero(1e-4))
	require.NoError(t, err)
	for _, m := range []*matrix.Dense{e.D(), e.U(), e.V()} {
		require.Equal(t, 1e-4, m.Zero())
	}
}
