package idgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangePolicy_MaxValue(t *testing.T) {
	cases := []struct {
		name      string
		cfg       RangeConfig
		idName    string
		want      int64
		wantError bool
	}{
		{name: "configured", cfg: RangeConfig{MaxValues: map[string]int64{"order": 99}}, idName: "order", want: 99},
		{name: "unset with unlimited", cfg: RangeConfig{PermitUnlimited: true}, idName: "order", want: Unbounded},
		{name: "minus one with unlimited", cfg: RangeConfig{PermitUnlimited: true, MaxValues: map[string]int64{"order": -1}}, idName: "order", want: Unbounded},
		{name: "unset without unlimited", cfg: RangeConfig{}, idName: "order", wantError: true},
		{name: "zero", cfg: RangeConfig{PermitUnlimited: true, MaxValues: map[string]int64{"order": 0}}, idName: "order", wantError: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewRangePolicy(tc.cfg).MaxValue(tc.idName)
			if tc.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				assert.Contains(t, err.Error(), tc.idName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRangePolicy_MinValueShiftsDownByOne(t *testing.T) {
	p := NewRangePolicy(RangeConfig{MinValues: map[string]int64{"order": 1000, "bad": 0}})

	got, err := p.MinValue("order")
	require.NoError(t, err)
	assert.Equal(t, int64(999), got)

	got, err = p.MinValue("unset")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	_, err = p.MinValue("bad")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRangePolicy_Delta(t *testing.T) {
	p := NewRangePolicy(RangeConfig{Deltas: map[string]int64{"order": 50, "bad": -3}})

	d, err := p.Delta("order")
	require.NoError(t, err)
	assert.Equal(t, int64(50), d)

	d, err = p.Delta("invoice")
	require.NoError(t, err)
	assert.Equal(t, DefaultDelta, d)

	_, err = p.Delta("bad")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	custom := NewRangePolicy(RangeConfig{DefaultDelta: 20})
	d, err = custom.Delta("invoice")
	require.NoError(t, err)
	assert.Equal(t, int64(20), d)
}

func TestRangePolicy_BoundsRejectsMinAboveMax(t *testing.T) {
	p := NewRangePolicy(RangeConfig{
		MinValues: map[string]int64{"order": 100},
		MaxValues: map[string]int64{"order": 50},
	})

	_, _, err := p.Bounds("order")
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "order", cfgErr.Name)
}

func TestRangePolicy_CopiesConfig(t *testing.T) {
	maxValues := map[string]int64{"order": 10}
	p := NewRangePolicy(RangeConfig{MaxValues: maxValues})
	maxValues["order"] = 20

	got, err := p.MaxValue("order")
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)
}
