package idgen

import "strings"

const (
	// Unbounded marks an id name without an absolute ceiling.
	Unbounded int64 = -1

	// DefaultDelta is the segment size used when nothing is configured.
	DefaultDelta int64 = 500
)

// RangeConfig holds the per-name id ranges as loaded from configuration.
type RangeConfig struct {
	PermitUnlimited bool             `json:"permit_unlimited" yaml:"permit_unlimited"`
	DefaultDelta    int64            `json:"default_delta" yaml:"default_delta"`
	MinValues       map[string]int64 `json:"min_values" yaml:"min_values"`
	MaxValues       map[string]int64 `json:"max_values" yaml:"max_values"`
	Deltas          map[string]int64 `json:"deltas" yaml:"deltas"`
}

// RangePolicy resolves min, max and delta for a logical id name.
type RangePolicy struct {
	cfg RangeConfig
}

// NewRangePolicy copies cfg so later changes to the caller's maps are not observed.
func NewRangePolicy(cfg RangeConfig) *RangePolicy {
	p := &RangePolicy{cfg: RangeConfig{
		PermitUnlimited: cfg.PermitUnlimited,
		DefaultDelta:    cfg.DefaultDelta,
		MinValues:       copyValues(cfg.MinValues),
		MaxValues:       copyValues(cfg.MaxValues),
		Deltas:          copyValues(cfg.Deltas),
	}}
	if p.cfg.DefaultDelta <= 0 {
		p.cfg.DefaultDelta = DefaultDelta
	}
	return p
}

// MaxValue returns the configured ceiling for name, or Unbounded when
// unlimited ids are permitted and none is set.
func (p *RangePolicy) MaxValue(name string) (int64, error) {
	if v, ok := p.cfg.MaxValues[name]; ok && v != Unbounded {
		if v < 1 {
			return 0, configErr(name, "max value %d must be positive", v)
		}
		return v, nil
	}
	if p.cfg.PermitUnlimited {
		return Unbounded, nil
	}
	return 0, configErr(name, "no max value configured, set ids.max_values.%s or enable ids.permit_unlimited", name)
}

// MinValue returns the configured minimum shifted down by one, so a
// counter seeded with it dispenses exactly the configured minimum first.
// An unset minimum yields 0.
func (p *RangePolicy) MinValue(name string) (int64, error) {
	v, ok := p.cfg.MinValues[name]
	if !ok {
		return 0, nil
	}
	if v < 1 {
		return 0, configErr(name, "min value %d must be at least 1", v)
	}
	return v - 1, nil
}

// Delta returns the segment size for name.
func (p *RangePolicy) Delta(name string) (int64, error) {
	v, ok := p.cfg.Deltas[name]
	if !ok {
		return p.cfg.DefaultDelta, nil
	}
	if v < 1 {
		return 0, configErr(name, "delta %d must be at least 1", v)
	}
	return v, nil
}

// Bounds resolves and cross-checks min and max for name.
func (p *RangePolicy) Bounds(name string) (minValue, maxValue int64, err error) {
	if maxValue, err = p.MaxValue(name); err != nil {
		return 0, 0, err
	}
	if minValue, err = p.MinValue(name); err != nil {
		return 0, 0, err
	}
	if maxValue != Unbounded && minValue >= maxValue {
		return 0, 0, configErr(name, "min value %d must be below max value %d", minValue+1, maxValue)
	}
	return minValue, maxValue, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return configErr("", "id name must not be blank")
	}
	return nil
}

func copyValues(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
