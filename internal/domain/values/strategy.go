package values

import "fmt"

// Strategy is the compilation strategy chosen by pattern analysis.
type Strategy string

const (
	// StrategyAutomatic compiles every component with registered patterns.
	StrategyAutomatic Strategy = "automatic"
	// StrategyHybrid compiles known components with patterns and merges generative output for the rest.
	StrategyHybrid Strategy = "hybrid"
	// StrategyManualOnly replaces the output entirely with generative output.
	StrategyManualOnly Strategy = "manual_only"
)

// NeedsFallback reports whether the strategy requires a generative fallback call.
func (s Strategy) NeedsFallback() bool {
	return s == StrategyHybrid || s == StrategyManualOnly
}

// IsFullReplacement reports whether fallback output replaces rule-based markup instead of merging.
func (s Strategy) IsFullReplacement() bool {
	return s == StrategyManualOnly
}

// String returns the string representation
func (s Strategy) String() string {
	return string(s)
}

// Validate returns an error if the strategy value is invalid
func (s Strategy) Validate() error {
	switch s {
	case StrategyAutomatic, StrategyHybrid, StrategyManualOnly:
		return nil
	default:
		return fmt.Errorf("invalid strategy: %s", s)
	}
}

// DecideStrategy applies the strategy decision table.
//
//	known == 0            -> manual_only
//	known > 0, !complex   -> automatic
//	known > 0, complex    -> hybrid
func DecideStrategy(knownCount int, complex bool) Strategy {
	switch {
	case knownCount == 0:
		return StrategyManualOnly
	case complex:
		return StrategyHybrid
	default:
		return StrategyAutomatic
	}
}
