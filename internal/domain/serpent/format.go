package serpent

import (
	"fmt"
	"strconv"
)

// FormatNumber renders a value with K/M/B/... suffixes for display.
func (e Engine) FormatNumber(n float64) string {
	if n < 0 {
		return "-" + e.FormatNumber(-n)
	}
	for i := len(e.T.Suffixes) - 1; i >= 0; i-- {
		sfx := e.T.Suffixes[i]
		if n >= sfx.Threshold {
			value := n / sfx.Threshold
			switch {
			case value >= 100:
				return fmt.Sprintf("%.0f%s", value, sfx.Label)
			case value >= 10:
				return fmt.Sprintf("%.1f%s", value, sfx.Label)
			default:
				return fmt.Sprintf("%.2f%s", value, sfx.Label)
			}
		}
	}
	switch {
	case n >= 100:
		return fmt.Sprintf("%.0f", n)
	case n >= 10:
		return fmt.Sprintf("%.1f", n)
	case n == float64(int64(n)):
		return strconv.FormatInt(int64(n), 10)
	default:
		return fmt.Sprintf("%.1f", n)
	}
}

// StageName is the display name for a stage index.
func (e Engine) StageName(index int) string {
	if index < 0 {
		index = 0
	}
	if index >= len(e.T.GrowthStages) {
		index = len(e.T.GrowthStages) - 1
	}
	return e.T.GrowthStages[index].Name
}
