package viability

import (
	"fmt"

	"github.com/iwvelando/deal-viability/pkg/constants"
	"github.com/iwvelando/deal-viability/pkg/format"
	"github.com/iwvelando/deal-viability/pkg/mathutil"
)

// Classify maps profit and after-tax ROI to a viability status using the
// expected ROI (0-100 scale) and a fixed tolerance band below it.
func Classify(profit, roi, expectedROIPercent float64) (Status, string) {
	target := mathutil.Fraction(expectedROIPercent)
	floor := mathutil.NonNegative(mathutil.Fraction(expectedROIPercent - constants.ClassificationToleranceBand))

	switch {
	case profit < 0:
		return StatusUnviable, fmt.Sprintf("Prejuízo estimado de %s antes do imposto de renda.",
			format.Currency(profit))
	case roi >= target:
		return StatusViable, fmt.Sprintf("ROI após IR de %s atinge a meta de %s.",
			format.Percent(roi), format.Percent(target))
	case roi >= floor:
		return StatusTight, fmt.Sprintf("ROI após IR de %s abaixo da meta de %s, dentro da tolerância de %.0f p.p.",
			format.Percent(roi), format.Percent(target), constants.ClassificationToleranceBand)
	default:
		return StatusUnviable, fmt.Sprintf("ROI após IR de %s abaixo do mínimo aceitável de %s.",
			format.Percent(roi), format.Percent(floor))
	}
}
