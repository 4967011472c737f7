// Package optimizer searches for the threshold value of a deal field at which
// a goal is just met: the lowest resale price, the highest purchase price or
// the highest interest rate that still reaches the expected ROI or breaks
// even. ROI is monotonic in each of those fields, so a bisection converges.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/deal-viability/internal/config"
	"github.com/iwvelando/deal-viability/internal/deal"
	"github.com/iwvelando/deal-viability/internal/viability"
	"github.com/iwvelando/deal-viability/pkg/constants"
	"github.com/iwvelando/deal-viability/pkg/format"
	"github.com/iwvelando/deal-viability/pkg/optimization"
	"go.uber.org/zap"
)

const (
	defaultMaxIterations  = 100
	defaultMoneyTolerance = 0.01
	defaultRateTolerance  = 0.0001
	defaultRangeFactor    = 4.0
	maxAnnualRatePercent  = 100.0
)

// Runner evaluates optimizer directives against deals.
type Runner struct {
	logger *zap.Logger
	engine *viability.Engine
}

type target struct {
	input     deal.ProjectInput
	directive config.OptimizerConfig
	field     searchField
	minValue  float64
	maxValue  float64
	original  float64
}

type evaluation struct {
	value     float64
	roi       float64
	profit    float64
	targetROI float64
	goal      string
}

func (e evaluation) feasible() bool {
	if e.goal == config.OptimizerGoalBreakEven {
		return e.profit >= 0
	}
	return e.roi >= e.targetROI
}

func (e evaluation) headroom() float64 {
	if e.goal == config.OptimizerGoalBreakEven {
		return e.profit
	}
	return e.roi - e.targetROI
}

// searchField describes a searchable field. Increasing fields improve the deal
// as they grow; the others improve it as they shrink.
type searchField struct {
	name       string
	increasing bool
	money      bool
	get        func(deal.ProjectInput) float64
	set        func(*deal.ProjectInput, float64)
}

var fields = map[string]searchField{
	config.OptimizerFieldResalePrice: {
		name:       config.OptimizerFieldResalePrice,
		increasing: true,
		money:      true,
		get:        func(in deal.ProjectInput) float64 { return in.OperationAndExit.ResalePrice },
		set:        func(in *deal.ProjectInput, v float64) { in.OperationAndExit.ResalePrice = v },
	},
	config.OptimizerFieldPurchasePrice: {
		name:  config.OptimizerFieldPurchasePrice,
		money: true,
		get:   func(in deal.ProjectInput) float64 { return in.Acquisition.PurchasePrice },
		set:   func(in *deal.ProjectInput, v float64) { in.Acquisition.PurchasePrice = v },
	},
	config.OptimizerFieldAnnualRate: {
		name: config.OptimizerFieldAnnualRate,
		get: func(in deal.ProjectInput) float64 {
			f, _ := in.Financing()
			return f.AnnualRatePercent
		},
		set: func(in *deal.ProjectInput, v float64) {
			if f, ok := in.Financing(); ok {
				f.AnnualRatePercent = v
				in.Payment = f
			}
		},
	},
}

// NewRunner constructs a Runner.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, engine: viability.NewEngine(zap.NewNop())}
}

// Run executes every directive against the deal. The input is never mutated.
func (r *Runner) Run(input deal.ProjectInput, directives []config.OptimizerConfig) ([]optimization.Summary, error) {
	summaries := make([]optimization.Summary, 0, len(directives))
	for _, directive := range directives {
		t, err := newTarget(input, directive)
		if err != nil {
			return nil, err
		}
		summary := r.optimize(t)
		r.logger.Debug("optimizer directive complete",
			zap.String("op", "optimizer.Run"),
			zap.String("deal", input.Name),
			zap.String("field", summary.Field),
			zap.Float64("value", summary.Value),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// RunDeals runs the directives declared on each deal. inputs[i] must be the
// converted form of deals[i].
func (r *Runner) RunDeals(deals []config.DealConfig, inputs []deal.ProjectInput) ([]optimization.Summary, error) {
	if len(deals) != len(inputs) {
		return nil, fmt.Errorf("got %d deals but %d inputs", len(deals), len(inputs))
	}
	var summaries []optimization.Summary
	for i, d := range deals {
		if len(d.Optimize) == 0 {
			continue
		}
		s, err := r.Run(inputs[i], d.Optimize)
		if err != nil {
			return nil, fmt.Errorf("deal %s: %w", d.DisplayName(i), err)
		}
		summaries = append(summaries, s...)
	}
	return summaries, nil
}

func newTarget(input deal.ProjectInput, directive config.OptimizerConfig) (target, error) {
	sf, ok := fields[directive.Field]
	if !ok {
		return target{}, fmt.Errorf("unknown optimizer field %q", directive.Field)
	}
	if sf.name == config.OptimizerFieldAnnualRate {
		if _, ok := input.Financing(); !ok {
			return target{}, fmt.Errorf("optimizer field %s requires a financed deal", sf.name)
		}
	}

	original := sf.get(input)
	minValue, maxValue := defaultBounds(sf, original)
	if directive.Min != nil {
		minValue = *directive.Min
	}
	if directive.Max != nil {
		maxValue = *directive.Max
	}
	if minValue >= maxValue {
		return target{}, fmt.Errorf("optimizer bounds for %s are empty: %v to %v", sf.name, minValue, maxValue)
	}

	return target{
		input:     input,
		directive: directive,
		field:     sf,
		minValue:  minValue,
		maxValue:  maxValue,
		original:  original,
	}, nil
}

func defaultBounds(sf searchField, original float64) (float64, float64) {
	if !sf.money {
		return 0, maxAnnualRatePercent
	}
	upper := original * defaultRangeFactor
	if upper <= 0 {
		upper = 1
	}
	if sf.name == config.OptimizerFieldPurchasePrice {
		return constants.CurrencyTolerance, upper
	}
	return 0, upper
}

func (r *Runner) evaluateTarget(t target, value float64) evaluation {
	input := t.input
	t.field.set(&input, value)
	result := r.engine.Evaluate(input)
	return evaluation{
		value:     value,
		roi:       result.ROIOnInitialInvestmentAfterTax,
		profit:    result.Profit,
		targetROI: result.ExpectedROIPercent / constants.PercentageMultiplier,
		goal:      t.directive.CanonicalGoal(),
	}
}

func (r *Runner) optimize(t target) optimization.Summary {
	tolerance := t.directive.Tolerance
	if tolerance <= 0 {
		tolerance = defaultMoneyTolerance
		if !t.field.money {
			tolerance = defaultRateTolerance
		}
	}
	maxIterations := t.directive.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	lowerEval := r.evaluateTarget(t, t.minValue)
	upperEval := r.evaluateTarget(t, t.maxValue)

	// The end of the range where the deal is best.
	bestEnd, worstEnd := upperEval, lowerEval
	if !t.field.increasing {
		bestEnd, worstEnd = lowerEval, upperEval
	}

	if !bestEnd.feasible() {
		return r.summary(t, bestEnd, 0, false, fmt.Sprintf(
			"goal %s not reachable within bounds %s to %s",
			t.directive.CanonicalGoal(), r.display(t, t.minValue), r.display(t, t.maxValue)))
	}
	if worstEnd.feasible() {
		return r.summary(t, worstEnd, 0, true, "goal met across the whole range")
	}

	iterations := 0
	feasibleEval := bestEnd
	good, bad := bestEnd.value, worstEnd.value
	for iterations < maxIterations && math.Abs(good-bad) > tolerance {
		mid := bad + (good-bad)/2
		evalMid := r.evaluateTarget(t, mid)
		iterations++
		if evalMid.feasible() {
			feasibleEval = evalMid
			good = mid
		} else {
			bad = mid
		}
	}

	if t.field.money {
		snapped := snapTowards(feasibleEval.value, t.field.increasing)
		if evalSnapped := r.evaluateTarget(t, snapped); evalSnapped.feasible() {
			feasibleEval = evalSnapped
		}
	}

	return r.summary(t, feasibleEval, iterations, math.Abs(good-bad) <= tolerance, "")
}

// snapTowards rounds a money value to cents in the direction that keeps the
// goal met.
func snapTowards(value float64, increasing bool) float64 {
	cents := value * constants.DecimalPrecision
	if increasing {
		return math.Ceil(cents-1e-6) / constants.DecimalPrecision
	}
	return math.Floor(cents+1e-6) / constants.DecimalPrecision
}

func (r *Runner) summary(t target, eval evaluation, iterations int, converged bool, note string) optimization.Summary {
	summary := optimization.Summary{
		TargetName:      t.input.Name,
		Field:           t.field.name,
		Goal:            t.directive.CanonicalGoal(),
		Original:        t.original,
		OriginalDisplay: r.display(t, t.original),
		Value:           eval.value,
		ValueDisplay:    r.display(t, eval.value),
		TargetROI:       eval.targetROI,
		ROIAtValue:      eval.roi,
		ProfitAtValue:   eval.profit,
		Headroom:        eval.headroom(),
		Iterations:      iterations,
		Converged:       converged,
	}
	if note != "" {
		summary.Notes = []string{note}
	}
	return summary
}

func (r *Runner) display(t target, value float64) string {
	if t.field.money {
		return format.Currency(value)
	}
	return format.Percent(value/constants.PercentageMultiplier) + " a.a."
}
