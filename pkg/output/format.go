// Package output provides utilities for formatting and displaying viability,
// rental and optimizer results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/deal-viability/internal/config"
	"github.com/iwvelando/deal-viability/internal/rental"
	"github.com/iwvelando/deal-viability/internal/viability"
	"github.com/iwvelando/deal-viability/pkg/constants"
	"github.com/iwvelando/deal-viability/pkg/format"
	"github.com/iwvelando/deal-viability/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RentalReport pairs a rental case name with its computed metrics.
type RentalReport struct {
	Name    string
	Metrics rental.Metrics
}

// RentalView is the encodable form of a rental report. PaybackYears is nil
// when the property never pays itself back.
type RentalView struct {
	Name            string      `json:"name"`
	MonthlyCashFlow float64     `json:"monthlyCashFlow"`
	AnnualCashFlow  float64     `json:"annualCashFlow"`
	ROI             float64     `json:"roi"`
	CapRate         float64     `json:"capRate"`
	PaybackYears    *float64    `json:"paybackYears"`
	PaybackInfinite bool        `json:"paybackInfinite"`
	LeverageRatio   float64     `json:"leverageRatio"`
	Risk            rental.Risk `json:"risk"`
}

// NewRentalView maps rental metrics into their encodable form.
func NewRentalView(name string, m rental.Metrics) RentalView {
	view := RentalView{
		Name:            name,
		MonthlyCashFlow: m.MonthlyCashFlow,
		AnnualCashFlow:  m.AnnualCashFlow,
		ROI:             m.ROI,
		CapRate:         m.CapRate,
		LeverageRatio:   m.LeverageRatio,
		Risk:            m.Risk,
	}
	if math.IsInf(m.PaybackYears, 0) || math.IsNaN(m.PaybackYears) {
		view.PaybackInfinite = true
	} else {
		payback := m.PaybackYears
		view.PaybackYears = &payback
	}
	return view
}

// Report is everything produced by one run.
type Report struct {
	Deals         []viability.Result
	Rentals       []RentalReport
	Optimizations []optimization.Summary
}

// Document is the JSON output shape.
type Document struct {
	Deals         []viability.Result     `json:"deals"`
	Rentals       []RentalView           `json:"rentals,omitempty"`
	Optimizations []optimization.Summary `json:"optimizations,omitempty"`
}

// Write renders the report in the requested format.
func Write(w io.Writer, outputFormat string, report Report) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	case constants.OutputFormatPretty, "":
		PrettyFormat(w, report)
		return nil
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report Report) {
	p := message.NewPrinter(language.BrazilianPortuguese)
	blocks := 0
	separate := func() {
		if blocks > 0 {
			_, _ = fmt.Fprintf(w, "\n")
		}
		blocks++
	}

	for _, result := range report.Deals {
		separate()
		_, _ = fmt.Fprintf(w, "--- Resultado do negócio %s ---\n", result.Name)
		_, _ = fmt.Fprintf(w, "Forma de pagamento      | %s\n", result.PaymentType)
		_, _ = fmt.Fprintf(w, "Entrada                 | %s\n", format.Currency(result.DownPayment))
		_, _ = fmt.Fprintf(w, "Custos de aquisição     | %s\n", format.Currency(result.AcquisitionCosts))
		_, _ = fmt.Fprintf(w, "Investimento inicial    | %s\n", format.Currency(result.InitialInvestment))
		_, _ = fmt.Fprintf(w, "Custos operacionais     | %s\n", format.Currency(result.OperatingCosts))

		if f := result.Financing; f != nil {
			_, _ = p.Fprintf(w, "Financiamento           | %s, %d de %d meses pagos\n", f.System, f.MonthsPaidUntilSale, f.TermMonths)
			_, _ = fmt.Fprintf(w, "Juros pagos até a venda | %s\n", format.Currency(f.InterestPaidUntilSale))
			_, _ = fmt.Fprintf(w, "Saldo devedor na venda  | %s\n", format.Currency(f.RemainingBalanceAtSale))
		}
		if inst := result.Installment; inst != nil {
			_, _ = p.Fprintf(w, "Parcelamento            | %d de %d parcelas de %s\n", inst.MonthsPaidUntilSale, inst.Count, format.Currency(inst.MonthlyInstallment))
			_, _ = fmt.Fprintf(w, "Saldo devedor na venda  | %s\n", format.Currency(inst.RemainingBalanceAtSale))
		}

		_, _ = fmt.Fprintf(w, "Venda líquida           | %s\n", format.Currency(result.SaleNet))
		_, _ = fmt.Fprintf(w, "Desembolso total        | %s\n", format.Currency(result.TotalOutflow))
		_, _ = fmt.Fprintf(w, "Lucro                   | %s\n", format.Currency(result.Profit))
		_, _ = fmt.Fprintf(w, "Imposto de renda        | %s\n", format.Currency(result.IncomeTax))
		_, _ = fmt.Fprintf(w, "Lucro após impostos     | %s\n", format.Currency(result.ProfitAfterTax))
		_, _ = fmt.Fprintf(w, "ROI após impostos       | %s\n", format.Percent(result.ROIOnInitialInvestmentAfterTax))
		_, _ = fmt.Fprintf(w, "Status                  | %s\n", result.ViabilityStatus)
		_, _ = fmt.Fprintf(w, "Detalhe                 | %s\n", result.ViabilityDetail)
		if flags := riskFlags(result.Risk); flags != "" {
			_, _ = fmt.Fprintf(w, "Riscos                  | %s\n", flags)
		}
	}

	for _, r := range report.Rentals {
		separate()
		m := r.Metrics
		_, _ = fmt.Fprintf(w, "--- Resultado do aluguel %s ---\n", r.Name)
		_, _ = fmt.Fprintf(w, "Fluxo de caixa mensal   | %s\n", format.Currency(m.MonthlyCashFlow))
		_, _ = fmt.Fprintf(w, "Fluxo de caixa anual    | %s\n", format.Currency(m.AnnualCashFlow))
		_, _ = fmt.Fprintf(w, "ROI                     | %s\n", format.Percent(m.ROI))
		_, _ = fmt.Fprintf(w, "Cap rate                | %s\n", format.Percent(m.CapRate))
		if math.IsInf(m.PaybackYears, 0) {
			_, _ = fmt.Fprintf(w, "Payback                 | nunca\n")
		} else {
			_, _ = p.Fprintf(w, "Payback                 | %.1f anos\n", m.PaybackYears)
		}
		_, _ = fmt.Fprintf(w, "Alavancagem             | %s\n", format.Percent(m.LeverageRatio))
	}

	for _, o := range report.Optimizations {
		separate()
		_, _ = fmt.Fprintf(w, "--- Otimização %s: %s ---\n", o.TargetName, o.Field)
		_, _ = fmt.Fprintf(w, "Objetivo                | %s\n", goalLabel(o.Goal))
		_, _ = fmt.Fprintf(w, "Valor atual             | %s\n", o.OriginalDisplay)
		_, _ = fmt.Fprintf(w, "Valor limite            | %s\n", o.ValueDisplay)
		_, _ = fmt.Fprintf(w, "ROI no limite           | %s\n", format.Percent(o.ROIAtValue))
		_, _ = fmt.Fprintf(w, "Lucro no limite         | %s\n", format.Currency(o.ProfitAtValue))
		_, _ = p.Fprintf(w, "Iterações               | %d\n", o.Iterations)
		for _, note := range o.Notes {
			_, _ = fmt.Fprintf(w, "Observação              | %s\n", note)
		}
	}
}

func goalLabel(goal string) string {
	if goal == config.OptimizerGoalBreakEven {
		return "ponto de equilíbrio"
	}
	return "ROI esperado"
}

func riskFlags(risk viability.Risk) string {
	var flags []string
	if risk.NegativeProfit {
		flags = append(flags, "lucro negativo")
	}
	if risk.LowROI {
		flags = append(flags, "ROI baixo")
	}
	if risk.HighLeverage {
		flags = append(flags, "alta alavancagem")
	}
	return strings.Join(flags, ", ")
}

// CsvFormat outputs in comma-separated value format: one row per deal, then
// one row per rental case, then one row per optimizer directive. Each group
// has its own header. Amounts are rounded to cents.
func CsvFormat(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)

	if len(report.Deals) > 0 {
		header := []string{
			"name", "payment type", "initial investment", "operating costs", "total paid until sale",
			"sale net", "total outflow", "profit", "income tax", "profit after tax", "roi after tax",
			"status", "negative profit", "low roi", "high leverage",
		}
		if err := writer.Write(header); err != nil {
			return err
		}
		for _, r := range report.Deals {
			row := []string{
				r.Name,
				string(r.PaymentType),
				format.Cents(r.InitialInvestment).StringFixed(2),
				format.Cents(r.OperatingCosts).StringFixed(2),
				format.Cents(r.TotalPaidUntilSale).StringFixed(2),
				format.Cents(r.SaleNet).StringFixed(2),
				format.Cents(r.TotalOutflow).StringFixed(2),
				format.Cents(r.Profit).StringFixed(2),
				format.Cents(r.IncomeTax).StringFixed(2),
				format.Cents(r.ProfitAfterTax).StringFixed(2),
				strconv.FormatFloat(r.ROIOnInitialInvestmentAfterTax, 'f', 6, 64),
				string(r.ViabilityStatus),
				strconv.FormatBool(r.Risk.NegativeProfit),
				strconv.FormatBool(r.Risk.LowROI),
				strconv.FormatBool(r.Risk.HighLeverage),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	if len(report.Rentals) > 0 {
		header := []string{
			"rental", "monthly cash flow", "annual cash flow", "roi", "cap rate", "payback years",
			"leverage ratio", "negative cash flow", "low roi", "high leverage",
		}
		if err := writer.Write(header); err != nil {
			return err
		}
		for _, r := range report.Rentals {
			m := r.Metrics
			payback := "inf"
			if !math.IsInf(m.PaybackYears, 0) {
				payback = strconv.FormatFloat(m.PaybackYears, 'f', 2, 64)
			}
			row := []string{
				r.Name,
				format.Cents(m.MonthlyCashFlow).StringFixed(2),
				format.Cents(m.AnnualCashFlow).StringFixed(2),
				strconv.FormatFloat(m.ROI, 'f', 6, 64),
				strconv.FormatFloat(m.CapRate, 'f', 6, 64),
				payback,
				strconv.FormatFloat(m.LeverageRatio, 'f', 6, 64),
				strconv.FormatBool(m.Risk.NegativeCashFlow),
				strconv.FormatBool(m.Risk.LowROI),
				strconv.FormatBool(m.Risk.HighLeverage),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	if len(report.Optimizations) > 0 {
		header := []string{
			"optimization", "field", "goal", "original", "value", "roi at value", "profit at value",
			"iterations", "converged",
		}
		if err := writer.Write(header); err != nil {
			return err
		}
		for _, o := range report.Optimizations {
			row := []string{
				o.TargetName,
				o.Field,
				o.Goal,
				strconv.FormatFloat(o.Original, 'f', -1, 64),
				strconv.FormatFloat(o.Value, 'f', -1, 64),
				strconv.FormatFloat(o.ROIAtValue, 'f', 6, 64),
				format.Cents(o.ProfitAtValue).StringFixed(2),
				strconv.Itoa(o.Iterations),
				strconv.FormatBool(o.Converged),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// JSONFormat outputs an indented JSON document.
func JSONFormat(w io.Writer, report Report) error {
	doc := Document{Deals: report.Deals, Optimizations: report.Optimizations}
	if doc.Deals == nil {
		doc.Deals = []viability.Result{}
	}
	for _, r := range report.Rentals {
		doc.Rentals = append(doc.Rentals, NewRentalView(r.Name, r.Metrics))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
