package viability

import "github.com/iwvelando/deal-viability/internal/deal"

// Status is the three-way viability classification.
type Status string

const (
	StatusViable   Status = "Viável"
	StatusTight    Status = "Margem apertada"
	StatusUnviable Status = "Inviável"
)

// Risk holds the independent risk flags of a deal.
type Risk struct {
	NegativeProfit bool `json:"negativeProfit"`
	LowROI         bool `json:"lowROI"`
	HighLeverage   bool `json:"highLeverage"`
}

// FinancingDetail carries the amortization state of a bank loan at the sale month.
type FinancingDetail struct {
	System                 deal.AmortizationSystem `json:"system"`
	AnnualRatePercent      float64                 `json:"annualRatePercent"`
	MonthlyRate            float64                 `json:"monthlyRate"`
	TermMonths             int                     `json:"termMonths"`
	MonthsPaidUntilSale    int                     `json:"monthsPaidUntilSale"`
	FinancedAmount         float64                 `json:"financedAmount"`
	MonthlyPayment         float64                 `json:"monthlyPayment,omitempty"`
	MonthlyAmortization    float64                 `json:"monthlyAmortization,omitempty"`
	FirstInstallment       float64                 `json:"firstInstallment,omitempty"`
	PrincipalPaidUntilSale float64                 `json:"principalPaidUntilSale"`
	InterestPaidUntilSale  float64                 `json:"interestPaidUntilSale"`
	TotalPaidUntilSale     float64                 `json:"totalPaidUntilSale"`
	RemainingBalanceAtSale float64                 `json:"remainingBalanceAtSale"`
}

// InstallmentDetail carries the state of an interest-free installment plan at the sale month.
type InstallmentDetail struct {
	Count                  int     `json:"count"`
	MonthsPaidUntilSale    int     `json:"monthsPaidUntilSale"`
	InstallmentAmount      float64 `json:"installmentAmount"`
	MonthlyInstallment     float64 `json:"monthlyInstallment"`
	PrincipalPaidUntilSale float64 `json:"principalPaidUntilSale"`
	InterestPaidUntilSale  float64 `json:"interestPaidUntilSale"`
	TotalPaidUntilSale     float64 `json:"totalPaidUntilSale"`
	RemainingBalanceAtSale float64 `json:"remainingBalanceAtSale"`
}

// Result is the outcome of a viability evaluation. It is built in one pass
// and never mutated afterwards. Financing and Installment are mutually
// exclusive and both nil for cash deals.
type Result struct {
	Name                           string             `json:"name,omitempty"`
	PaymentType                    deal.PaymentType   `json:"paymentType"`
	DownPayment                    float64            `json:"downPayment"`
	InitialInvestment              float64            `json:"initialInvestment"`
	AcquisitionCosts               float64            `json:"acquisitionCosts"`
	RenovationCosts                float64            `json:"renovationCosts"`
	EvacuationCosts                float64            `json:"evacuationCosts"`
	OperatingCosts                 float64            `json:"operatingCosts"`
	RemainingAmount                float64            `json:"remainingAmount"`
	SaleNet                        float64            `json:"saleNet"`
	SaleNetAfterLoan               float64            `json:"saleNetAfterLoan"`
	TotalPaidUntilSale             float64            `json:"totalPaidUntilSale"`
	TotalOutflow                   float64            `json:"totalOutflow"`
	Profit                         float64            `json:"profit"`
	IncomeTax                      float64            `json:"incomeTax"`
	IncomeTaxRate                  float64            `json:"incomeTaxRate"`
	ProfitAfterTax                 float64            `json:"profitAfterTax"`
	ROIOnInitialInvestmentAfterTax float64            `json:"roiOnInitialInvestmentAfterTax"`
	ExpectedROIPercent             float64            `json:"expectedRoiPercent"`
	Financing                      *FinancingDetail   `json:"financing"`
	Installment                    *InstallmentDetail `json:"installment"`
	Risk                           Risk               `json:"risk"`
	ViabilityStatus                Status             `json:"viabilityStatus"`
	ViabilityDetail                string             `json:"viabilityDetail"`
}
