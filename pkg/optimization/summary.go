// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single optimization directive.
type Summary struct {
	TargetName      string   `json:"targetName"`
	Field           string   `json:"field"`
	Goal            string   `json:"goal"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	TargetROI       float64  `json:"targetRoi"`
	ROIAtValue      float64  `json:"roiAtValue"`
	ProfitAtValue   float64  `json:"profitAtValue"`
	Headroom        float64  `json:"headroom"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}
