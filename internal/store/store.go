// Package store persists evaluated deals as flat snapshots so they can be
// listed and retrieved later.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/deal-viability/internal/deal"
	"github.com/iwvelando/deal-viability/internal/viability"
	"github.com/iwvelando/deal-viability/pkg/format"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no snapshot exists for an ID.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is the persisted summary of one evaluation. Money is kept as
// decimals rounded to cents.
type Snapshot struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	PaymentType    deal.PaymentType `json:"paymentType"`
	ROI            float64          `json:"roi"`
	Profit         decimal.Decimal  `json:"profit"`
	ProfitAfterTax decimal.Decimal  `json:"profitAfterTax"`
	Status         viability.Status `json:"status"`
	Detail         string           `json:"detail"`
	Risk           viability.Risk   `json:"risk"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// NewSnapshot flattens a result into a snapshot with a fresh ID.
func NewSnapshot(result viability.Result, createdAt time.Time) Snapshot {
	return Snapshot{
		ID:             uuid.NewString(),
		Name:           result.Name,
		PaymentType:    result.PaymentType,
		ROI:            result.ROIOnInitialInvestmentAfterTax,
		Profit:         format.Cents(result.Profit),
		ProfitAfterTax: format.Cents(result.ProfitAfterTax),
		Status:         result.ViabilityStatus,
		Detail:         result.ViabilityDetail,
		Risk:           result.Risk,
		CreatedAt:      createdAt.UTC(),
	}
}

// Repository stores snapshots. List returns snapshots oldest first.
type Repository interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Get(ctx context.Context, id string) (Snapshot, error)
	List(ctx context.Context) ([]Snapshot, error)
}
