package models

import "time"

// ProjectSnapshot is the read-only project/demand/contract assembly handed in
// by the UI forms. Scenario adjustment replay always starts from a fresh deep
// copy of this snapshot, so it must never be mutated in place.
type ProjectSnapshot struct {
	Name              string          `json:"name"`
	Demand            DemandProfile   `json:"demand"`
	Capacity          TierCapacity    `json:"capacity"`
	Coverage          CoveragePolicy  `json:"coverage"`
	Team              TeamComposition `json:"team"`
	Rates             PositionRates   `json:"rates"`
	Taxes             TaxConfig       `json:"taxes"`
	Margin            MarginPolicy    `json:"margin"`
	OtherCosts        []OtherCost     `json:"other_costs"`
	ContractMonths    int             `json:"contract_months"`
	StartDate         time.Time       `json:"start_date"`
	InitialInvestment float64         `json:"initial_investment"`
	PriceOverride     *float64        `json:"price_override,omitempty"`
}

// Clone returns a deep copy of the snapshot. Slices and maps are copied so
// adjustments applied to the clone never leak back into the original.
func (p ProjectSnapshot) Clone() ProjectSnapshot {
	out := p

	out.Team.Positions = make([]TeamPosition, len(p.Team.Positions))
	copy(out.Team.Positions, p.Team.Positions)

	out.Rates = make(PositionRates, len(p.Rates))
	for k, v := range p.Rates {
		out.Rates[k] = v
	}

	out.Taxes.Components = make([]TaxComponent, len(p.Taxes.Components))
	copy(out.Taxes.Components, p.Taxes.Components)
	for i, c := range p.Taxes.Components {
		if c.AlternateBase != nil {
			base := *c.AlternateBase
			out.Taxes.Components[i].AlternateBase = &base
		}
	}

	out.OtherCosts = make([]OtherCost, len(p.OtherCosts))
	copy(out.OtherCosts, p.OtherCosts)

	if p.PriceOverride != nil {
		override := *p.PriceOverride
		out.PriceOverride = &override
	}

	return out
}
