package mwb

import (
	"fmt"
	"strings"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// TierProfile shapes the acceptance curve and volume discount for a tier.
type TierProfile struct {
	PivotShift         float64 `json:"pivot_shift"`
	ScaleFactor        float64 `json:"scale_factor"`
	VolumeDiscountBeta float64 `json:"volume_discount_beta"`
}

var tierProfiles = map[domain.Tier]TierProfile{
	domain.TierStandard: {PivotShift: 0.00, ScaleFactor: 1.00, VolumeDiscountBeta: 0.05},
	domain.TierBronze:   {PivotShift: 0.01, ScaleFactor: 1.05, VolumeDiscountBeta: 0.06},
	domain.TierSilver:   {PivotShift: 0.02, ScaleFactor: 1.10, VolumeDiscountBeta: 0.07},
	domain.TierGold:     {PivotShift: 0.03, ScaleFactor: 1.15, VolumeDiscountBeta: 0.08},
	domain.TierPlatinum: {PivotShift: 0.05, ScaleFactor: 1.20, VolumeDiscountBeta: 0.10},
}

// TierProfileFor returns the profile of a known tier, or STANDARD's.
func TierProfileFor(t domain.Tier) TierProfile {
	if p, ok := tierProfiles[t]; ok {
		return p
	}
	return tierProfiles[domain.TierStandard]
}

// LookupTier resolves a raw tier string. Unrecognized values resolve to
// STANDARD and produce a non-empty note; an empty value does not.
func LookupTier(raw string) (domain.Tier, TierProfile, string) {
	t, known := domain.ParseTier(raw)
	var note string
	if !known && strings.TrimSpace(raw) != "" {
		note = fmt.Sprintf("unknown customer tier %q, treated as %s", raw, domain.TierStandard)
	}
	return t, TierProfileFor(t), note
}

// ApplyTier shifts the acceptance pivot and scales its spread.
func ApplyTier(pivot, spread float64, p TierProfile) (float64, float64) {
	return pivot * (1 + p.PivotShift), spread * p.ScaleFactor
}
