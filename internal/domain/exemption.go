package domain

// ExemptionKind is a reason a guest does not pay the tourist tax.
type ExemptionKind string

const (
	ExemptionMinor             ExemptionKind = "minor"
	ExemptionDisabled          ExemptionKind = "disabled"
	ExemptionDisabledCompanion ExemptionKind = "disabled_companion"
	ExemptionDriver            ExemptionKind = "driver"
	ExemptionLawEnforcement    ExemptionKind = "law_enforcement"
	ExemptionHealthcare        ExemptionKind = "healthcare"
	ExemptionResident          ExemptionKind = "resident"
	ExemptionAIRE              ExemptionKind = "aire"
)

func (k ExemptionKind) Valid() bool {
	switch k {
	case ExemptionMinor, ExemptionDisabled, ExemptionDisabledCompanion, ExemptionDriver,
		ExemptionLawEnforcement, ExemptionHealthcare, ExemptionResident, ExemptionAIRE:
		return true
	}
	return false
}

// GuestExemption ties an exemption to the guest at GuestIndex (0-based, below
// the booking's total party size).
type GuestExemption struct {
	GuestIndex int32         `json:"guest_index"`
	Kind       ExemptionKind `json:"kind"`
}

// ExemptIndexes returns the set of exempt guest indexes.
func ExemptIndexes(exemptions []GuestExemption) map[int32]bool {
	out := make(map[int32]bool, len(exemptions))
	for _, e := range exemptions {
		out[e.GuestIndex] = true
	}
	return out
}
