package obstetric

import (
	"fmt"
	"math"
)

// EFW formulas
const (
	FormulaHadlockBPDHCACFL = "hadlock-bpd-hc-ac-fl"
	FormulaHadlockHCACFL    = "hadlock-hc-ac-fl"
)

// Biometry holds the fetal measurements in millimetres. A zero BPD selects
// the three-parameter formula.
type Biometry struct {
	BPD float64
	HC  float64
	AC  float64
	FL  float64
}

// EFW is an estimated fetal weight
type EFW struct {
	Grams   float64
	Formula string
}

// HadlockEFW estimates fetal weight with the Hadlock formulas (inputs
// converted to cm).
func HadlockEFW(b Biometry) (EFW, error) {
	for name, v := range map[string]float64{"hc": b.HC, "ac": b.AC, "fl": b.FL} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return EFW{}, fmt.Errorf("hadlock efw: %s must be a positive number, got %v", name, v)
		}
	}
	if math.IsNaN(b.BPD) || math.IsInf(b.BPD, 0) || b.BPD < 0 {
		return EFW{}, fmt.Errorf("hadlock efw: bpd must be zero or positive, got %v", b.BPD)
	}

	hc, ac, fl := b.HC/10, b.AC/10, b.FL/10

	if b.BPD == 0 {
		log10 := 1.326 - 0.00326*ac*fl + 0.0107*hc + 0.0438*ac + 0.158*fl
		return EFW{Grams: math.Pow(10, log10), Formula: FormulaHadlockHCACFL}, nil
	}

	bpd := b.BPD / 10
	log10 := 1.3596 - 0.00386*ac*fl + 0.0064*hc + 0.00061*bpd*ac + 0.0424*ac + 0.174*fl
	return EFW{Grams: math.Pow(10, log10), Formula: FormulaHadlockBPDHCACFL}, nil
}
