package nutrition

const (
	kgToLbs    = 2.20462
	cmToInches = 0.393701
)

// KgToLbs converts kilograms to pounds.
func KgToLbs(kg float64) float64 { return kg * kgToLbs }

// LbsToKg converts pounds to kilograms.
func LbsToKg(lbs float64) float64 { return lbs / kgToLbs }

// CmToInches converts centimetres to inches.
func CmToInches(cm float64) float64 { return cm * cmToInches }

// InchesToCm converts inches to centimetres.
func InchesToCm(inches float64) float64 { return inches / cmToInches }
