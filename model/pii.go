package model

// PIIType identifies the category of a detected piece of personally
// identifiable information. The set is closed: detection and token marking
// both use these values, never free-form strings.
type PIIType int

const (
	PIINone PIIType = iota
	PIISSN
	PIIRoutingNumber
	PIIAccountNumber
	PIICreditScore
	PIICreditScoreRating
	PIICreditCardNumber
	PIIPhoneNumber
	PIIEmail
	PIIAddress
	PIIName
)

func (pt PIIType) String() string {
	switch pt {
	case PIISSN:
		return "SSN"
	case PIIRoutingNumber:
		return "Routing Number"
	case PIIAccountNumber:
		return "Account Number"
	case PIICreditScore:
		return "Credit Score"
	case PIICreditScoreRating:
		return "Credit Score Rating"
	case PIICreditCardNumber:
		return "Credit Card Number"
	case PIIPhoneNumber:
		return "Phone Number"
	case PIIEmail:
		return "Email"
	case PIIAddress:
		return "Address"
	case PIIName:
		return "Name"
	default:
		return "None"
	}
}

// ParsePIIType maps a display name back to its PIIType. Unknown names
// parse as PIINone.
func ParsePIIType(name string) PIIType {
	for pt := PIISSN; pt <= PIIName; pt++ {
		if pt.String() == name {
			return pt
		}
	}
	return PIINone
}

// PIIMatch is one detected occurrence of PII in a document's full text.
// Start and End are a half-open range [Start, End) into Document.FullText.
// Text is the substring finally selected for redaction; for label-bearing
// categories it is the refined value with the label stripped. A match is
// immutable once refined.
type PIIMatch struct {
	Text  string
	Start int
	End   int
	Type  PIIType
}
