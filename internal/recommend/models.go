package recommend

// PremiumTier is a coarse ordinal classification of a product's relative
// cost. It is used only for sorting; nothing here computes it.
type PremiumTier string

const (
	TierLow     PremiumTier = "low"
	TierMedium  PremiumTier = "medium"
	TierHigh    PremiumTier = "high"
	TierUnknown PremiumTier = "unknown"
)

// ordinal ranks tiers for sorting. Unknown and unrecognized tiers sort with
// medium.
func (t PremiumTier) ordinal() int {
	switch t {
	case TierLow:
		return 0
	case TierHigh:
		return 2
	default:
		return 1
	}
}

// Item is one carrier/product recommendation. Confidence is the canonical
// normalized score in [0,1], reconciled once at decode time; every ordering
// and classification downstream keys off it.
type Item struct {
	Carrier          string      `json:"carrier"`
	Product          string      `json:"product"`
	Confidence       float64     `json:"confidence"`
	Reason           string      `json:"reason,omitempty"`
	ProductType      string      `json:"product_type,omitempty"`
	UnderwritingType string      `json:"underwriting_type,omitempty"`
	PremiumTier      PremiumTier `json:"premium_tier,omitempty"`
	FaceAmountRange  string      `json:"face_amount_range,omitempty"`
	IssueAges        string      `json:"issue_ages,omitempty"`
	PortalURL        string      `json:"portal_url,omitempty"`
	EAppURL          string      `json:"eapp_url,omitempty"`
}

// SameProduct reports identity between items: the (carrier, product) pair.
func (i Item) SameProduct(other Item) bool {
	return i.Carrier == other.Carrier && i.Product == other.Product
}

// wireItem is the recommender's response shape. Two generations of the
// service disagree on field names: score in [0,100] vs confidence in [0,1],
// and rationale vs reason. decode reconciles both.
type wireItem struct {
	Carrier          string      `json:"carrier"`
	Product          string      `json:"product"`
	Confidence       *float64    `json:"confidence,omitempty"`
	Score            *float64    `json:"score,omitempty"`
	Reason           string      `json:"reason,omitempty"`
	Rationale        string      `json:"rationale,omitempty"`
	ProductType      string      `json:"product_type,omitempty"`
	UnderwritingType string      `json:"underwriting_type,omitempty"`
	PremiumTier      PremiumTier `json:"premium_tier,omitempty"`
	FaceAmountRange  string      `json:"face_amount_range,omitempty"`
	IssueAges        string      `json:"issue_ages,omitempty"`
	PortalURL        string      `json:"portal_url,omitempty"`
	EAppURL          string      `json:"eapp_url,omitempty"`
}

func (w wireItem) decode() Item {
	score := 0.0
	switch {
	case w.Confidence != nil:
		score = *w.Confidence
	case w.Score != nil:
		score = *w.Score / 100
	}

	reason := w.Reason
	if reason == "" {
		reason = w.Rationale
	}

	return Item{
		Carrier:          w.Carrier,
		Product:          w.Product,
		Confidence:       score,
		Reason:           reason,
		ProductType:      w.ProductType,
		UnderwritingType: w.UnderwritingType,
		PremiumTier:      w.PremiumTier,
		FaceAmountRange:  w.FaceAmountRange,
		IssueAges:        w.IssueAges,
		PortalURL:        w.PortalURL,
		EAppURL:          w.EAppURL,
	}
}
