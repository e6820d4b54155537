package entities

// Alias maps a normalized raw name to the brand it was consolidated into.
// Exactly one alias per brand is canonical: the one derived from the group's
// canonical display name.
type Alias struct {
	Alias       string `json:"alias"`
	BrandID     int    `json:"brand_id"`
	IsCanonical bool   `json:"is_canonical"`
}
