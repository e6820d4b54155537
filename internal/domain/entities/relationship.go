package entities

// BrandRelation is one row of the cumulative brand-to-brand ledger. The pair
// is stored in canonical order (BrandID1 < BrandID2) so each unordered pair
// has exactly one row.
type BrandRelation struct {
	BrandID1      int `json:"brand_id_1"`
	BrandID2      int `json:"brand_id_2"`
	TotalMentions int `json:"total_mentions"`
}

// SearchMention is one row of the per-run subject ledger: the search subject
// (BrandAID) paired with another brand found in the same run. Direction is
// fixed — subject first — and no canonical ordering is applied.
type SearchMention struct {
	BrandAID int `json:"brand_a_id"`
	BrandBID int `json:"brand_b_id"`
	Mentions int `json:"mentions"`
}

// CategoryMention links a brand to one of its extracted category tags.
type CategoryMention struct {
	BrandID    int `json:"brand_id"`
	CategoryID int `json:"category_id"`
	Mentions   int `json:"mentions"`
}
