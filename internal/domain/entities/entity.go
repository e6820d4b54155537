// Package entities contains the core domain types for the brand pipeline.
package entities

// Entity is a brand or category with a stable integer identity and an
// accumulated mention count. IDs are unique within one collection; names are
// unique (by normalized comparison) only after deduplication.
type Entity struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	TotalMentions int    `json:"total_mentions"`
}

// BrandObservation is one raw classifier finding: a display name as the
// classifier emitted it, with the mention count it reported for one unit of
// text. Observations are merged by raw name; fuzzy merging of near-duplicate
// names happens later, during deduplication.
type BrandObservation struct {
	Name     string `json:"name"`
	Mentions int    `json:"mentions"`
}
