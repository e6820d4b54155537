package entities

// Grouping is one equivalence class in a classifier-supplied partition of raw
// brand names: every member denotes the same real-world brand, displayed under
// CanonicalName. Groups are expected to be disjoint; the deduplicator tolerates
// violations with a last-group-wins policy.
type Grouping struct {
	CanonicalName string   `json:"canonical_name"`
	GroupMembers  []string `json:"group_members"`
}
