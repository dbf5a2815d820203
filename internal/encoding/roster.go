package encoding

// EncodeRoster converts an ordered sequence of player records into a
// RosterSize x PlayerFeatures grid, flattened row-major. Row order follows
// the input exactly; callers supply depth-chart ordering if they want it.
// Rows beyond the input remain null players, and input beyond RosterSize
// is ignored rather than rejected.
func EncodeRoster(recs []Record) []float32 {
	vec := make([]float32, RosterFeatures)
	n := len(recs)
	if n > RosterSize {
		n = RosterSize
	}
	for i := 0; i < n; i++ {
		// A nil record already encodes as the null player; nothing
		// more to do with the error here.
		pv, _ := EncodePlayer(recs[i])
		copy(vec[i*PlayerFeatures:(i+1)*PlayerFeatures], pv)
	}
	return vec
}
