package debugdiff

// Stats holds statistical metadata about a diff
type Stats struct {
	Left  int `json:"leftNodes"`  // count of nodes in the left tree
	Right int `json:"rightNodes"` // count of nodes in the right tree

	Inserts    int `json:"inserts,omitempty"`    // elements & entries only on the right
	Deletes    int `json:"deletes,omitempty"`    // elements & entries only on the left
	Updates    int `json:"updates,omitempty"`    // changed leaf values
	Mismatches int `json:"mismatches,omitempty"` // type & shape mismatches
}

// NodeChange returns a count of the shift between left & right trees
func (s Stats) NodeChange() int {
	return s.Right - s.Left
}

// Changes returns the total number of counted deltas
func (s Stats) Changes() int {
	return s.Inserts + s.Deletes + s.Updates + s.Mismatches
}

func (s *Stats) add(dts Deltas) {
	for _, dt := range dts {
		switch dt.Type {
		case DTInsertAt, DTInsertPair:
			s.Inserts++
		case DTRemoveAt, DTRemovePair:
			s.Deletes++
		case DTBoolMismatch, DTNumberMismatch, DTStrMismatch:
			s.Updates++
		default:
			s.Mismatches++
		}
	}
}
