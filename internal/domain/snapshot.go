package domain

import "sort"

// AccountSnapshot is the exported balance of one client.
type AccountSnapshot struct {
	Client    ClientID
	Available Amount
	Held      Amount
	Total     Amount
	Locked    bool
}

// SortByClient orders snapshots by ascending client id, in place.
func SortByClient(snapshots []AccountSnapshot) {
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Client < snapshots[j].Client
	})
}
