package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planvia/demandplan/pkg/domain/entities"
)

// partitionKey scopes matching to a single product and order type. An order
// never matches across a different product or order type, even when dates
// coincide.
type partitionKey struct {
	ProductID string
	OrderType entities.OrderType
}

// committedCandidate tracks a committed order and whether a match group has
// consumed it
type committedCandidate struct {
	order    *entities.CommittedOrder
	consumed bool
}

// partitionState holds one partition's candidates during matching
type partitionState struct {
	planned   []*entities.PlannedOrder
	committed []*committedCandidate
}

// MatchGroup pairs one planned order with the committed orders consumed for
// it. AggregatedQuantity is the sum of the consumed committed quantities.
type MatchGroup struct {
	Planned            *entities.PlannedOrder
	Committed          []*entities.CommittedOrder
	AggregatedQuantity decimal.Decimal
}

// MatchResult partitions both input sets: every committed order appears in
// exactly one group or in UnmatchedCommitted, and every planned order heads
// exactly one group or appears in UnmatchedPlanned.
type MatchResult struct {
	Groups             []MatchGroup
	UnmatchedPlanned   []*entities.PlannedOrder
	UnmatchedCommitted []*entities.CommittedOrder
}

// MatchOrders pairs each planned order with the not-yet-consumed committed
// orders of the same product and order type whose need date lies within
// toleranceDays calendar days of the planned order's need date. Distance
// exactly equal to the tolerance counts as a match.
//
// Planned orders are processed in ascending need-date order (then id) and
// consume candidates greedily; a committed order is consumed by at most one
// group. Output ordering is deterministic for identical inputs.
func MatchOrders(
	planned []*entities.PlannedOrder,
	committed []*entities.CommittedOrder,
	toleranceDays int,
) *MatchResult {
	partitions := buildPartitions(planned, committed)

	keys := make([]partitionKey, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProductID != keys[j].ProductID {
			return keys[i].ProductID < keys[j].ProductID
		}
		return keys[i].OrderType < keys[j].OrderType
	})

	result := &MatchResult{}
	for _, key := range keys {
		matchPartition(partitions[key], toleranceDays, result)
	}
	return result
}

// buildPartitions groups both sets by (product, order type) and orders the
// candidates within each partition by need date, then id
func buildPartitions(
	planned []*entities.PlannedOrder,
	committed []*entities.CommittedOrder,
) map[partitionKey]*partitionState {
	partitions := make(map[partitionKey]*partitionState)

	state := func(key partitionKey) *partitionState {
		st, ok := partitions[key]
		if !ok {
			st = &partitionState{}
			partitions[key] = st
		}
		return st
	}

	for _, order := range planned {
		key := partitionKey{ProductID: order.ProductID, OrderType: order.OrderType}
		st := state(key)
		st.planned = append(st.planned, order)
	}
	for _, order := range committed {
		key := partitionKey{ProductID: order.ProductID, OrderType: order.OrderType}
		st := state(key)
		st.committed = append(st.committed, &committedCandidate{order: order})
	}

	for _, st := range partitions {
		sort.Slice(st.planned, func(i, j int) bool {
			if !st.planned[i].NeedDate.Equal(st.planned[j].NeedDate) {
				return st.planned[i].NeedDate.Before(st.planned[j].NeedDate)
			}
			return st.planned[i].ID < st.planned[j].ID
		})
		sort.Slice(st.committed, func(i, j int) bool {
			a, b := st.committed[i].order, st.committed[j].order
			if !a.NeedDate.Equal(b.NeedDate) {
				return a.NeedDate.Before(b.NeedDate)
			}
			return a.ID < b.ID
		})
	}

	return partitions
}

// matchPartition runs the greedy consumption loop for a single partition
func matchPartition(st *partitionState, toleranceDays int, result *MatchResult) {
	for _, p := range st.planned {
		group := MatchGroup{
			Planned:            p,
			AggregatedQuantity: decimal.Zero,
		}
		for _, c := range st.committed {
			if c.consumed {
				continue
			}
			if daysApart(c.order.NeedDate, p.NeedDate) <= toleranceDays {
				c.consumed = true
				group.Committed = append(group.Committed, c.order)
				group.AggregatedQuantity = group.AggregatedQuantity.Add(c.order.Quantity)
			}
		}

		if len(group.Committed) == 0 {
			result.UnmatchedPlanned = append(result.UnmatchedPlanned, p)
		} else {
			result.Groups = append(result.Groups, group)
		}
	}

	// Committed orders still unconsumed after every planned order in the
	// partition has been processed are cancel candidates.
	for _, c := range st.committed {
		if !c.consumed {
			result.UnmatchedCommitted = append(result.UnmatchedCommitted, c.order)
		}
	}
}

// dateOnly strips the time-of-day component so distances are measured in
// calendar days
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysApart returns the absolute distance between two dates in whole
// calendar days
func daysApart(a, b time.Time) int {
	diff := daysAfter(a, b)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// daysAfter returns how many whole calendar days a falls after b; negative
// when a is earlier
func daysAfter(a, b time.Time) int {
	return int(dateOnly(a).Sub(dateOnly(b)) / (24 * time.Hour))
}
