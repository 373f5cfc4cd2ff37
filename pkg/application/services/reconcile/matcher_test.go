package reconcile

import (
	"testing"
	"time"

	"github.com/planvia/demandplan/pkg/domain/entities"
)

func TestMatchOrders_ExactDateMatch(t *testing.T) {
	planned := []*entities.PlannedOrder{
		plannedOrder("P1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 1)),
	}
	committed := []*entities.CommittedOrder{
		committedOrder("C1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 1)),
	}

	result := MatchOrders(planned, committed, DefaultToleranceDays)

	if len(result.Groups) != 1 {
		t.Fatalf("Expected 1 match group, got %d", len(result.Groups))
	}
	if len(result.UnmatchedPlanned) != 0 {
		t.Errorf("Expected no unmatched planned orders, got %d", len(result.UnmatchedPlanned))
	}
	if len(result.UnmatchedCommitted) != 0 {
		t.Errorf("Expected no unmatched committed orders, got %d", len(result.UnmatchedCommitted))
	}

	group := result.Groups[0]
	if group.Planned.ID != "P1" {
		t.Errorf("Expected planned order P1, got %s", group.Planned.ID)
	}
	if len(group.Committed) != 1 || group.Committed[0].ID != "C1" {
		t.Errorf("Expected group to consume C1, got %v", group.Committed)
	}
	if !group.AggregatedQuantity.Equal(committed[0].Quantity) {
		t.Errorf("Expected aggregated quantity 100, got %s", group.AggregatedQuantity)
	}
}

func TestMatchOrders_ToleranceBoundary(t *testing.T) {
	planned := []*entities.PlannedOrder{
		plannedOrder("P1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 10)),
	}

	// Exactly 3 days away matches
	within := []*entities.CommittedOrder{
		committedOrder("C1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 13)),
	}
	result := MatchOrders(planned, within, 3)
	if len(result.Groups) != 1 {
		t.Fatalf("Expected a match at the 3-day boundary, got %d groups", len(result.Groups))
	}

	// 4 days away does not
	beyond := []*entities.CommittedOrder{
		committedOrder("C2", "WIDGET", entities.Purchase, "100", date(2026, time.April, 14)),
	}
	result = MatchOrders(planned, beyond, 3)
	if len(result.Groups) != 0 {
		t.Fatalf("Expected no match at 4 days, got %d groups", len(result.Groups))
	}
	if len(result.UnmatchedPlanned) != 1 {
		t.Errorf("Expected 1 unmatched planned order, got %d", len(result.UnmatchedPlanned))
	}
	if len(result.UnmatchedCommitted) != 1 {
		t.Errorf("Expected 1 unmatched committed order, got %d", len(result.UnmatchedCommitted))
	}
}

func TestMatchOrders_PartitionsAreIndependent(t *testing.T) {
	needDate := date(2026, time.April, 1)
	planned := []*entities.PlannedOrder{
		plannedOrder("P1", "WIDGET", entities.Purchase, "100", needDate),
	}
	committed := []*entities.CommittedOrder{
		// Same date, different product
		committedOrder("C1", "GADGET", entities.Purchase, "100", needDate),
		// Same date and product, different order type
		committedOrder("C2", "WIDGET", entities.Production, "100", needDate),
	}

	result := MatchOrders(planned, committed, DefaultToleranceDays)

	if len(result.Groups) != 0 {
		t.Errorf("Expected no cross-partition matches, got %d groups", len(result.Groups))
	}
	if len(result.UnmatchedPlanned) != 1 {
		t.Errorf("Expected 1 unmatched planned order, got %d", len(result.UnmatchedPlanned))
	}
	if len(result.UnmatchedCommitted) != 2 {
		t.Errorf("Expected 2 unmatched committed orders, got %d", len(result.UnmatchedCommitted))
	}
}

func TestMatchOrders_AggregatesMultipleCommitted(t *testing.T) {
	planned := []*entities.PlannedOrder{
		plannedOrder("P1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 10)),
	}
	committed := []*entities.CommittedOrder{
		committedOrder("C1", "WIDGET", entities.Purchase, "40", date(2026, time.April, 8)),
		committedOrder("C2", "WIDGET", entities.Purchase, "35", date(2026, time.April, 12)),
	}

	result := MatchOrders(planned, committed, DefaultToleranceDays)

	if len(result.Groups) != 1 {
		t.Fatalf("Expected both committed orders in one group, got %d groups", len(result.Groups))
	}
	group := result.Groups[0]
	if len(group.Committed) != 2 {
		t.Fatalf("Expected 2 consumed committed orders, got %d", len(group.Committed))
	}
	if group.AggregatedQuantity.String() != "75" {
		t.Errorf("Expected aggregated quantity 75, got %s", group.AggregatedQuantity)
	}
}

func TestMatchOrders_EmptyPlannedSet(t *testing.T) {
	committed := []*entities.CommittedOrder{
		committedOrder("C1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 1)),
		committedOrder("C2", "GADGET", entities.Production, "50", date(2026, time.April, 2)),
	}

	result := MatchOrders(nil, committed, DefaultToleranceDays)

	if len(result.Groups) != 0 || len(result.UnmatchedPlanned) != 0 {
		t.Errorf("Expected only unmatched committed orders")
	}
	if len(result.UnmatchedCommitted) != 2 {
		t.Errorf("Expected every committed order unmatched, got %d", len(result.UnmatchedCommitted))
	}
}

func TestMatchOrders_EmptyCommittedSet(t *testing.T) {
	planned := []*entities.PlannedOrder{
		plannedOrder("P1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 1)),
		plannedOrder("P2", "GADGET", entities.Production, "50", date(2026, time.April, 2)),
	}

	result := MatchOrders(planned, nil, DefaultToleranceDays)

	if len(result.Groups) != 0 || len(result.UnmatchedCommitted) != 0 {
		t.Errorf("Expected only unmatched planned orders")
	}
	if len(result.UnmatchedPlanned) != 2 {
		t.Errorf("Expected every planned order unmatched, got %d", len(result.UnmatchedPlanned))
	}
}

func TestMatchOrders_CommittedConsumedByAtMostOneGroup(t *testing.T) {
	// Both planned orders are within tolerance of the single committed
	// order. The earlier-dated planned order is processed first and
	// consumes it greedily; the later one goes unmatched.
	planned := []*entities.PlannedOrder{
		plannedOrder("P2", "WIDGET", entities.Purchase, "100", date(2026, time.April, 12)),
		plannedOrder("P1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 10)),
	}
	committed := []*entities.CommittedOrder{
		committedOrder("C1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 11)),
	}

	result := MatchOrders(planned, committed, DefaultToleranceDays)

	if len(result.Groups) != 1 {
		t.Fatalf("Expected 1 match group, got %d", len(result.Groups))
	}
	if result.Groups[0].Planned.ID != "P1" {
		t.Errorf("Expected earliest-dated planned order to consume, got %s", result.Groups[0].Planned.ID)
	}
	if len(result.UnmatchedPlanned) != 1 || result.UnmatchedPlanned[0].ID != "P2" {
		t.Errorf("Expected P2 unmatched, got %v", result.UnmatchedPlanned)
	}
}

func TestMatchOrders_PartitionInvariant(t *testing.T) {
	planned := []*entities.PlannedOrder{
		plannedOrder("P1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 1)),
		plannedOrder("P2", "WIDGET", entities.Purchase, "50", date(2026, time.April, 20)),
		plannedOrder("P3", "GADGET", entities.Production, "10", date(2026, time.April, 5)),
	}
	committed := []*entities.CommittedOrder{
		committedOrder("C1", "WIDGET", entities.Purchase, "100", date(2026, time.April, 2)),
		committedOrder("C2", "WIDGET", entities.Purchase, "25", date(2026, time.April, 28)),
		committedOrder("C3", "SPROCKET", entities.Purchase, "5", date(2026, time.April, 5)),
	}

	result := MatchOrders(planned, committed, DefaultToleranceDays)

	consumedCommitted := 0
	matchedPlanned := len(result.Groups)
	for _, group := range result.Groups {
		consumedCommitted += len(group.Committed)
	}

	if consumedCommitted+len(result.UnmatchedCommitted) != len(committed) {
		t.Errorf("Committed partition broken: %d consumed + %d unmatched != %d loaded",
			consumedCommitted, len(result.UnmatchedCommitted), len(committed))
	}
	if matchedPlanned+len(result.UnmatchedPlanned) != len(planned) {
		t.Errorf("Planned partition broken: %d matched + %d unmatched != %d input",
			matchedPlanned, len(result.UnmatchedPlanned), len(planned))
	}
}

func TestDaysApart_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, time.April, 1, 23, 30, 0, 0, time.UTC)
	early := time.Date(2026, time.April, 4, 0, 15, 0, 0, time.UTC)

	if got := daysApart(late, early); got != 3 {
		t.Errorf("Expected 3 calendar days apart, got %d", got)
	}
}
