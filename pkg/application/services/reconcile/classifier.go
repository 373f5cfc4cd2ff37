package reconcile

import (
	"time"

	"github.com/planvia/demandplan/pkg/domain/entities"
)

// Classify assigns exactly one action to each unmatched order and at most
// one action to each match group, in a fixed priority order: a late
// delivery wins over any quantity difference, so a group never produces
// both an EXPEDITE and an INCREASE/REDUCE.
//
// Message ordering follows the match result: matched groups first, then
// CANCELs for unconsumed committed orders, then NEWs for unmatched planned
// orders.
func Classify(match *MatchResult) ([]entities.ActionMessage, error) {
	var messages []entities.ActionMessage

	for i := range match.Groups {
		msg, ok, err := classifyGroup(&match.Groups[i])
		if err != nil {
			return nil, err
		}
		if ok {
			messages = append(messages, msg)
		}
	}

	for _, order := range match.UnmatchedCommitted {
		text, err := formatCancel(order.NeedDate)
		if err != nil {
			return nil, err
		}
		messages = append(messages, entities.ActionMessage{
			Type:            entities.ActionCancel,
			ExistingOrderID: order.ID,
			Message:         text,
		})
	}

	for _, order := range match.UnmatchedPlanned {
		text, err := formatNew(order.Quantity, order.NeedDate)
		if err != nil {
			return nil, err
		}
		messages = append(messages, entities.ActionMessage{
			Type:           entities.ActionNew,
			PlannedOrderID: order.ID,
			Message:        text,
		})
	}

	return messages, nil
}

// classifyGroup applies the decision rules to one matched group. The second
// return value is false when quantities agree and delivery is on time, in
// which case no message is produced.
func classifyGroup(group *MatchGroup) (entities.ActionMessage, bool, error) {
	planned := group.Planned

	// Rule 1: EXPEDITE. Fires when any matched delivery lands strictly
	// after the planned need date, and subsumes quantity differences.
	if latest, slipped := latestLateDelivery(group); slipped {
		deltaDays := daysAfter(latest, planned.NeedDate)
		currentDate := dateOnly(latest)
		requiredDate := dateOnly(planned.NeedDate)

		text, err := formatExpedite(deltaDays)
		if err != nil {
			return entities.ActionMessage{}, false, err
		}
		return entities.ActionMessage{
			Type:           entities.ActionExpedite,
			PlannedOrderID: planned.ID,
			DeltaDays:      &deltaDays,
			CurrentDate:    &currentDate,
			RequiredDate:   &requiredDate,
			Message:        text,
		}, true, nil
	}

	// Rule 2: INCREASE
	if planned.Quantity.GreaterThan(group.AggregatedQuantity) {
		delta := planned.Quantity.Sub(group.AggregatedQuantity)
		text, err := formatIncrease(delta)
		if err != nil {
			return entities.ActionMessage{}, false, err
		}
		return entities.ActionMessage{
			Type:           entities.ActionIncrease,
			PlannedOrderID: planned.ID,
			DeltaQuantity:  &delta,
			Message:        text,
		}, true, nil
	}

	// Rule 3: REDUCE
	if planned.Quantity.LessThan(group.AggregatedQuantity) {
		delta := group.AggregatedQuantity.Sub(planned.Quantity)
		text, err := formatReduce(delta)
		if err != nil {
			return entities.ActionMessage{}, false, err
		}
		return entities.ActionMessage{
			Type:           entities.ActionReduce,
			PlannedOrderID: planned.ID,
			DeltaQuantity:  &delta,
			Message:        text,
		}, true, nil
	}

	// Rule 4: quantities equal and delivery on or before the need date
	return entities.ActionMessage{}, false, nil
}

// latestLateDelivery returns the latest expected delivery date among the
// group's committed orders, and whether that date falls strictly after the
// planned need date. With several slipped orders the worst slip drives the
// expedite.
func latestLateDelivery(group *MatchGroup) (time.Time, bool) {
	var latest time.Time
	for _, order := range group.Committed {
		if latest.IsZero() || dateOnly(order.ExpectedDeliveryDate).After(dateOnly(latest)) {
			latest = order.ExpectedDeliveryDate
		}
	}
	return latest, daysAfter(latest, group.Planned.NeedDate) > 0
}
