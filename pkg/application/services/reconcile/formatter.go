package reconcile

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planvia/demandplan/pkg/domain/entities"
)

// dateLayout renders calendar dates in action message text
const dateLayout = "2006-01-02"

// All interpolated fields are small bounded values, so the rendered text
// stays within entities.MaxMessageLength by construction. The bounded check
// exists to fail loudly if a future field addition breaks that, rather than
// truncating.

func formatCancel(needDate time.Time) (string, error) {
	return boundedMessage(fmt.Sprintf(
		"CANCEL: No requirement for %s", needDate.Format(dateLayout)))
}

func formatIncrease(deltaQuantity decimal.Decimal) (string, error) {
	return boundedMessage(fmt.Sprintf(
		"INCREASE: +%s units needed", deltaQuantity.String()))
}

func formatReduce(deltaQuantity decimal.Decimal) (string, error) {
	return boundedMessage(fmt.Sprintf(
		"REDUCE: -%s units excess", deltaQuantity.String()))
}

func formatExpedite(deltaDays int) (string, error) {
	return boundedMessage(fmt.Sprintf(
		"EXPEDITE: Move forward %d days", deltaDays))
}

func formatNew(quantity decimal.Decimal, needDate time.Time) (string, error) {
	return boundedMessage(fmt.Sprintf(
		"NEW: %s units needed by %s", quantity.String(), needDate.Format(dateLayout)))
}

func boundedMessage(text string) (string, error) {
	if len(text) > entities.MaxMessageLength {
		return "", fmt.Errorf(
			"action message exceeds %d characters: %q", entities.MaxMessageLength, text)
	}
	return text, nil
}
