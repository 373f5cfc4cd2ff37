package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseOrderType(t *testing.T) {
	tests := []struct {
		input   string
		want    OrderType
		wantErr bool
	}{
		{input: "PURCHASE", want: Purchase},
		{input: "production", want: Production},
		{input: " Purchase ", want: Purchase},
		{input: "TRANSFER", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseOrderType(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseOrderType(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOrderType(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOrderType(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    OrderStatus
		wantErr bool
	}{
		{input: "FIRM", want: StatusFirm},
		{input: "released", want: StatusReleased},
		{input: "Planned", want: StatusPlanned},
		{input: "CANCELLED", want: StatusCancelled},
		{input: "SHIPPED", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseOrderStatus(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseOrderStatus(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOrderStatus(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOrderStatus(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestOrderStatus_IsOpen(t *testing.T) {
	if !StatusFirm.IsOpen() {
		t.Errorf("Expected FIRM to be open")
	}
	if !StatusReleased.IsOpen() {
		t.Errorf("Expected RELEASED to be open")
	}
	if StatusPlanned.IsOpen() {
		t.Errorf("Expected PLANNED not to be open")
	}
	if StatusCancelled.IsOpen() {
		t.Errorf("Expected CANCELLED not to be open")
	}
}

func TestNewPlannedOrder_Validation(t *testing.T) {
	needDate := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	quantity := decimal.RequireFromString("100")

	if _, err := NewPlannedOrder("P1", "WIDGET", Purchase, quantity, needDate); err != nil {
		t.Errorf("Expected valid order to be created: %v", err)
	}

	// Zero quantity is valid input, not an error
	if _, err := NewPlannedOrder("P1", "WIDGET", Purchase, decimal.Zero, needDate); err != nil {
		t.Errorf("Expected zero quantity to be accepted: %v", err)
	}

	if _, err := NewPlannedOrder("", "WIDGET", Purchase, quantity, needDate); err == nil {
		t.Errorf("Expected error for empty order id")
	}
	if _, err := NewPlannedOrder("P1", "", Purchase, quantity, needDate); err == nil {
		t.Errorf("Expected error for empty product id")
	}
	if _, err := NewPlannedOrder("P1", "WIDGET", Purchase, decimal.RequireFromString("-1"), needDate); err == nil {
		t.Errorf("Expected error for negative quantity")
	}
	if _, err := NewPlannedOrder("P1", "WIDGET", Purchase, quantity, time.Time{}); err == nil {
		t.Errorf("Expected error for zero need date")
	}
}

func TestNewCommittedOrder_DeliveryDateDefaults(t *testing.T) {
	needDate := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	quantity := decimal.RequireFromString("100")

	order, err := NewCommittedOrder("C1", "WIDGET", Purchase, quantity, needDate, time.Time{}, StatusFirm)
	if err != nil {
		t.Fatalf("NewCommittedOrder failed: %v", err)
	}
	if !order.ExpectedDeliveryDate.Equal(needDate) {
		t.Errorf("Expected delivery date to default to need date, got %v", order.ExpectedDeliveryDate)
	}

	slipped := needDate.AddDate(0, 0, 7)
	order, err = NewCommittedOrder("C1", "WIDGET", Purchase, quantity, needDate, slipped, StatusFirm)
	if err != nil {
		t.Fatalf("NewCommittedOrder failed: %v", err)
	}
	if !order.ExpectedDeliveryDate.Equal(slipped) {
		t.Errorf("Expected explicit delivery date to be kept, got %v", order.ExpectedDeliveryDate)
	}
}
