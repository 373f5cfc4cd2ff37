package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planvia/demandplan/pkg/domain/entities"
)

// Loader handles loading order data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadPlannedOrders loads planned orders from a CSV file
func (l *Loader) LoadPlannedOrders(filename string) ([]*entities.PlannedOrder, error) {
	records, err := readCSV(filename, "planned orders")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"order_id", "product_id", "order_type", "quantity", "need_date"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("planned orders CSV header mismatch. Expected: %v, Got: %v",
			expectedHeader, header)
	}

	var orders []*entities.PlannedOrder
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("planned orders CSV row %d: expected %d columns, got %d",
				i+2, len(expectedHeader), len(record))
		}

		order, err := parsePlannedOrder(record)
		if err != nil {
			return nil, fmt.Errorf("planned orders CSV row %d: %w", i+2, err)
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// LoadCommittedOrders loads committed orders from a CSV file. An empty
// expected_delivery_date column defaults to the need date.
func (l *Loader) LoadCommittedOrders(filename string) ([]*entities.CommittedOrder, error) {
	records, err := readCSV(filename, "committed orders")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{
		"order_id", "product_id", "order_type", "quantity",
		"need_date", "expected_delivery_date", "status",
	}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("committed orders CSV header mismatch. Expected: %v, Got: %v",
			expectedHeader, header)
	}

	var orders []*entities.CommittedOrder
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("committed orders CSV row %d: expected %d columns, got %d",
				i+2, len(expectedHeader), len(record))
		}

		order, err := parseCommittedOrder(record)
		if err != nil {
			return nil, fmt.Errorf("committed orders CSV row %d: %w", i+2, err)
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// Helper functions for parsing CSV records

func readCSV(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parsePlannedOrder(record []string) (*entities.PlannedOrder, error) {
	orderType, err := entities.ParseOrderType(record[2])
	if err != nil {
		return nil, err
	}

	quantity, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %s", record[3])
	}

	needDate, err := time.Parse("2006-01-02", record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid need_date format: %s (expected YYYY-MM-DD)", record[4])
	}

	return entities.NewPlannedOrder(record[0], record[1], orderType, quantity, needDate)
}

func parseCommittedOrder(record []string) (*entities.CommittedOrder, error) {
	orderType, err := entities.ParseOrderType(record[2])
	if err != nil {
		return nil, err
	}

	quantity, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %s", record[3])
	}

	needDate, err := time.Parse("2006-01-02", record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid need_date format: %s (expected YYYY-MM-DD)", record[4])
	}

	var deliveryDate time.Time
	if strings.TrimSpace(record[5]) != "" {
		deliveryDate, err = time.Parse("2006-01-02", record[5])
		if err != nil {
			return nil, fmt.Errorf(
				"invalid expected_delivery_date format: %s (expected YYYY-MM-DD)", record[5])
		}
	}

	status, err := entities.ParseOrderStatus(record[6])
	if err != nil {
		return nil, err
	}

	return entities.NewCommittedOrder(
		record[0], record[1], orderType, quantity, needDate, deliveryDate, status)
}
