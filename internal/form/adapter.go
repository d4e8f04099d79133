package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
)

// ValidationError reports a field that could not be parsed at submission.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s must be a number, got %q", e.Field, e.Value)
}

// PopulateOrder writes a fetched or created order into the order form.
// Items are shown comma-joined and the status as its symbol.
func PopulateOrder(f *Form, o domain.Order) {
	f.Set(FieldOrderID, strconv.Itoa(o.ID))
	f.Set(FieldUserID, strconv.Itoa(o.UserID))
	f.Set(FieldCreateTime, strconv.FormatInt(o.CreateTime, 10))
	f.Set(FieldItems, JoinItems(o.Items))
	f.Set(FieldStatus, domain.ToSymbol(o.Status))
}

// PopulateItem writes an item into the item form. The detail field is only
// overwritten when the server returned one.
func PopulateItem(f *Form, it domain.Item) {
	f.Set(FieldOrderID, strconv.Itoa(it.OrderID))
	f.Set(FieldItemID, strconv.Itoa(it.ItemID))
	if it.Detail != "" {
		f.Set(FieldItemDetail, it.Detail)
	}
}

func JoinItems(items []int) string {
	parts := make([]string, len(items))
	for i, id := range items {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// ParseItems reads a comma-separated list of item ids. Blank entries are
// skipped, so "" is the empty list.
func ParseItems(v string) ([]int, error) {
	items := []int{}
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, &ValidationError{Field: FieldItems, Value: part}
		}
		items = append(items, id)
	}
	return items, nil
}

// Int parses a required integer field from a snapshot.
func Int(values map[string]string, field string) (int, error) {
	v := strings.TrimSpace(values[field])
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: v}
	}
	return n, nil
}

// Status translates the status field with domain.ToCode; an unrecognized
// symbol becomes the sentinel 0 and is sent as-is.
func Status(values map[string]string) domain.Status {
	return domain.ToCode(strings.TrimSpace(values[FieldStatus]))
}

type OrderInput struct {
	OrderID int
	UserID  int
	Items   []int
	Status  domain.Status
}

// CreateInput captures the fields needed to create an order.
func CreateInput(values map[string]string) (OrderInput, error) {
	userID, err := Int(values, FieldUserID)
	if err != nil {
		return OrderInput{}, err
	}
	items, err := ParseItems(values[FieldItems])
	if err != nil {
		return OrderInput{}, err
	}
	return OrderInput{UserID: userID, Items: items, Status: domain.StatusCreated}, nil
}

// UpdateInput captures the fields needed to replace an order.
func UpdateInput(values map[string]string) (OrderInput, error) {
	orderID, err := Int(values, FieldOrderID)
	if err != nil {
		return OrderInput{}, err
	}
	in, err := CreateInput(values)
	if err != nil {
		return OrderInput{}, err
	}
	in.OrderID = orderID
	in.Status = Status(values)
	return in, nil
}

type ItemInput struct {
	OrderID int
	ItemID  int
	Detail  string
}

// ItemRef captures the order id and item id of the item form.
func ItemRef(values map[string]string) (ItemInput, error) {
	orderID, err := Int(values, FieldOrderID)
	if err != nil {
		return ItemInput{}, err
	}
	itemID, err := Int(values, FieldItemID)
	if err != nil {
		return ItemInput{}, err
	}
	return ItemInput{OrderID: orderID, ItemID: itemID, Detail: values[FieldItemDetail]}, nil
}
