// Package form holds the editable field state of the order and item forms and
// converts between that state and domain values.
package form

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	FieldOrderID    = "order_id"
	FieldUserID     = "user_id"
	FieldCreateTime = "create_time"
	FieldItems      = "items"
	FieldStatus     = "status"
	FieldItemID     = "item_id"
	FieldItemDetail = "item_detail"
)

type Field struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Schema enumerates the fields of one resource's form, in display order.
type Schema struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

func (s Schema) Has(id string) bool {
	for _, f := range s.Fields {
		if f.ID == id {
			return true
		}
	}
	return false
}

var OrderSchema = Schema{
	Name: "order",
	Fields: []Field{
		{ID: FieldOrderID, Label: "Order ID"},
		{ID: FieldUserID, Label: "User ID"},
		{ID: FieldCreateTime, Label: "Create Time"},
		{ID: FieldItems, Label: "Items"},
		{ID: FieldStatus, Label: "Status"},
	},
}

var ItemSchema = Schema{
	Name: "item",
	Fields: []Field{
		{ID: FieldOrderID, Label: "Order ID"},
		{ID: FieldItemID, Label: "Item ID"},
		{ID: FieldItemDetail, Label: "Item Detail"},
	},
}

// Layout is the pair of schemas the UI renders.
type Layout struct {
	Order Schema
	Item  Schema
}

func DefaultLayout() Layout {
	return Layout{Order: clone(OrderSchema), Item: clone(ItemSchema)}
}

func clone(s Schema) Schema {
	fields := make([]Field, len(s.Fields))
	copy(fields, s.Fields)
	return Schema{Name: s.Name, Fields: fields}
}

type layoutFile struct {
	Labels map[string]map[string]string `yaml:"labels"`
}

// LoadLayout overrides field labels of the default layout from YAML:
//
//	labels:
//	  order:
//	    user_id: Customer
//	  item:
//	    item_detail: Notes
//
// Field ids cannot be added or removed; an unknown schema or field is an error.
func LoadLayout(data []byte) (Layout, error) {
	layout := DefaultLayout()

	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return layout, fmt.Errorf("failed to parse layout: %w", err)
	}

	for schemaName, labels := range lf.Labels {
		var s *Schema
		switch schemaName {
		case OrderSchema.Name:
			s = &layout.Order
		case ItemSchema.Name:
			s = &layout.Item
		default:
			return DefaultLayout(), fmt.Errorf("unknown form %q in layout", schemaName)
		}
		for id, label := range labels {
			if !s.Has(id) {
				return DefaultLayout(), fmt.Errorf("unknown field %q in %s form", id, schemaName)
			}
			for i := range s.Fields {
				if s.Fields[i].ID == id {
					s.Fields[i].Label = label
				}
			}
		}
	}
	return layout, nil
}
