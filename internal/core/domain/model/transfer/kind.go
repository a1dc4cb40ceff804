package transfer

import (
	"fmt"
	"strings"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/errs"
)

// Type classifies a transfer by its endpoints.
type Type int

const (
	UnknownType Type = iota
	WarehouseToWarehouse
	StoreToStore
	WarehouseToStore
	StoreToWarehouse
	// Emergency transfers may connect any two locations.
	Emergency
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType:          "UNKNOWN",
		WarehouseToWarehouse: "WAREHOUSE_TO_WAREHOUSE",
		StoreToStore:         "STORE_TO_STORE",
		WarehouseToStore:     "WAREHOUSE_TO_STORE",
		StoreToWarehouse:     "STORE_TO_WAREHOUSE",
		Emergency:            "EMERGENCY",
	}
}

func AllTypes() []Type {
	return []Type{WarehouseToWarehouse, StoreToStore, WarehouseToStore, StoreToWarehouse, Emergency}
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

func (t Type) Validate() error {
	if t < WarehouseToWarehouse || t > Emergency {
		return errs.NewValueIsInvalidErrorWithCause("type is invalid", fmt.Errorf("%d is not a valid transfer type", t))
	}
	return nil
}

func ParseType(s string) (Type, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range AllTypes() {
		if t.String() == want {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("type is invalid", fmt.Errorf("%q is not a valid transfer type", s))
}

// ValidateEndpoints checks that the location kinds match the transfer type.
func (t Type) ValidateEndpoints(from, to kernel.LocationType) error {
	var wantFrom, wantTo kernel.LocationType
	switch t {
	case WarehouseToWarehouse:
		wantFrom, wantTo = kernel.Warehouse, kernel.Warehouse
	case StoreToStore:
		wantFrom, wantTo = kernel.Store, kernel.Store
	case WarehouseToStore:
		wantFrom, wantTo = kernel.Warehouse, kernel.Store
	case StoreToWarehouse:
		wantFrom, wantTo = kernel.Store, kernel.Warehouse
	case Emergency:
		return nil
	default:
		return t.Validate()
	}

	if from != wantFrom || to != wantTo {
		return errs.NewValueIsInvalidErrorWithCause("locations are invalid",
			fmt.Errorf("%s requires %s -> %s, got %s -> %s", t, wantFrom, wantTo, from, to))
	}
	return nil
}

// Priority orders transfers for handling; higher values are more urgent.
type Priority int

const (
	UnknownPriority Priority = iota
	Low
	Normal
	High
	Urgent
)

func AllPriorities() []Priority {
	return []Priority{Low, Normal, High, Urgent}
}

func (p Priority) String() string {
	switch p {
	case Low:
		return "LOW"
	case Normal:
		return "NORMAL"
	case High:
		return "HIGH"
	case Urgent:
		return "URGENT"
	default:
		return "UNKNOWN"
	}
}

func (p Priority) Validate() error {
	if p < Low || p > Urgent {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

func ParsePriority(s string) (Priority, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, p := range AllPriorities() {
		if p.String() == want {
			return p, nil
		}
	}
	return UnknownPriority, errs.NewValueIsInvalidErrorWithCause("priority is invalid", fmt.Errorf("%q is not a valid priority", s))
}
