package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the integer wire encoding of an order's lifecycle state.
type Status int

// Order status codes as sent on the wire. StatusUnrecognized is what ToCode
// returns for a symbol it does not know.
const (
	StatusUnrecognized Status = 0
	StatusCreated      Status = 1
	StatusCompleted    Status = 2
	StatusCancelled    Status = 3
	// StatusOther is accepted by the backend but has no symbol on the client.
	StatusOther Status = 4
)

// Status symbols shown in the status field.
const (
	SymbolCreated   = "created"
	SymbolCompleted = "completed"
	SymbolCancelled = "cancelled"
	SymbolUnknown   = "unknown"
)

// ToCode maps a status symbol to its wire code. Anything unrecognized maps to
// 0, which ToSymbol renders as "unknown", so the round trip is lossy.
func ToCode(symbol string) Status {
	switch symbol {
	case SymbolCreated:
		return StatusCreated
	case SymbolCompleted:
		return StatusCompleted
	case SymbolCancelled:
		return StatusCancelled
	}
	return StatusUnrecognized
}

// ToSymbol maps a wire code to its display symbol.
func ToSymbol(code Status) string {
	switch code {
	case StatusCreated:
		return SymbolCreated
	case StatusCompleted:
		return SymbolCompleted
	case StatusCancelled:
		return SymbolCancelled
	}
	return SymbolUnknown
}

func (s Status) String() string {
	return ToSymbol(s)
}

// Valid reports whether the backend accepts s on an order.
func (s Status) Valid() bool {
	return s >= StatusCreated && s <= StatusOther
}

// ParseStatus accepts either a symbol ("completed") or a decimal code ("2").
func ParseStatus(v string) (Status, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return StatusUnrecognized, fmt.Errorf("status is empty")
	}
	if n, err := strconv.Atoi(v); err == nil {
		return Status(n), nil
	}
	code := ToCode(strings.ToLower(v))
	if code == StatusUnrecognized {
		return code, fmt.Errorf("unrecognized status %q", v)
	}
	return code, nil
}
