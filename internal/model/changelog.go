package model

import (
	"fmt"
	"time"
)

// ChangeType classifies a change-log entry.
type ChangeType string

const (
	ChangeTypeCreate ChangeType = "CREATE"
	ChangeTypeUpdate ChangeType = "UPDATE"
	ChangeTypeDelete ChangeType = "DELETE"
)

// Validate reports whether the change type is one of the known values.
func (t ChangeType) Validate() error {
	switch t {
	case ChangeTypeCreate, ChangeTypeUpdate, ChangeTypeDelete:
		return nil
	}
	return fmt.Errorf("unknown change type: %q", t)
}

// ChangeLogEntry records one change applied to a product. Entries are
// append-only and immutable; the product fields are snapshots taken at
// change time. ChangedField/OldValue/NewValue are populated only for
// field-level UPDATE entries.
type ChangeLogEntry struct {
	ChangeLogID  int64      `json:"changeLogId"`
	ProductID    int64      `json:"productId"`
	ProductCode  string     `json:"productCode"`
	ProductName  string     `json:"productName"`
	ChangeType   ChangeType `json:"changeType"`
	ChangedField string     `json:"changedField,omitempty"`
	OldValue     string     `json:"oldValue,omitempty"`
	NewValue     string     `json:"newValue,omitempty"`
	ChangedBy    string     `json:"changedBy,omitempty"`
	ChangedDate  time.Time  `json:"changedDate"`
}

// ChangeLogSearchCondition filters change-log listings. Zero-valued fields
// are not sent.
type ChangeLogSearchCondition struct {
	ProductID  *int64
	ChangeType *ChangeType
	StartDate  *time.Time
	EndDate    *time.Time
}

// IsZero reports whether no filter field is set.
func (c ChangeLogSearchCondition) IsZero() bool {
	return c.ProductID == nil && c.ChangeType == nil &&
		c.StartDate == nil && c.EndDate == nil
}
