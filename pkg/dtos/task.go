package dtos

import (
	"bytes"
	"encoding/json"
	"time"
)

type DTOForTaskCreate struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status" binding:"required,taskstatus"`
	Priority    string `json:"priority" binding:"omitempty,taskpriority"`
	DueDate     *Date  `json:"dueDate"`
}

// DTO for partial task updates; nil fields are left untouched. An explicit null dueDate
// clears it.
type DTOForTaskUpdate struct {
	Title       *string      `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string      `json:"description" binding:"omitempty,min=1"`
	Status      *string      `json:"status" binding:"omitempty,taskstatus"`
	Priority    *string      `json:"priority" binding:"omitempty,taskpriority"`
	DueDate     OptionalDate `json:"dueDate" swaggertype:"string" example:"2030-05-17"`
}

type TaskIDParamDTO struct {
	ID string `uri:"id" binding:"required"`
}

type TaskStatusParamDTO struct {
	ID     string `uri:"id" binding:"required"`
	Status string `uri:"status" binding:"required,taskstatus"`
}

type TaskListParamDTO struct {
	Status string `uri:"status" binding:"required"`
}

type TaskListQueryDTO struct {
	Sort string `form:"sort"`
}

// StatusCount is one row of the per-status aggregate.
type StatusCount struct {
	Status string `json:"_id" gorm:"column:status"`
	Count  int64  `json:"count" gorm:"column:count"`
}

// Date accepts either a calendar date ("2006-01-02") or an RFC 3339 timestamp.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Ptr returns the wrapped time, or nil for a nil Date.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// OptionalDate records whether a date field was present at all, and whether it was null.
type OptionalDate struct {
	Set  bool
	Date *Date
}

func (o *OptionalDate) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.Date = nil
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var d Date
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	o.Date = &d
	return nil
}

// SetDate is an OptionalDate holding d, or an explicit null when d is nil.
func SetDate(d *Date) OptionalDate {
	return OptionalDate{Set: true, Date: d}
}
