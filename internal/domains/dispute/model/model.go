package model

import (
	"renthubber/shared/model"
	"time"
)

const (
	TableName  = "disputes"
	EntityName = "dispute"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldAgainstUserID = "against_user_id"
	FieldStatus        = "status"
	FieldResolution    = "resolution"
	FieldResolvedAt    = "resolved_at"
)

type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

type Dispute struct {
	ID            string     `db:"id"`
	BookingID     string     `db:"booking_id"`
	OpenedBy      string     `db:"opened_by"`
	AgainstUserID string     `db:"against_user_id"`
	Status        Status     `db:"status"`
	Reason        string     `db:"reason"`
	Resolution    *string    `db:"resolution"`
	ResolvedAt    *time.Time `db:"resolved_at"`
	model.Metadata
}
