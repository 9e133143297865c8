package dto

import (
	"renthubber/internal/domains/dispute/model"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/timezone"
)

type OpenDisputeRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Reason    string `json:"reason"     validate:"required,max=1000"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" validate:"required,max=1000"`
}

type DisputeResponse struct {
	ID            string  `json:"id"`
	BookingID     string  `json:"booking_id"`
	OpenedBy      string  `json:"opened_by"`
	AgainstUserID string  `json:"against_user_id"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason"`
	Resolution    *string `json:"resolution,omitempty"`
	ResolvedAt    *string `json:"resolved_at,omitempty"`
	gDto.Metadata
}

func (r *DisputeResponse) FromModel(d model.Dispute) {
	r.ID = d.ID
	r.BookingID = d.BookingID
	r.OpenedBy = d.OpenedBy
	r.AgainstUserID = d.AgainstUserID
	r.Status = string(d.Status)
	r.Reason = d.Reason
	r.Resolution = d.Resolution
	r.Metadata.FromModel(d.Metadata)

	if d.ResolvedAt != nil {
		resolved := timezone.Format(*d.ResolvedAt, constant.DateFormat)
		r.ResolvedAt = &resolved
	}
}
