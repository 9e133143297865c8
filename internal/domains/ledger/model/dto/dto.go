package dto

import (
	"renthubber/internal/domains/ledger/model"
	"renthubber/shared"
	"renthubber/shared/constant"
	"renthubber/shared/timezone"
)

type TransactionResponse struct {
	ID          string  `json:"id"`
	Account     string  `json:"account"`
	Direction   string  `json:"direction"`
	AmountCents int64   `json:"amount_cents"`
	Type        string  `json:"type"`
	BookingID   *string `json:"booking_id,omitempty"`
	PayoutID    *string `json:"payout_id,omitempty"`
	ExternalRef *string `json:"external_ref,omitempty"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

func (r *TransactionResponse) FromModel(tx model.Transaction) {
	r.ID = tx.ID
	r.Account = string(tx.Account)
	r.Direction = string(tx.Direction)
	r.AmountCents = tx.AmountCents.Int64()
	r.Type = string(tx.Type)
	r.BookingID = tx.BookingID
	r.PayoutID = tx.PayoutID
	r.ExternalRef = tx.ExternalRef
	r.Description = tx.Description
	r.CreatedAt = timezone.Format(tx.CreatedAt, constant.DateFormat)
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.Transaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}
