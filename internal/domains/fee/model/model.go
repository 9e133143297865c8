package model

import (
	"renthubber/shared/model"
	"renthubber/shared/money"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "user_fee_overrides"
	EntityName = "fee override"

	FieldID                       = "id"
	FieldUserID                   = "user_id"
	FieldStatus                   = "status"
	FieldPriority                 = "priority"
	FieldMaxTransactionAmount     = "max_transaction_amount"
	FieldCurrentTransactionAmount = "current_transaction_amount"
	FieldCreatedAt                = "created_at"
)

type Role string

const (
	RoleRenter Role = "renter"
	RoleHubber Role = "hubber"
)

func (r Role) Valid() bool {
	return r == RoleRenter || r == RoleHubber
}

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusExhausted Status = "exhausted"
	StatusRevoked   Status = "revoked"
)

// Override is a time-boxed exception to the platform commission for one user.
type Override struct {
	ID                       string              `db:"id"`
	UserID                   string              `db:"user_id"`
	FeesDisabled             bool                `db:"fees_disabled"`
	CustomRenterFee          decimal.NullDecimal `db:"custom_renter_fee"`
	CustomHubberFee          decimal.NullDecimal `db:"custom_hubber_fee"`
	ValidFrom                time.Time           `db:"valid_from"`
	ValidUntil               time.Time           `db:"valid_until"`
	MaxTransactionAmount     *money.Cents        `db:"max_transaction_amount"`
	CurrentTransactionAmount money.Cents         `db:"current_transaction_amount"`
	Priority                 int                 `db:"priority"`
	Status                   Status              `db:"status"`
	Reason                   string              `db:"reason"`
	model.Metadata
}

// Exhausted reports whether the usage cap, when set, has been reached.
func (o Override) Exhausted() bool {
	return o.MaxTransactionAmount != nil && o.CurrentTransactionAmount >= *o.MaxTransactionAmount
}

// Usable reports whether o may be applied at now. Window bounds are inclusive.
func (o Override) Usable(now time.Time) bool {
	if o.Status != StatusActive {
		return false
	}

	if now.Before(o.ValidFrom) || now.After(o.ValidUntil) {
		return false
	}

	return !o.Exhausted()
}

// CustomFee returns the custom percentage for role, if one is set.
func (o Override) CustomFee(role Role) decimal.NullDecimal {
	if role == RoleHubber {
		return o.CustomHubberFee
	}

	return o.CustomRenterFee
}

// Select picks the override that applies at now: the highest priority among
// usable ones, ties going to the most recently created. Overrides never stack.
func Select(overrides []Override, now time.Time) (Override, bool) {
	usable := make([]Override, 0, len(overrides))

	for _, o := range overrides {
		if o.Usable(now) {
			usable = append(usable, o)
		}
	}

	if len(usable) == 0 {
		return Override{}, false
	}

	slices.SortStableFunc(usable, func(a, b Override) int {
		if a.Priority != b.Priority {
			return b.Priority - a.Priority
		}

		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return usable[0], true
}

// Resolution is the commission that applies to one user acting in one role.
type Resolution struct {
	Role       Role
	Percent    decimal.Decimal
	FeesWaived bool
	OverrideID string
}

// Resolve applies the selected override, if any, on top of the platform default.
// A disabled-fees override wins over any custom percentage on the same record.
func Resolve(overrides []Override, role Role, defaultPercent decimal.Decimal, now time.Time) Resolution {
	res := Resolution{Role: role, Percent: defaultPercent}

	override, ok := Select(overrides, now)
	if !ok {
		return res
	}

	res.OverrideID = override.ID

	switch custom := override.CustomFee(role); {
	case override.FeesDisabled:
		res.Percent = decimal.Zero
		res.FeesWaived = true
	case custom.Valid:
		res.Percent = custom.Decimal
	}

	return res
}

// Quote is the fee breakdown for a base rental price.
type Quote struct {
	BasePrice        money.Cents
	RenterServiceFee money.Cents
	PlatformFee      money.Cents
	HubberCommission money.Cents
	HubberNet        money.Cents
	Renter           Resolution
	Hubber           Resolution
}
