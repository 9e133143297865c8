// Package stripe adapts the Stripe Connect API to the money movements the
// settlement and payout flows need. Every call that moves money carries an
// idempotency key derived from the entity it settles, so a replay after an
// unknown outcome never moves money twice.
package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"errors"
	"net/http"
	"renthubber/config"
	"renthubber/infras/metrics"
	"renthubber/infras/otel"
	"renthubber/shared/constant"
	"renthubber/shared/failure"
	"renthubber/shared/money"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

const (
	defaultTimeout        = 30 * time.Second
	accountTypeExpress    = "express"
	accountLinkOnboarding = "account_onboarding"
	metadataEntityID      = "entity_id"
)

type Account struct {
	ID             string
	ChargesEnabled bool
	PayoutsEnabled bool
}

// Ready reports whether the account can receive transfers and pay out.
func (a Account) Ready() bool {
	return a.ChargesEnabled && a.PayoutsEnabled
}

type OnboardingLink struct {
	URL       string
	ExpiresAt time.Time
}

type TransferRequest struct {
	IdempotencyKey string
	Destination    string
	Amount         money.Cents
	EntityID       string
}

type PayoutRequest struct {
	IdempotencyKey string
	Account        string
	Amount         money.Cents
	EntityID       string
}

type RefundRequest struct {
	IdempotencyKey  string
	PaymentIntentID string
	Amount          money.Cents
	EntityID        string
}

// Processor returns *failure.Failure errors with ReasonExternalProcessor.
// failure.OutcomeUnknown tells whether the processor may still have applied
// the request.
type Processor interface {
	CreateConnectedAccount(ctx context.Context, userID, email string) (string, error)
	CreateOnboardingLink(ctx context.Context, accountID string) (OnboardingLink, error)
	GetAccount(ctx context.Context, accountID string) (Account, error)
	Transfer(ctx context.Context, req TransferRequest) (string, error)
	Payout(ctx context.Context, req PayoutRequest) (string, error)
	Refund(ctx context.Context, req RefundRequest) (string, error)
}

type processorImpl struct {
	api      *client.API
	otel     otel.Otel
	currency string
	country  string
	refresh  string
	ret      string
}

func New(cfg *config.Config, otl otel.Otel) Processor {
	timeout := defaultTimeout
	if cfg.Payment.RequestTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Payment.RequestTimeoutSeconds) * time.Second
	}

	api := client.New(cfg.Payment.SecretKey, stripeGo.NewBackends(&http.Client{Timeout: timeout}))

	return &processorImpl{
		api:      api,
		otel:     otl,
		currency: strings.ToLower(cfg.Payment.Currency),
		country:  cfg.Payment.Country,
		refresh:  cfg.Payment.OnboardingRefreshURL,
		ret:      cfg.Payment.OnboardingReturnURL,
	}
}

func (p *processorImpl) CreateConnectedAccount(ctx context.Context, userID, email string) (id string, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".CreateConnectedAccount")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := &stripeGo.AccountParams{
		Type:    stripeGo.String(accountTypeExpress),
		Country: stripeGo.String(p.country),
		Email:   stripeGo.String(email),
		Capabilities: &stripeGo.AccountCapabilitiesParams{
			CardPayments: &stripeGo.AccountCapabilitiesCardPaymentsParams{Requested: stripeGo.Bool(true)},
			Transfers:    &stripeGo.AccountCapabilitiesTransfersParams{Requested: stripeGo.Bool(true)},
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey("account-" + userID)
	params.AddMetadata("user_id", userID)

	timer := metrics.ProcessorTimer("account_create")
	account, err := p.api.Accounts.New(params)
	timer.ObserveDuration()

	if err != nil {
		return "", classify(err, "create connected account")
	}

	return account.ID, nil
}

func (p *processorImpl) CreateOnboardingLink(ctx context.Context, accountID string) (link OnboardingLink, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".CreateOnboardingLink")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := &stripeGo.AccountLinkParams{
		Account:    stripeGo.String(accountID),
		RefreshURL: stripeGo.String(p.refresh),
		ReturnURL:  stripeGo.String(p.ret),
		Type:       stripeGo.String(accountLinkOnboarding),
	}
	params.Context = ctx

	timer := metrics.ProcessorTimer("account_link_create")
	accountLink, err := p.api.AccountLinks.New(params)
	timer.ObserveDuration()

	if err != nil {
		return OnboardingLink{}, classify(err, "create onboarding link")
	}

	return OnboardingLink{
		URL:       accountLink.URL,
		ExpiresAt: time.Unix(accountLink.ExpiresAt, 0),
	}, nil
}

func (p *processorImpl) GetAccount(ctx context.Context, accountID string) (acc Account, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".GetAccount")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := &stripeGo.AccountParams{}
	params.Context = ctx

	timer := metrics.ProcessorTimer("account_get")
	account, err := p.api.Accounts.GetByID(accountID, params)
	timer.ObserveDuration()

	if err != nil {
		return Account{}, classify(err, "get account")
	}

	return Account{
		ID:             account.ID,
		ChargesEnabled: account.ChargesEnabled,
		PayoutsEnabled: account.PayoutsEnabled,
	}, nil
}

func (p *processorImpl) Transfer(ctx context.Context, req TransferRequest) (id string, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".Transfer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"idempotency_key": req.IdempotencyKey, "amount_cents": req.Amount.Int64()})

	params := &stripeGo.TransferParams{
		Amount:        stripeGo.Int64(req.Amount.Int64()),
		Currency:      stripeGo.String(p.currency),
		Destination:   stripeGo.String(req.Destination),
		TransferGroup: stripeGo.String(req.EntityID),
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.IdempotencyKey)
	params.AddMetadata(metadataEntityID, req.EntityID)

	timer := metrics.ProcessorTimer("transfer_create")
	transfer, err := p.api.Transfers.New(params)
	timer.ObserveDuration()

	if err != nil {
		return "", classify(err, "create transfer")
	}

	log.Info().Str("transfer_id", transfer.ID).Str("entity_id", req.EntityID).Int64("amount_cents", req.Amount.Int64()).Msg("transfer created")

	return transfer.ID, nil
}

func (p *processorImpl) Payout(ctx context.Context, req PayoutRequest) (id string, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".Payout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"idempotency_key": req.IdempotencyKey, "amount_cents": req.Amount.Int64()})

	params := &stripeGo.PayoutParams{
		Amount:   stripeGo.Int64(req.Amount.Int64()),
		Currency: stripeGo.String(p.currency),
	}
	params.Context = ctx
	params.SetStripeAccount(req.Account)
	params.SetIdempotencyKey(req.IdempotencyKey)
	params.AddMetadata(metadataEntityID, req.EntityID)

	timer := metrics.ProcessorTimer("payout_create")
	payout, err := p.api.Payouts.New(params)
	timer.ObserveDuration()

	if err != nil {
		return "", classify(err, "create payout")
	}

	log.Info().Str("stripe_payout_id", payout.ID).Str("entity_id", req.EntityID).Int64("amount_cents", req.Amount.Int64()).Msg("payout created")

	return payout.ID, nil
}

func (p *processorImpl) Refund(ctx context.Context, req RefundRequest) (id string, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".Refund")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"idempotency_key": req.IdempotencyKey, "amount_cents": req.Amount.Int64()})

	params := &stripeGo.RefundParams{
		PaymentIntent: stripeGo.String(req.PaymentIntentID),
		Amount:        stripeGo.Int64(req.Amount.Int64()),
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.IdempotencyKey)
	params.AddMetadata(metadataEntityID, req.EntityID)

	timer := metrics.ProcessorTimer("refund_create")
	refund, err := p.api.Refunds.New(params)
	timer.ObserveDuration()

	if err != nil {
		return "", classify(err, "create refund")
	}

	log.Info().Str("refund_id", refund.ID).Str("entity_id", req.EntityID).Int64("amount_cents", req.Amount.Int64()).Msg("refund created")

	return refund.ID, nil
}

// classify wraps err as an ExternalProcessor failure. A Stripe API error with
// a 4xx status is a definite rejection; anything else (timeouts, dropped
// connections, 5xx) may have been applied on Stripe's side.
func classify(err error, op string) error {
	var stripeErr *stripeGo.Error
	if errors.As(err, &stripeErr) {
		unknown := stripeErr.HTTPStatusCode >= http.StatusInternalServerError || stripeErr.HTTPStatusCode == 0

		log.Warn().
			Err(err).
			Str("op", op).
			Str("code", string(stripeErr.Code)).
			Int("status", stripeErr.HTTPStatusCode).
			Bool("outcome_unknown", unknown).
			Msg("payment processor returned an error")

		return failure.ExternalProcessor(err, unknown)
	}

	log.Error().Err(err).Str("op", op).Msg("payment processor call did not complete")

	return failure.ExternalProcessor(err, true)
}
