package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"renthubber/infras/otel"
	bookingModel "renthubber/internal/domains/booking/model"
	bookingRepo "renthubber/internal/domains/booking/repository"
	"renthubber/internal/domains/dispute/model"
	"renthubber/internal/domains/dispute/model/dto"
	"renthubber/internal/domains/dispute/repository"
	"renthubber/shared"
	"renthubber/shared/constant"
	"renthubber/shared/failure"
	gModel "renthubber/shared/model"
	"renthubber/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Dispute interface {
	// Open files a dispute by one side of a booking against the other.
	Open(ctx context.Context, req dto.OpenDisputeRequest) (dto.DisputeResponse, error)
	Resolve(ctx context.Context, id string, req dto.ResolveDisputeRequest) (dto.DisputeResponse, error)
	CountOpenAgainst(ctx context.Context, userID string) (int, error)
}

type serviceImpl struct {
	repo        repository.Dispute
	bookingRepo bookingRepo.Booking
	otel        otel.Otel
}

func New(repo repository.Dispute, bookingRepo bookingRepo.Booking, otel otel.Otel) Dispute {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Open(ctx context.Context, req dto.OpenDisputeRequest) (res dto.DisputeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dispute.Open")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.Actor(ctx)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if _, ok := booking.PartyOf(userID); !ok {
		return res, failure.ResourceRestrictedError
	}

	open, err := s.repo.Exist(ctx, shared.FilterByFields(model.TableName, map[string]any{
		model.FieldBookingID: booking.ID,
		model.FieldStatus:    model.StatusOpen,
	}))
	if err != nil {
		return res, fmt.Errorf("failed to check open disputes: %w", err)
	}

	if open {
		return res, failure.Conflict("booking already has an open dispute") //nolint:wrapcheck
	}

	dispute := model.Dispute{
		ID:            uuid.NewString(),
		BookingID:     booking.ID,
		OpenedBy:      userID,
		AgainstUserID: booking.Counterparty(userID),
		Status:        model.StatusOpen,
		Reason:        req.Reason,
		Metadata:      gModel.NewMetadata(userID, timezone.Now()),
	}

	if err = s.repo.Insert(ctx, dispute); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to open dispute")

		return res, fmt.Errorf("failed to open dispute: %w", err)
	}

	log.Info().Str("dispute_id", dispute.ID).Str("against_user_id", dispute.AgainstUserID).Msg("dispute opened")

	res.FromModel(dispute)

	return res, nil
}

func (s *serviceImpl) Resolve(ctx context.Context, id string, req dto.ResolveDisputeRequest) (res dto.DisputeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dispute.Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, _ := shared.Actor(ctx)

	dispute, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get dispute: %w", err)
	}

	if dispute.ID == "" {
		return res, failure.NotFound("dispute not found") //nolint:wrapcheck
	}

	now := timezone.Now()

	affected, err := s.repo.ConditionalUpdate(ctx, map[string]any{
		model.FieldStatus:        model.StatusResolved,
		model.FieldResolution:    req.Resolution,
		model.FieldResolvedAt:    now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: admin,
	}, shared.FilterByFields(model.TableName, map[string]any{
		model.FieldID:     id,
		model.FieldStatus: model.StatusOpen,
	}))
	if err != nil {
		log.Error().Err(err).Str("dispute_id", id).Msg("failed to resolve dispute")

		return res, fmt.Errorf("failed to resolve dispute: %w", err)
	}

	if affected == 0 {
		return res, failure.InvalidState("dispute is already resolved") //nolint:wrapcheck
	}

	dispute.Status = model.StatusResolved
	dispute.Resolution = &req.Resolution
	dispute.ResolvedAt = &now
	dispute.ModifiedAt = now
	dispute.ModifiedBy = admin

	res.FromModel(dispute)

	return res, nil
}

func (s *serviceImpl) CountOpenAgainst(ctx context.Context, userID string) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dispute.CountOpenAgainst")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	count, err = s.repo.Count(ctx, shared.FilterByFields(model.TableName, map[string]any{
		model.FieldAgainstUserID: userID,
		model.FieldStatus:        model.StatusOpen,
	}))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to count open disputes")

		return 0, fmt.Errorf("failed to count open disputes: %w", err)
	}

	return count, nil
}
