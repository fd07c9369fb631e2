package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/trips"
)

const (
	msgTripNotFound      = "Trip not found"
	msgExpenseNotFound   = "Expense not found"
	msgItineraryNotFound = "Itinerary day not found"
	msgImageNotFound     = "Image not found"
	msgCommentNotFound   = "Comment not found"
	msgUserNotFound      = "User not found"
	msgBadReference      = "Referenced record does not exist."
	msgDuplicate         = "Duplicate entry. This record already exists."
	msgNoImage           = "No image file provided"
)

// ownedTrip loads trip tripID if it belongs to userID.
func ownedTrip(ctx context.Context, repo trips.Repository, tripID, userID int64) (*models.Trip, error) {
	t, err := repo.GetForUser(ctx, tripID, userID)
	if err != nil {
		return nil, notFoundAs(err, msgTripNotFound)
	}
	return t, nil
}

// notFoundAs replaces a bare common.ErrorNotFound with a client error
// carrying msg. Other errors pass through mapStoreError.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.NotFound(msg)
	}
	return mapStoreError(err)
}

// mapStoreError gives constraint violations a client-facing message.
func mapStoreError(err error) error {
	var ce *common.ClientError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ce):
		return err
	case errors.Is(err, common.ErrorInvalidReference):
		return &common.ClientError{Err: common.ErrorInvalidReference, Message: msgBadReference}
	case errors.Is(err, common.ErrorAlreadyExists):
		return common.Conflict(msgDuplicate)
	default:
		return err
	}
}

func validateDates(start, end models.Date) error {
	if !end.After(start.Time) {
		return common.NewValidationError("end_date", "End date must be after start date")
	}
	return nil
}
