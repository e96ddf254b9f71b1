package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/speeti/speeti/internal/domain/errors"
	"github.com/speeti/speeti/internal/domain/model"
	"github.com/speeti/speeti/internal/server/http/dto"
)

// TrackingHandler serves the public order-tracking endpoint.
type TrackingHandler struct {
	facade TrackingFacade
}

// NewTrackingHandler constructs TrackingHandler.
func NewTrackingHandler(facade TrackingFacade) *TrackingHandler {
	return &TrackingHandler{facade: facade}
}

// Track handles GET /api/orders/track/:reference. Credentials are optional
// query parameters; without a matching token or email only a verification
// prompt is returned.
func (h *TrackingHandler) Track(c *gin.Context) {
	reference := c.Param("reference")
	creds := model.TrackingCredentials{
		Token: c.Query("token"),
		Email: c.Query("email"),
	}

	result, err := h.facade.Track(c.Request.Context(), reference, creds)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	if result.RequiresVerification {
		c.JSON(http.StatusOK, dto.VerificationResponse{
			OrderNumber:          result.OrderNumber,
			RequiresVerification: true,
			Message:              result.Message,
		})
		return
	}

	c.JSON(http.StatusOK, toTrackingResponse(result))
}

func toTrackingResponse(result *model.TrackingResult) dto.TrackingResponse {
	view := result.View

	items := make([]dto.TrackingItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, dto.TrackingItemResponse{
			Name:     item.Name,
			Image:    item.ImageURL,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		})
	}

	timeline := make([]dto.TimelineEntryResponse, 0, len(view.Timeline))
	for _, entry := range view.Timeline {
		timeline = append(timeline, dto.TimelineEntryResponse{
			Status:    string(entry.Status),
			Step:      entry.Step,
			Label:     entry.Label,
			Icon:      entry.Icon,
			Completed: entry.Completed,
			Current:   entry.Current,
		})
	}

	response := dto.TrackingResponse{
		Verified:    result.Verified,
		OrderNumber: view.OrderNumber,
		Status:      string(view.Status),
		StatusInfo: dto.StatusInfoResponse{
			Step:  view.StatusInfo.Step,
			Label: view.StatusInfo.Label,
			Icon:  view.StatusInfo.Icon,
		},
		Total:         view.Total,
		DeliveryFee:   view.DeliveryFee,
		CustomerName:  view.CustomerName,
		Items:         items,
		CreatedAt:     view.CreatedAt,
		ScheduledTime: view.ScheduledTime,
		Timeline:      timeline,
	}

	if view.Address != nil {
		response.Address = &dto.TrackingAddressResponse{
			Street:      view.Address.Street,
			HouseNumber: view.Address.HouseNumber,
			PLZ:         view.Address.PostalCode,
			City:        view.Address.City,
		}
	}

	return response
}
