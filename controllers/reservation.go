// controllers/reservation.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"natura-salon-backend/models"
	"natura-salon-backend/services"
	"natura-salon-backend/utils"
)

// CreateReservationInput accepts both the preferredDate/preferredTime and the
// shorter date/time field names. Required fields are checked by the service so
// that every missing field is reported at once.
type CreateReservationInput struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	PreferredDate string `json:"preferredDate"`
	Date          string `json:"date"`
	PreferredTime string `json:"preferredTime"`
	Time          string `json:"time"`
	Menu          string `json:"menu"`
	Notes         string `json:"notes"`
}

func (in CreateReservationInput) toServiceInput() services.ReservationInput {
	date := in.PreferredDate
	if date == "" {
		date = in.Date
	}
	clock := in.PreferredTime
	if clock == "" {
		clock = in.Time
	}
	return services.ReservationInput{
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		PreferredDate: date,
		PreferredTime: clock,
		Menu:          in.Menu,
		Notes:         in.Notes,
	}
}

type ReservationController struct {
	Service *services.ReservationService
	// ExposeDetails adds the storage error text to 500 responses.
	ExposeDetails bool
}

// CreateReservation books a slot.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reservation, err := rc.Service.Create(c.Request.Context(), input.toServiceInput())
	if err != nil {
		rc.respondServiceError(c, err, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Reservation created",
		"reservation": reservation,
	})
}

// GetReservations lists reservations, optionally for a single date.
func (rc *ReservationController) GetReservations(c *gin.Context) {
	reservations, err := rc.Service.List(c.Request.Context(), c.Query("date"))
	if err != nil {
		rc.respondServiceError(c, err, "Failed to retrieve reservations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"total":        len(reservations),
	})
}

// GetReservation retrieves a specific reservation by ID
func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	reservation, err := rc.Service.Get(c.Request.Context(), id)
	if err != nil {
		rc.respondServiceError(c, err, "Failed to retrieve reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation cancels a reservation and frees its slot.
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	if err := rc.Service.Delete(c.Request.Context(), id); err != nil {
		rc.respondServiceError(c, err, "Failed to cancel reservation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reservation cancelled"})
}

func reservationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return 0, false
	}
	return uint(id), true
}

func (rc *ReservationController) respondServiceError(c *gin.Context, err error, storageMessage string) {
	var (
		validationErr *services.ValidationError
		conflictErr   *services.ConflictError
		storageErr    *services.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.RespondWithValidationErrors(c, http.StatusBadRequest, "Invalid input", validationErr.Fields)
	case errors.As(err, &conflictErr):
		utils.RespondWithDetails(c, http.StatusConflict, "This time slot is already reserved", models.Slot{
			Date: conflictErr.Slot.Date,
			Time: conflictErr.Slot.Time,
		})
	case errors.Is(err, services.ErrReservationNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
	case errors.As(err, &storageErr):
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(storageMessage)
		var details interface{}
		if rc.ExposeDetails {
			details = storageErr.Err.Error()
		}
		utils.RespondWithDetails(c, http.StatusInternalServerError, storageMessage, details)
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(storageMessage)
		utils.RespondWithError(c, http.StatusInternalServerError, storageMessage)
	}
}
