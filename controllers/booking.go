package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bridal-studio-backend/services"
	"bridal-studio-backend/utils"
)

// AddBookingInput defines the expected JSON structure for creating a booking
type AddBookingInput struct {
	Name          string      `json:"name" binding:"required"`
	Phone         string      `json:"phone"`
	Service       string      `json:"service" binding:"required"`
	Date          string      `json:"date" binding:"required"`
	Time          string      `json:"time"`
	Notes         string      `json:"notes"`
	AdvancePaid   bool        `json:"advancePaid"`
	AdvanceAmount interface{} `json:"advanceAmount"`
}

// UpdateBookingInput carries {id, data}; rowIndex inside data is optional and
// resolved from the stored record when absent.
type UpdateBookingInput struct {
	ID   string `json:"id" binding:"required"`
	Data struct {
		Name          *string `json:"name"`
		Phone         *string `json:"phone"`
		Service       *string `json:"service"`
		Date          *string `json:"date"`
		Time          *string `json:"time"`
		Notes         *string `json:"notes"`
		AdvancePaid   *bool   `json:"advancePaid"`
		AdvanceAmount *string `json:"advanceAmount"`
		RowIndex      *int    `json:"rowIndex"`
	} `json:"data"`
}

// DeleteBookingInput identifies the booking to delete.
type DeleteBookingInput struct {
	ID string `json:"id" binding:"required"`
}

// AddBooking creates the booking in the database and appends its mirror row.
func AddBooking(c *gin.Context) {
	var input AddBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bridge.CreateBooking(c.Request.Context(), services.BookingInput{
		Name:          input.Name,
		Phone:         input.Phone,
		Service:       input.Service,
		Date:          input.Date,
		Time:          input.Time,
		Notes:         input.Notes,
		AdvancePaid:   input.AdvancePaid,
		AdvanceAmount: amountString(input.AdvanceAmount),
		CreatedBy:     identity(c),
	})
	if err != nil {
		extra := gin.H{}
		if booking != nil {
			extra["id"] = booking.ID
		}
		respondSyncError(c, err, extra)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"id":       booking.ID,
		"rowIndex": booking.SheetRowIndex,
	})
}

// GetBookings lists all bookings, newest first.
func GetBookings(c *gin.Context) {
	bookings, err := bridge.ListBookings(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// UpdateBooking updates the booking and its mirror row.
func UpdateBooking(c *gin.Context) {
	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bridge.UpdateBooking(c.Request.Context(), input.ID, services.BookingPatch{
		Name:          input.Data.Name,
		Phone:         input.Data.Phone,
		Service:       input.Data.Service,
		Date:          input.Data.Date,
		Time:          input.Data.Time,
		Notes:         input.Data.Notes,
		AdvancePaid:   input.Data.AdvancePaid,
		AdvanceAmount: input.Data.AdvanceAmount,
		RowIndex:      input.Data.RowIndex,
	})
	if err != nil {
		extra := gin.H{}
		if booking != nil {
			extra["id"] = booking.ID
		}
		respondSyncError(c, err, extra)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

// DeleteBooking removes the booking and its mirror row.
func DeleteBooking(c *gin.Context) {
	var input DeleteBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := bridge.DeleteBooking(c.Request.Context(), input.ID); err != nil {
		respondSyncError(c, err, gin.H{"id": input.ID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
