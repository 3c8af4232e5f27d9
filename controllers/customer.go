package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bridal-studio-backend/services"
	"bridal-studio-backend/utils"
)

// AddCustomerInput defines the expected JSON structure for creating a customer
type AddCustomerInput struct {
	Name        string      `json:"name" binding:"required"`
	Phone       string      `json:"phone"`
	Services    []string    `json:"services" binding:"required"`
	Amount      interface{} `json:"amount" binding:"required"`
	PaymentMode string      `json:"paymentMode" binding:"required,oneof=cash upi"`
}

// UpdateCustomerInput carries the update payload: the record id, the
// last-known mirror row index, and the fields to change.
type UpdateCustomerInput struct {
	CustomerID   string `json:"customerId" binding:"required"`
	RowIndex     *int   `json:"rowIndex"`
	CustomerData struct {
		Name        *string     `json:"name"`
		Phone       *string     `json:"phone"`
		Services    []string    `json:"services"`
		Amount      interface{} `json:"amount"`
		PaymentMode *string     `json:"paymentMode"`
	} `json:"customerData"`
}

// DeleteCustomerInput identifies the record to delete.
type DeleteCustomerInput struct {
	CustomerID string `json:"customerId" binding:"required"`
}

// AddCustomer creates the record in the database and appends its mirror row.
func AddCustomer(c *gin.Context) {
	var input AddCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer, err := bridge.CreateCustomer(c.Request.Context(), services.CustomerInput{
		Name:        input.Name,
		Phone:       input.Phone,
		Services:    input.Services,
		Amount:      amountString(input.Amount),
		PaymentMode: input.PaymentMode,
		CreatedBy:   identity(c),
	})
	if err != nil {
		extra := gin.H{}
		if customer != nil {
			extra["id"] = customer.ID
		}
		respondSyncError(c, err, extra)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"id":       customer.ID,
		"rowIndex": customer.SheetRowIndex,
	})
}

// GetCustomers lists all records, newest first.
func GetCustomers(c *gin.Context) {
	customers, err := bridge.ListCustomers(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "customers": customers})
}

// UpdateCustomer updates the record, then the mirror row at its last-known
// index (the supplied rowIndex, else the stored one).
func UpdateCustomer(c *gin.Context) {
	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	patch := services.CustomerPatch{
		Name:        input.CustomerData.Name,
		Phone:       input.CustomerData.Phone,
		Services:    input.CustomerData.Services,
		PaymentMode: input.CustomerData.PaymentMode,
		RowIndex:    input.RowIndex,
		UpdatedBy:   identity(c),
	}
	if input.CustomerData.Amount != nil {
		amount := amountString(input.CustomerData.Amount)
		patch.Amount = &amount
	}

	customer, err := bridge.UpdateCustomer(c.Request.Context(), input.CustomerID, patch)
	if err != nil {
		extra := gin.H{}
		if customer != nil {
			extra["id"] = customer.ID
		}
		respondSyncError(c, err, extra)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "customer": customer})
}

// DeleteCustomer removes the record and its mirror row.
func DeleteCustomer(c *gin.Context) {
	var input DeleteCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := bridge.DeleteCustomer(c.Request.Context(), input.CustomerID); err != nil {
		respondSyncError(c, err, gin.H{"id": input.CustomerID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
