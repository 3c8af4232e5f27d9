package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bridal-studio-backend/config"
	"bridal-studio-backend/models"
	"bridal-studio-backend/utils"
)

type AnalyticsOverview struct {
	TotalVisits    int                `json:"totalVisits"`
	TotalRevenue   float64            `json:"totalRevenue"`
	PaymentModes   map[string]float64 `json:"paymentModes"`
	MonthlyRevenue map[string]float64 `json:"monthlyRevenue"`
	MonthlyVisits  map[string]int     `json:"monthlyVisits"`
}

// GetAnalytics aggregates revenue over all visit records. Stored amounts that
// no longer parse are counted as zero rather than failing the report.
func GetAnalytics(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.WithContext(c.Request.Context()).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve records")
		return
	}

	overview := AnalyticsOverview{
		PaymentModes:   map[string]float64{},
		MonthlyRevenue: map[string]float64{},
		MonthlyVisits:  map[string]int{},
	}

	for _, customer := range customers {
		amount := utils.ParseAmountOrZero(customer.Amount)
		month := customer.CreatedAt.Format("2006-01")

		overview.TotalVisits++
		overview.TotalRevenue += amount
		overview.PaymentModes[customer.PaymentMode] += amount
		overview.MonthlyRevenue[month] += amount
		overview.MonthlyVisits[month]++
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "analytics": overview})
}
