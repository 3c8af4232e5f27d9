package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bridal-studio-backend/services"
	"bridal-studio-backend/utils"
)

var (
	bridge    *services.SyncBridge
	reminders *services.ReminderService
)

// Setup wires the handlers to their services. Called once from main.
func Setup(b *services.SyncBridge, r *services.ReminderService) {
	bridge = b
	reminders = r
}

// identity returns the authenticated user's email for createdBy/updatedBy.
func identity(c *gin.Context) string {
	if email := c.GetString("email"); email != "" {
		return email
	}
	return "system"
}

// amountString normalizes an amount that arrives as either a JSON number or
// a string, depending on the client form.
func amountString(v interface{}) string {
	switch n := v.(type) {
	case string:
		return strings.TrimSpace(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case json.Number:
		return n.String()
	default:
		return ""
	}
}

// respondSyncError maps bridge errors to the response envelope. A mirror
// failure reports partial success: the database committed, the spreadsheet
// did not.
func respondSyncError(c *gin.Context, err error, extra gin.H) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		utils.RespondWithError(c, http.StatusBadRequest, ve.Error())
		return
	}
	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		utils.RespondWithError(c, http.StatusNotFound, nf.Error())
		return
	}
	var mw *services.MirrorWriteError
	if errors.As(err, &mw) {
		resp := gin.H{"success": false, "error": mw.Error(), "savedToDatabase": true}
		for k, v := range extra {
			resp[k] = v
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
}
