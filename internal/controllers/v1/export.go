package v1

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneydash/backend/internal/httputil"
	"github.com/moneydash/backend/internal/models"
)

// RegisterExportRoutes registers the routes for exports with
// the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsExport)
	r.GET("", GetExport)
}

// ExportResponse contains all resources on this instance.
type ExportResponse struct {
	Accounts     json.RawMessage `json:"accounts"`
	Envelopes    json.RawMessage `json:"envelopes"`
	Transactions json.RawMessage `json:"transactions"`
	MatchRules   json.RawMessage `json:"matchRules"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export
// @Description	Returns all resources for backup purposes, including soft-deleted ones
// @Tags			Export
// @Produce		json
// @Success		200	{object}	ExportResponse
// @Failure		500	{object}	httpError
// @Router			/v1/export [get]
func GetExport(c *gin.Context) {
	accounts, err := models.Account{}.Export()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	envelopes, err := models.Envelope{}.Export()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transactions, err := models.Transaction{}.Export()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	matchRules, err := models.MatchRule{}.Export()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExportResponse{
		Accounts:     accounts,
		Envelopes:    envelopes,
		Transactions: transactions,
		MatchRules:   matchRules,
	})
}
