package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneydash/backend/internal/httputil"
	"github.com/moneydash/backend/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)
}

// EnvelopeSummary is the dashboard view of one envelope.
//
// Remaining is computed from the stored allocated and spent amounts.
// Incoming and Outgoing are aggregated from the envelope's transactions at
// read time and never written back to the envelope.
type EnvelopeSummary struct {
	Envelope  models.Envelope `json:"envelope"`
	Remaining decimal.Decimal `json:"remaining" example:"379.5"`
	Incoming  decimal.Decimal `json:"incoming" example:"500"`
	Outgoing  decimal.Decimal `json:"outgoing" example:"120.5"`
}

// AccountSummary is the dashboard view of one account.
type AccountSummary struct {
	Account   models.Account    `json:"account"`
	Envelopes []EnvelopeSummary `json:"envelopes"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Dashboard
// @Description	Returns all active accounts with their envelope aggregates
// @Tags			Dashboard
// @Produce		json
// @Success		200	{array}		AccountSummary
// @Failure		500	{object}	httpError
// @Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	var accounts []models.Account
	err := models.DB.Where("archived = ?", false).Find(&accounts).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	summaries := make([]AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		activity, err := account.Activity(models.DB)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		envelopes := make([]EnvelopeSummary, 0, len(activity))
		for _, entry := range activity {
			envelopes = append(envelopes, EnvelopeSummary{
				Envelope:  entry.Envelope,
				Remaining: entry.Envelope.Allocated.Sub(entry.Envelope.Spent),
				Incoming:  entry.Incoming,
				Outgoing:  entry.Outgoing,
			})
		}

		summaries = append(summaries, AccountSummary{
			Account:   account,
			Envelopes: envelopes,
		})
	}

	c.JSON(http.StatusOK, summaries)
}
