package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moneydash/backend/internal/allocation"
	"github.com/moneydash/backend/internal/httputil"
	"github.com/moneydash/backend/internal/metrics"
	"github.com/moneydash/backend/internal/models"
	md_uuid "github.com/moneydash/backend/internal/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RegisterIncomeRoutes registers the routes for income events with
// the RouterGroup that is passed.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsIncome)
	r.POST("", CreateIncome)
	r.OPTIONS("/preview", OptionsIncomePreview)
	r.POST("/preview", PreviewDistribution)
}

// IncomeEditable is the request body for recording an income event.
//
// When the amount is left out, the account's default paycheck amount is
// used and the transaction is recorded as a paycheck.
type IncomeEditable struct {
	AccountID md_uuid.UUID    `json:"accountId" binding:"required" example:"d07595e6-ad25-4c4b-9751-9a72ae02dbb4"`
	Amount    decimal.Decimal `json:"amount" example:"1500"`
	Note      string          `json:"note" example:"Paycheck March"`
	Date      time.Time       `json:"date" example:"2024-03-01T00:00:00Z"`
}

// IncomeResponse is the result of recording an income event.
type IncomeResponse struct {
	Transactions []models.Transaction `json:"transactions"`      // The income transaction followed by its allocation transactions
	Strategy     allocation.Strategy  `json:"strategy"`          // The distribution strategy that was applied
	Warning      *string              `json:"warning,omitempty"` // Set when invalid allocation rules caused the proportional fallback
}

// DistributionQuery is the request body for previewing a distribution.
type DistributionQuery struct {
	AccountID md_uuid.UUID        `json:"accountId" binding:"required" example:"d07595e6-ad25-4c4b-9751-9a72ae02dbb4"`
	Amount    decimal.Decimal     `json:"amount" binding:"required" example:"1500"`
	Strategy  allocation.Strategy `json:"strategy" binding:"required" example:"proportional"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income
// @Success		204
// @Router			/v1/income [options]
func OptionsIncome(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Income
// @Success		204
// @Router			/v1/income/preview [options]
func OptionsIncomePreview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Record income
// @Description	Records an income event and distributes it across the account's envelopes. The income transaction and all allocation transactions are persisted atomically.
// @Tags			Income
// @Accept			json
// @Produce		json
// @Success		201		{object}	IncomeResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			income	body		IncomeEditable	true	"Income event"
// @Router			/v1/income [post]
func CreateIncome(c *gin.Context) {
	var editable IncomeEditable
	err := c.ShouldBindJSON(&editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.AccountID == md_uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errAccountIDField.Error()})
		return
	}

	var account models.Account
	err = models.DB.First(&account, editable.AccountID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	source := models.SourceManual
	amount := editable.Amount
	if amount.IsZero() && account.PaycheckAmount.Valid {
		amount = account.PaycheckAmount.Decimal
		source = models.SourcePaycheck
	}

	if !amount.IsPositive() {
		c.JSON(http.StatusBadRequest, httpError{Error: errAmountNotPositive.Error()})
		return
	}

	note := editable.Note
	if note == "" {
		note = "Income"
	}

	income := models.Transaction{
		Date:      editable.Date,
		Amount:    amount,
		Note:      note,
		AccountID: account.ID,
		Source:    source,
	}

	envelopes, err := account.Envelopes(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	result := allocation.ProcessIncome(income, envelopes)

	var warning *string
	if result.Warning != nil {
		w := result.Warning.Error()
		warning = &w

		metrics.RuleFallbacks.Inc()
		log.Warn().
			Str("account", account.ID.String()).
			Err(result.Warning).
			Msg("allocation rules invalid, falling back to proportional distribution")
	}
	metrics.IncomeEvents.WithLabelValues(string(result.Strategy)).Inc()

	err = models.RecordIncome(models.DB, &income, result.Transactions)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transactions := append([]models.Transaction{income}, result.Transactions...)
	c.JSON(http.StatusCreated, IncomeResponse{
		Transactions: transactions,
		Strategy:     result.Strategy,
		Warning:      warning,
	})
}

// @Summary		Preview distribution
// @Description	Computes the per-envelope distribution of an amount without persisting anything
// @Tags			Income
// @Accept			json
// @Produce		json
// @Success		200			{object}	map[string]decimal.Decimal
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			distribution	body	DistributionQuery	true	"Distribution to preview"
// @Router			/v1/income/preview [post]
func PreviewDistribution(c *gin.Context) {
	var query DistributionQuery
	err := c.ShouldBindJSON(&query)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if !slices.Contains(allocation.Strategies(), query.Strategy) {
		c.JSON(http.StatusBadRequest, httpError{Error: errStrategyInvalid.Error()})
		return
	}

	if query.AccountID == md_uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errAccountIDField.Error()})
		return
	}

	var account models.Account
	err = models.DB.First(&account, query.AccountID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	envelopes, err := account.Envelopes(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	shares := allocation.Distribute(query.Amount, envelopes, query.Strategy)

	// Use string keys so the response marshals to a plain JSON object
	response := make(map[string]decimal.Decimal, len(shares))
	for id, amount := range shares {
		response[id.String()] = amount
	}

	c.JSON(http.StatusOK, response)
}
