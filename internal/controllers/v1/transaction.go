package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moneydash/backend/internal/httputil"
	"github.com/moneydash/backend/internal/models"
	md_uuid "github.com/moneydash/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactions)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// TransactionEditable contains the fields of a transaction that can be set
// by API requests.
type TransactionEditable struct {
	Date       time.Time       `json:"date" example:"2024-03-01T00:00:00Z"`
	Amount     decimal.Decimal `json:"amount" binding:"required" example:"-54.21"`
	Note       string          `json:"note" binding:"required" example:"Weekly groceries"`
	AccountID  md_uuid.UUID    `json:"accountId" binding:"required" example:"d07595e6-ad25-4c4b-9751-9a72ae02dbb4"`
	EnvelopeID *md_uuid.UUID   `json:"envelopeId" example:"5e1b451b-9706-436f-9e6d-33b66d25ff9e"`
}

func (editable TransactionEditable) model() models.Transaction {
	transaction := models.Transaction{
		Date:      editable.Date,
		Amount:    editable.Amount,
		Note:      editable.Note,
		AccountID: editable.AccountID.UUID,
		Source:    models.SourceManual,
	}

	if editable.EnvelopeID != nil {
		transaction.EnvelopeID = &editable.EnvelopeID.UUID
	}

	return transaction
}

// TransactionQueryFilter contains the query parameters to filter the
// transaction list with.
type TransactionQueryFilter struct {
	AccountID  md_uuid.UUID `form:"account"`
	EnvelopeID md_uuid.UUID `form:"envelope"`
	Direction  string       `form:"direction" example:"income"` // "income" or "expense"
	FromDate   time.Time    `form:"fromDate" time_format:"2006-01-02"`
	UntilDate  time.Time    `form:"untilDate" time_format:"2006-01-02"`
	Limit      int          `form:"limit"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{})
}

// @Summary		Create transaction
// @Description	Creates a new transaction. Income distribution is not triggered here, use /v1/income for income events.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	models.Transaction
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := c.ShouldBindJSON(&editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.AccountID == md_uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errAccountIDField.Error()})
		return
	}

	transaction := editable.model()
	err = models.DB.Create(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// @Summary		List transactions
// @Description	Returns transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{array}		models.Transaction
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			account		query	string	false	"Filter by account ID"
// @Param			envelope	query	string	false	"Filter by envelope ID"
// @Param			direction	query	string	false	"Filter by direction, income or expense"
// @Param			fromDate	query	string	false	"Transactions at and after this date"
// @Param			untilDate	query	string	false	"Transactions before and at this date"
// @Param			limit		query	int		false	"Maximum number of transactions to return"
// @Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	q := models.DB

	if filter.AccountID.UUID != md_uuid.Nil.UUID {
		q = q.Where(&models.Transaction{AccountID: filter.AccountID.UUID})
	}

	if filter.EnvelopeID.UUID != md_uuid.Nil.UUID {
		envelopeID := filter.EnvelopeID.UUID
		q = q.Where(&models.Transaction{EnvelopeID: &envelopeID})
	}

	switch filter.Direction {
	case "income":
		q = q.Where("transactions.amount > 0")
	case "expense":
		q = q.Where("transactions.amount < 0")
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("transactions.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("transactions.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	transactions, err := models.RecentTransactions(q, filter.Limit)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	models.Transaction
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	err := models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// @Summary		Update transaction
// @Description	Updates a transaction, preserving its identifier
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	models.Transaction
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string				true	"ID of the transaction"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	err := models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable TransactionEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.AccountID == md_uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errAccountIDField.Error()})
		return
	}

	update := editable.model()
	update.Source = transaction.Source

	err = models.DB.Model(&transaction).Updates(update).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	err := models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
