package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneydash/backend/internal/httputil"
	"github.com/moneydash/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAccounts)
		r.GET("", GetAccounts)
		r.POST("", CreateAccount)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.GET("/:id", GetAccount)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}
}

// AccountEditable contains the fields of an account that can be set by
// API requests.
type AccountEditable struct {
	Name           string             `json:"name" binding:"required" example:"Girokonto"`
	Kind           models.AccountKind `json:"kind" example:"checking"`
	Note           string             `json:"note" example:"Main household account"`
	Balance        decimal.Decimal    `json:"balance" example:"2317.12"`
	Institution    string             `json:"institution" example:"Sparkasse"`
	AccountNumber  string             `json:"accountNumber" example:"****1234"`
	Color          string             `json:"color" example:"#2ecc71"`
	Locale         string             `json:"locale" example:"de-DE"`
	PaycheckAmount *decimal.Decimal   `json:"paycheckAmount" example:"1500"`
	Archived       bool               `json:"archived" example:"false"`
}

func (editable AccountEditable) model() models.Account {
	account := models.Account{
		Name:          editable.Name,
		Kind:          editable.Kind,
		Note:          editable.Note,
		Balance:       editable.Balance,
		Institution:   editable.Institution,
		AccountNumber: editable.AccountNumber,
		Color:         editable.Color,
		Locale:        editable.Locale,
		Archived:      editable.Archived,
	}

	if editable.PaycheckAmount != nil {
		account.PaycheckAmount = decimal.NewNullDecimal(*editable.PaycheckAmount)
	}

	return account
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Router			/v1/accounts [options]
func OptionsAccounts(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID of the account"
// @Router			/v1/accounts/{id} [options]
func OptionsAccountDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Account{})
}

// @Summary		Create account
// @Description	Creates a new account
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		201		{object}	models.Account
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts [post]
func CreateAccount(c *gin.Context) {
	var editable AccountEditable
	err := c.ShouldBindJSON(&editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	account := editable.model()
	err = models.DB.Create(&account).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, account)
}

// @Summary		List accounts
// @Description	Returns a list of accounts
// @Tags			Accounts
// @Produce		json
// @Success		200	{array}		models.Account
// @Failure		500	{object}	httpError
// @Param			kind		query	string	false	"Filter by account kind"
// @Param			archived	query	bool	false	"Is the account archived?"
// @Router			/v1/accounts [get]
func GetAccounts(c *gin.Context) {
	var filter struct {
		Kind     models.AccountKind `form:"kind"`
		Archived bool               `form:"archived"`
	}
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if filter.Kind != "" && !slices.Contains(models.Kinds(), filter.Kind) {
		c.JSON(http.StatusBadRequest, httpError{Error: fmt.Sprintf("%v: %s", models.ErrAccountKindInvalid, filter.Kind)})
		return
	}

	var accounts []models.Account
	err := models.DB.Where(&models.Account{Kind: filter.Kind, Archived: filter.Archived}).Find(&accounts).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// @Summary		Get account
// @Description	Returns a specific account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	models.Account
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID of the account"
// @Router			/v1/accounts/{id} [get]
func GetAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var account models.Account
	err := models.DB.First(&account, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, account)
}

// @Summary		Update account
// @Description	Updates an account. Zero values of editable fields are left unchanged.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	models.Account
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		string			true	"ID of the account"
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func UpdateAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var account models.Account
	err := models.DB.First(&account, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable AccountEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&account).Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, account)
}

// @Summary		Delete account
// @Description	Deletes an account
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID of the account"
// @Router			/v1/accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var account models.Account
	err := models.DB.First(&account, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&account).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
