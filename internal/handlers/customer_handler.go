package handlers

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type CustomerHandler struct {
	catalog domain.CatalogStore
	audit   *audit.Dispatcher
	log     *slog.Logger
}

func NewCustomerHandler(catalog domain.CatalogStore, d *audit.Dispatcher, log *slog.Logger) *CustomerHandler {
	return &CustomerHandler{catalog: catalog, audit: d, log: log}
}

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ======================================================
// LIST CUSTOMERS
// ======================================================
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.catalog.ListCustomers(c.Request.Context(), middleware.SalonID(c), c.Query("query"))
	if err != nil {
		respond(c, h.log, err, "failed_to_list_customers")
		return
	}
	httpresp.List(c, customers)
}

// ======================================================
// CREATE CUSTOMER
// ======================================================
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	customer, err := newCustomer(middleware.SalonID(c), req)
	if err != nil {
		respond(c, h.log, err, "invalid_customer")
		return
	}

	if err := h.catalog.SaveCustomer(c.Request.Context(), customer); err != nil {
		respond(c, h.log, err, "failed_to_create_customer")
		return
	}

	writeAudit(h.audit, c, "customer_created", "customer", customer.ID, nil)
	httpresp.Created(c, customer)
}

// newCustomer normalizes contact data. At least one of phone or email is
// required.
func newCustomer(salonID uint, req CreateCustomerRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, httperr.ErrValidation("invalid_name", "name must not be empty")
	}

	customer := &models.Customer{SalonID: salonID, Name: name}

	if strings.TrimSpace(req.Phone) != "" {
		phone := validators.NormalizePhone(req.Phone)
		if len(strings.TrimPrefix(phone, "+")) < 8 {
			return nil, httperr.ErrValidation("invalid_phone", "phone is not a valid number")
		}
		customer.Phone = phone
	}
	if strings.TrimSpace(req.Email) != "" {
		email, ok := validators.NormalizeEmail(req.Email)
		if !ok {
			return nil, httperr.ErrValidation("invalid_email", "email is not a valid address")
		}
		customer.Email = email
	}

	if customer.Phone == "" && customer.Email == "" {
		return nil, httperr.ErrValidation("missing_contact", "phone or email is required")
	}
	return customer, nil
}
