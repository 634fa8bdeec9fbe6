package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loan_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loan_ledger_app/internal/dto"
	"github.com/SscSPs/loan_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// applicationHandler handles HTTP requests related to loan and deposit applications.
type applicationHandler struct {
	applicationService portssvc.ApplicationSvcFacade
	userService        portssvc.UserReaderSvc
}

func newApplicationHandler(as portssvc.ApplicationSvcFacade, us portssvc.UserReaderSvc) *applicationHandler {
	return &applicationHandler{applicationService: as, userService: us}
}

// registerApplicationRoutes registers all application-related routes.
func registerApplicationRoutes(rg *gin.RouterGroup, applicationService portssvc.ApplicationSvcFacade, userService portssvc.UserReaderSvc) {
	h := newApplicationHandler(applicationService, userService)

	applications := rg.Group("/applications")
	{
		applications.GET("", h.listApplications)                              // Admin: all, others: own
		applications.POST("", h.createApplication)                            // Admin may submit for userID
		applications.GET("/:applicationID", h.getApplication)                 // Owner or admin
		applications.POST("/:applicationID/review", h.reviewApplication)      // Bank personnel or admin
		applications.GET("/:applicationID/transaction", h.getApplicationPlan) // Owner or admin
	}
}

// applicationTypeFor derives the application type from the owner's role.
func applicationTypeFor(owner domain.Principal) domain.ApplicationType {
	if owner.Role == domain.RoleProvider {
		return domain.Deposit
	}
	return domain.Loan
}

// listApplications godoc
// @Summary List applications
// @Description Admins see every application, other users only their own
// @Tags applications
// @Produce json
// @Success 200 {array} dto.ApplicationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list applications"
// @Security BearerAuth
// @Router /applications [get]
func (h *applicationHandler) listApplications(c *gin.Context) {
	caller, ok := principalOrAbort(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListApplications(c.Request.Context(), caller.UserID, caller.IsAdmin)
	if err != nil {
		respondError(c, err, "Failed to list applications")
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponses(apps))
}

// createApplication godoc
// @Summary Submit an application
// @Description Providers submit deposits, everyone else submits loans
// @Tags applications
// @Accept json
// @Produce json
// @Param application body dto.CreateApplicationRequest true "Application details"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Role does not allow this application"
// @Failure 404 {object} map[string]string "Owner not found"
// @Failure 500 {object} map[string]string "Failed to create application"
// @Security BearerAuth
// @Router /applications [post]
func (h *applicationHandler) createApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create application request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	owner := caller
	if req.UserID != nil && *req.UserID != caller.UserID {
		if !caller.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins may submit applications for other users"})
			return
		}
		p, err := h.userService.GetPrincipal(c.Request.Context(), *req.UserID)
		if err != nil {
			respondError(c, err, "Failed to resolve application owner")
			return
		}
		owner = p
	}

	app, err := h.applicationService.CreateApplication(c.Request.Context(), owner, applicationTypeFor(owner), req.Amount, req.DurationMonths)
	if err != nil {
		respondError(c, err, "Failed to create application")
		return
	}
	c.JSON(http.StatusCreated, dto.ToApplicationResponse(app))
}

// getApplication godoc
// @Summary Get an application
// @Tags applications
// @Produce json
// @Param applicationID path string true "Application ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Application not found"
// @Security BearerAuth
// @Router /applications/{applicationID} [get]
func (h *applicationHandler) getApplication(c *gin.Context) {
	caller, ok := principalOrAbort(c)
	if !ok {
		return
	}

	app, err := h.applicationService.GetApplication(c.Request.Context(), c.Param("applicationID"), caller)
	if err != nil {
		respondError(c, err, "Failed to retrieve application")
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// reviewApplication godoc
// @Summary Approve or reject an application
// @Description Approval requires an interest rate in [0, 100] and materializes the transaction
// @Tags applications
// @Accept json
// @Produce json
// @Param applicationID path string true "Application ID"
// @Param review body dto.ReviewApplicationRequest true "Decision"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not a reviewer"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Application already reviewed"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /applications/{applicationID}/review [post]
func (h *applicationHandler) reviewApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req dto.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind review request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	app, err := h.applicationService.ReviewApplication(c.Request.Context(), c.Param("applicationID"), caller.UserID, req.Decision, req.InterestRate)
	if err != nil {
		respondError(c, err, "Failed to review application")
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// getApplicationPlan godoc
// @Summary Get the transaction and payment schedule of an approved application
// @Tags applications
// @Produce json
// @Param applicationID path string true "Application ID"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "No transaction for this application"
// @Security BearerAuth
// @Router /applications/{applicationID}/transaction [get]
func (h *applicationHandler) getApplicationPlan(c *gin.Context) {
	caller, ok := principalOrAbort(c)
	if !ok {
		return
	}

	txn, payments, err := h.applicationService.GetApplicationSchedule(c.Request.Context(), c.Param("applicationID"), caller)
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToScheduleResponse(txn, payments))
}
