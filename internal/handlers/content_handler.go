package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kefoundation/backend/internal/models"
	"go.uber.org/zap"
)

// ContentService is the interface that wraps the content business logic
// needed by the content handler
type ContentService interface {
	ListPrograms(ctx context.Context) ([]models.Program, error)
	GetProgram(ctx context.Context, id string) (*models.Program, error)
	CreateProgram(ctx context.Context, req *models.CreateProgramRequest) (*models.Program, error)
	UpdateProgram(ctx context.Context, id string, req *models.UpdateProgramRequest) (*models.Program, error)
	DeleteProgram(ctx context.Context, id string) error

	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, req *models.UpdateEventRequest) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	ListResources(ctx context.Context) ([]models.Resource, error)
	GetResource(ctx context.Context, id string) (*models.Resource, error)
	CreateResource(ctx context.Context, req *models.CreateResourceRequest) (*models.Resource, error)
	UpdateResource(ctx context.Context, id string, req *models.UpdateResourceRequest) (*models.Resource, error)
	DeleteResource(ctx context.Context, id string) error

	ListMemberships(ctx context.Context) ([]models.Membership, error)
	CreateMembership(ctx context.Context, req *models.CreateMembershipRequest) (*models.Membership, error)
	UpdateMembership(ctx context.Context, id string, req *models.UpdateMembershipRequest) (*models.Membership, error)
	DeleteMembership(ctx context.Context, id string) error

	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
	CreateMessage(ctx context.Context, req *models.CreateContactMessageRequest) (*models.ContactMessage, error)
	MarkMessageRead(ctx context.Context, id string) (*models.ContactMessage, error)
	DeleteMessage(ctx context.Context, id string) error

	ListRequests(ctx context.Context) ([]models.SupportRequest, error)
	CreateRequest(ctx context.Context, req *models.CreateSupportRequestRequest) (*models.SupportRequest, error)
	UpdateRequestStatus(ctx context.Context, id, status string) (*models.SupportRequest, error)
	DeleteRequest(ctx context.Context, id string) error

	ListPlans(ctx context.Context, activeOnly bool) ([]models.MembershipPlan, error)
	CreatePlan(ctx context.Context, req *models.CreateMembershipPlanRequest) (*models.MembershipPlan, error)
	UpdatePlan(ctx context.Context, id string, req *models.UpdateMembershipPlanRequest) (*models.MembershipPlan, error)
	DeletePlan(ctx context.Context, id string) error
}

// ContentHandler handles site content and submission requests
type ContentHandler struct {
	BaseHandler
	service ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(service ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterPublicRoutes registers the routes the marketing site reads and
// submits to without a session
func (h *ContentHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/programs", h.ListPrograms)
	r.Get("/programs/{id}", h.GetProgram)
	r.Get("/events", h.ListEvents)
	r.Get("/events/{id}", h.GetEvent)
	r.Get("/resources", h.ListResources)
	r.Get("/resources/{id}", h.GetResource)
	r.Get("/membership-plans", h.ListActivePlans)
	r.Post("/contact", h.CreateMessage)
	r.Post("/requests", h.CreateRequest)
}

// RegisterAdminRoutes registers the admin-gated content management routes
func (h *ContentHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/programs", h.CreateProgram)
	r.Patch("/programs/{id}", h.UpdateProgram)
	r.Delete("/programs/{id}", h.DeleteProgram)

	r.Post("/events", h.CreateEvent)
	r.Patch("/events/{id}", h.UpdateEvent)
	r.Delete("/events/{id}", h.DeleteEvent)

	r.Post("/resources", h.CreateResource)
	r.Patch("/resources/{id}", h.UpdateResource)
	r.Delete("/resources/{id}", h.DeleteResource)

	r.Get("/memberships", h.ListMemberships)
	r.Post("/memberships", h.CreateMembership)
	r.Patch("/memberships/{id}", h.UpdateMembership)
	r.Delete("/memberships/{id}", h.DeleteMembership)

	r.Get("/messages", h.ListMessages)
	r.Patch("/messages/{id}/read", h.MarkMessageRead)
	r.Delete("/messages/{id}", h.DeleteMessage)

	r.Get("/requests", h.ListRequests)
	r.Patch("/requests/{id}/status", h.UpdateRequestStatus)
	r.Delete("/requests/{id}", h.DeleteRequest)

	r.Get("/membership-plans", h.ListAllPlans)
	r.Post("/membership-plans", h.CreatePlan)
	r.Patch("/membership-plans/{id}", h.UpdatePlan)
	r.Delete("/membership-plans/{id}", h.DeletePlan)
}

// --- Programs ---

func (h *ContentHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.service.ListPrograms(r.Context())
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, programs)
}

func (h *ContentHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	program, err := h.service.GetProgram(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, program)
}

func (h *ContentHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProgramRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	program, err := h.service.CreateProgram(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, program)
}

func (h *ContentHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProgramRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	program, err := h.service.UpdateProgram(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, program)
}

func (h *ContentHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProgram(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, MessageResponse{Message: "Program deleted successfully"})
}

// --- Events ---

func (h *ContentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, events)
}

func (h *ContentHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, event)
}

func (h *ContentHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	event, err := h.service.CreateEvent(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, event)
}

func (h *ContentHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateEventRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	event, err := h.service.UpdateEvent(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, event)
}

func (h *ContentHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, MessageResponse{Message: "Event deleted successfully"})
}

// --- Resources ---

func (h *ContentHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.service.ListResources(r.Context())
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, resources)
}

func (h *ContentHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	resource, err := h.service.GetResource(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, resource)
}

func (h *ContentHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req models.CreateResourceRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	resource, err := h.service.CreateResource(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, resource)
}

func (h *ContentHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateResourceRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	resource, err := h.service.UpdateResource(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, resource)
}

func (h *ContentHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteResource(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, MessageResponse{Message: "Resource deleted successfully"})
}

// --- Memberships ---

func (h *ContentHandler) ListMemberships(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.service.ListMemberships(r.Context())
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, memberships)
}

func (h *ContentHandler) CreateMembership(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMembershipRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	membership, err := h.service.CreateMembership(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, membership)
}

func (h *ContentHandler) UpdateMembership(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateMembershipRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	membership, err := h.service.UpdateMembership(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, membership)
}

func (h *ContentHandler) DeleteMembership(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMembership(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, MessageResponse{Message: "Membership deleted successfully"})
}

// --- Contact messages ---

func (h *ContentHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context())
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, messages)
}

func (h *ContentHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContactMessageRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	message, err := h.service.CreateMessage(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, message)
}

func (h *ContentHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	message, err := h.service.MarkMessageRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, message)
}

func (h *ContentHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMessage(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, MessageResponse{Message: "Message deleted successfully"})
}

// --- Support requests ---

func (h *ContentHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListRequests(r.Context())
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, requests)
}

func (h *ContentHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSupportRequestRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	request, err := h.service.CreateRequest(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, request)
}

func (h *ContentHandler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRequestStatusRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	request, err := h.service.UpdateRequestStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, request)
}

func (h *ContentHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRequest(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, MessageResponse{Message: "Request deleted successfully"})
}

// --- Membership plans ---

// ListActivePlans serves the public plan listing; inactive plans are hidden
func (h *ContentHandler) ListActivePlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPlans(r.Context(), true)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, plans)
}

// ListAllPlans serves the admin plan listing, inactive plans included
func (h *ContentHandler) ListAllPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPlans(r.Context(), false)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, plans)
}

func (h *ContentHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMembershipPlanRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	plan, err := h.service.CreatePlan(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, plan)
}

func (h *ContentHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateMembershipPlanRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	plan, err := h.service.UpdatePlan(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, plan)
}

func (h *ContentHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePlan(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondAppError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, MessageResponse{Message: "Plan deleted successfully"})
}
