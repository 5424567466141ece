package services

import (
	"context"
	"strings"

	"github.com/kefoundation/backend/internal/apperrors"
	"github.com/kefoundation/backend/internal/models"
	"go.uber.org/zap"
)

// ProgramRepository wraps programs table data access
type ProgramRepository interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, id string) (*models.Program, error)
	GetAll(ctx context.Context) ([]models.Program, error)
	Update(ctx context.Context, id string, req *models.UpdateProgramRequest) (*models.Program, error)
	Delete(ctx context.Context, id string) error
}

// EventRepository wraps events table data access
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetAll(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, id string, req *models.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

// ResourceRepository wraps resources table data access
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	GetAll(ctx context.Context) ([]models.Resource, error)
	Update(ctx context.Context, id string, req *models.UpdateResourceRequest) (*models.Resource, error)
	Delete(ctx context.Context, id string) error
}

// MembershipRepository wraps memberships table data access
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) error
	GetAll(ctx context.Context) ([]models.Membership, error)
	Update(ctx context.Context, id string, req *models.UpdateMembershipRequest) (*models.Membership, error)
	Delete(ctx context.Context, id string) error
}

// ContactMessageRepository wraps contact_messages table data access
type ContactMessageRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	GetAll(ctx context.Context) ([]models.ContactMessage, error)
	MarkAsRead(ctx context.Context, id string) (*models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// SupportRequestRepository wraps support_requests table data access
type SupportRequestRepository interface {
	Create(ctx context.Context, request *models.SupportRequest) error
	GetAll(ctx context.Context) ([]models.SupportRequest, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.SupportRequest, error)
	Delete(ctx context.Context, id string) error
}

// MembershipPlanRepository wraps membership_plans table data access
type MembershipPlanRepository interface {
	Create(ctx context.Context, plan *models.MembershipPlan) error
	GetAll(ctx context.Context) ([]models.MembershipPlan, error)
	Update(ctx context.Context, id string, req *models.UpdateMembershipPlanRequest) (*models.MembershipPlan, error)
	Delete(ctx context.Context, id string) error
}

// contentService implements CRUD business logic for the content entities
type contentService struct {
	programs    ProgramRepository
	events      EventRepository
	resources   ResourceRepository
	memberships MembershipRepository
	messages    ContactMessageRepository
	requests    SupportRequestRepository
	plans       MembershipPlanRepository
	logger      *zap.Logger
}

// NewContentService creates a new content service
func NewContentService(
	programs ProgramRepository,
	events EventRepository,
	resources ResourceRepository,
	memberships MembershipRepository,
	messages ContactMessageRepository,
	requests SupportRequestRepository,
	plans MembershipPlanRepository,
	logger *zap.Logger,
) *contentService {
	return &contentService{
		programs:    programs,
		events:      events,
		resources:   resources,
		memberships: memberships,
		messages:    messages,
		requests:    requests,
		plans:       plans,
		logger:      logger,
	}
}

// --- Programs ---

// ListPrograms returns all programs
func (s *contentService) ListPrograms(ctx context.Context) ([]models.Program, error) {
	return s.programs.GetAll(ctx)
}

// GetProgram returns a program by ID
func (s *contentService) GetProgram(ctx context.Context, id string) (*models.Program, error) {
	return s.programs.GetByID(ctx, id)
}

// CreateProgram validates and creates a program
func (s *contentService) CreateProgram(ctx context.Context, req *models.CreateProgramRequest) (*models.Program, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.Category) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Title, description and category are required")
	}

	program := &models.Program{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if err := s.programs.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// UpdateProgram applies a partial update to a program
func (s *contentService) UpdateProgram(ctx context.Context, id string, req *models.UpdateProgramRequest) (*models.Program, error) {
	return s.programs.Update(ctx, id, req)
}

// DeleteProgram removes a program
func (s *contentService) DeleteProgram(ctx context.Context, id string) error {
	return s.programs.Delete(ctx, id)
}

// --- Events ---

// ListEvents returns all events
func (s *contentService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.GetAll(ctx)
}

// GetEvent returns an event by ID
func (s *contentService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.events.GetByID(ctx, id)
}

// CreateEvent validates and creates an event
func (s *contentService) CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || req.Date.IsZero() {
		return nil, apperrors.New(apperrors.KindValidation, "Title, description and date are required")
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Image:       req.Image,
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateEvent applies a partial update to an event
func (s *contentService) UpdateEvent(ctx context.Context, id string, req *models.UpdateEventRequest) (*models.Event, error) {
	return s.events.Update(ctx, id, req)
}

// DeleteEvent removes an event
func (s *contentService) DeleteEvent(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

// --- Resources ---

// ListResources returns all resources
func (s *contentService) ListResources(ctx context.Context) ([]models.Resource, error) {
	return s.resources.GetAll(ctx)
}

// GetResource returns a resource by ID
func (s *contentService) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	return s.resources.GetByID(ctx, id)
}

// CreateResource validates and creates a resource
func (s *contentService) CreateResource(ctx context.Context, req *models.CreateResourceRequest) (*models.Resource, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Type) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Title and type are required")
	}

	resource := &models.Resource{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Link:        req.Link,
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// UpdateResource applies a partial update to a resource
func (s *contentService) UpdateResource(ctx context.Context, id string, req *models.UpdateResourceRequest) (*models.Resource, error) {
	return s.resources.Update(ctx, id, req)
}

// DeleteResource removes a resource
func (s *contentService) DeleteResource(ctx context.Context, id string) error {
	return s.resources.Delete(ctx, id)
}

// --- Memberships ---

// ListMemberships returns all memberships
func (s *contentService) ListMemberships(ctx context.Context) ([]models.Membership, error) {
	return s.memberships.GetAll(ctx)
}

// CreateMembership validates and creates a membership
func (s *contentService) CreateMembership(ctx context.Context, req *models.CreateMembershipRequest) (*models.Membership, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.MembershipType) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Name, email and membership type are required")
	}

	status := req.Status
	if status == "" {
		status = models.MembershipStatusActive
	}

	membership := &models.Membership{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Organization:   req.Organization,
		MembershipType: req.MembershipType,
		Status:         status,
		Notes:          req.Notes,
		UserID:         req.UserID,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// UpdateMembership applies a partial update to a membership
func (s *contentService) UpdateMembership(ctx context.Context, id string, req *models.UpdateMembershipRequest) (*models.Membership, error) {
	return s.memberships.Update(ctx, id, req)
}

// DeleteMembership removes a membership
func (s *contentService) DeleteMembership(ctx context.Context, id string) error {
	return s.memberships.Delete(ctx, id)
}

// --- Contact messages ---

// ListMessages returns all contact messages
func (s *contentService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.messages.GetAll(ctx)
}

// CreateMessage validates and stores a contact form submission
func (s *contentService) CreateMessage(ctx context.Context, req *models.CreateContactMessageRequest) (*models.ContactMessage, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Name, email and message are required")
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// MarkMessageRead flags a message as read
func (s *contentService) MarkMessageRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	return s.messages.MarkAsRead(ctx, id)
}

// DeleteMessage removes a contact message
func (s *contentService) DeleteMessage(ctx context.Context, id string) error {
	return s.messages.Delete(ctx, id)
}

// --- Support requests ---

// ListRequests returns all support requests
func (s *contentService) ListRequests(ctx context.Context) ([]models.SupportRequest, error) {
	return s.requests.GetAll(ctx)
}

// CreateRequest validates and stores a support request submission
func (s *contentService) CreateRequest(ctx context.Context, req *models.CreateSupportRequestRequest) (*models.SupportRequest, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Name, email and description are required")
	}

	request := &models.SupportRequest{
		Name:        req.Name,
		Email:       req.Email,
		Type:        req.Type,
		Description: req.Description,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// UpdateRequestStatus sets the status of a support request
func (s *contentService) UpdateRequestStatus(ctx context.Context, id, status string) (*models.SupportRequest, error) {
	if strings.TrimSpace(status) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Status is required")
	}
	return s.requests.UpdateStatus(ctx, id, status)
}

// DeleteRequest removes a support request
func (s *contentService) DeleteRequest(ctx context.Context, id string) error {
	return s.requests.Delete(ctx, id)
}

// --- Membership plans ---

// ListPlans returns membership plans. When activeOnly is set, inactive
// plans are filtered out (the public listing).
func (s *contentService) ListPlans(ctx context.Context, activeOnly bool) ([]models.MembershipPlan, error) {
	plans, err := s.plans.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return plans, nil
	}

	active := make([]models.MembershipPlan, 0, len(plans))
	for _, plan := range plans {
		if plan.IsActive {
			active = append(active, plan)
		}
	}
	return active, nil
}

// CreatePlan validates and creates a membership plan
func (s *contentService) CreatePlan(ctx context.Context, req *models.CreateMembershipPlanRequest) (*models.MembershipPlan, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Name is required")
	}
	if req.Price < 0 {
		return nil, apperrors.New(apperrors.KindValidation, "Price cannot be negative")
	}

	plan := &models.MembershipPlan{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Benefits:    req.Benefits,
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// UpdatePlan applies a partial update to a membership plan
func (s *contentService) UpdatePlan(ctx context.Context, id string, req *models.UpdateMembershipPlanRequest) (*models.MembershipPlan, error) {
	return s.plans.Update(ctx, id, req)
}

// DeletePlan removes a membership plan
func (s *contentService) DeletePlan(ctx context.Context, id string) error {
	return s.plans.Delete(ctx, id)
}

// boolOrDefault dereferences an optional bool
func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
