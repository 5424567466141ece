package services

import (
	"context"
	"testing"
	"time"

	"github.com/kefoundation/backend/internal/apperrors"
	"github.com/kefoundation/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockProgramRepository is a mock implementation of ProgramRepository
type mockProgramRepository struct {
	created *models.Program
	err     error
}

func (m *mockProgramRepository) Create(ctx context.Context, program *models.Program) error {
	if m.err != nil {
		return m.err
	}
	program.ID = "program-1"
	m.created = program
	return nil
}

func (m *mockProgramRepository) GetByID(ctx context.Context, id string) (*models.Program, error) {
	return nil, m.err
}

func (m *mockProgramRepository) GetAll(ctx context.Context) ([]models.Program, error) {
	return nil, m.err
}

func (m *mockProgramRepository) Update(ctx context.Context, id string, req *models.UpdateProgramRequest) (*models.Program, error) {
	return nil, m.err
}

func (m *mockProgramRepository) Delete(ctx context.Context, id string) error {
	return m.err
}

// mockEventRepository is a mock implementation of EventRepository
type mockEventRepository struct {
	created *models.Event
	err     error
}

func (m *mockEventRepository) Create(ctx context.Context, event *models.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = "event-1"
	m.created = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return nil, m.err
}

func (m *mockEventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	return nil, m.err
}

func (m *mockEventRepository) Update(ctx context.Context, id string, req *models.UpdateEventRequest) (*models.Event, error) {
	return nil, m.err
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	return m.err
}

// mockResourceRepository is a mock implementation of ResourceRepository
type mockResourceRepository struct {
	created *models.Resource
	err     error
}

func (m *mockResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	if m.err != nil {
		return m.err
	}
	resource.ID = "resource-1"
	m.created = resource
	return nil
}

func (m *mockResourceRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	return nil, m.err
}

func (m *mockResourceRepository) GetAll(ctx context.Context) ([]models.Resource, error) {
	return nil, m.err
}

func (m *mockResourceRepository) Update(ctx context.Context, id string, req *models.UpdateResourceRequest) (*models.Resource, error) {
	return nil, m.err
}

func (m *mockResourceRepository) Delete(ctx context.Context, id string) error {
	return m.err
}

// mockMembershipRepository is a mock implementation of MembershipRepository
type mockMembershipRepository struct {
	created *models.Membership
	err     error
}

func (m *mockMembershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	if m.err != nil {
		return m.err
	}
	membership.ID = "membership-1"
	m.created = membership
	return nil
}

func (m *mockMembershipRepository) GetAll(ctx context.Context) ([]models.Membership, error) {
	return nil, m.err
}

func (m *mockMembershipRepository) Update(ctx context.Context, id string, req *models.UpdateMembershipRequest) (*models.Membership, error) {
	return nil, m.err
}

func (m *mockMembershipRepository) Delete(ctx context.Context, id string) error {
	return m.err
}

// mockContactMessageRepository is a mock implementation of ContactMessageRepository
type mockContactMessageRepository struct {
	created *models.ContactMessage
	err     error
}

func (m *mockContactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	message.ID = "message-1"
	m.created = message
	return nil
}

func (m *mockContactMessageRepository) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	return nil, m.err
}

func (m *mockContactMessageRepository) MarkAsRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	return nil, m.err
}

func (m *mockContactMessageRepository) Delete(ctx context.Context, id string) error {
	return m.err
}

// mockSupportRequestRepository is a mock implementation of SupportRequestRepository
type mockSupportRequestRepository struct {
	created       *models.SupportRequest
	updatedStatus string
	err           error
}

func (m *mockSupportRequestRepository) Create(ctx context.Context, request *models.SupportRequest) error {
	if m.err != nil {
		return m.err
	}
	request.ID = "request-1"
	m.created = request
	return nil
}

func (m *mockSupportRequestRepository) GetAll(ctx context.Context) ([]models.SupportRequest, error) {
	return nil, m.err
}

func (m *mockSupportRequestRepository) UpdateStatus(ctx context.Context, id, status string) (*models.SupportRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.updatedStatus = status
	return &models.SupportRequest{ID: id, Status: status}, nil
}

func (m *mockSupportRequestRepository) Delete(ctx context.Context, id string) error {
	return m.err
}

// mockMembershipPlanRepository is a mock implementation of MembershipPlanRepository
type mockMembershipPlanRepository struct {
	plans   []models.MembershipPlan
	created *models.MembershipPlan
	err     error
}

func (m *mockMembershipPlanRepository) Create(ctx context.Context, plan *models.MembershipPlan) error {
	if m.err != nil {
		return m.err
	}
	plan.ID = "plan-1"
	m.created = plan
	return nil
}

func (m *mockMembershipPlanRepository) GetAll(ctx context.Context) ([]models.MembershipPlan, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.plans, nil
}

func (m *mockMembershipPlanRepository) Update(ctx context.Context, id string, req *models.UpdateMembershipPlanRequest) (*models.MembershipPlan, error) {
	return nil, m.err
}

func (m *mockMembershipPlanRepository) Delete(ctx context.Context, id string) error {
	return m.err
}

type contentMocks struct {
	programs    *mockProgramRepository
	events      *mockEventRepository
	resources   *mockResourceRepository
	memberships *mockMembershipRepository
	messages    *mockContactMessageRepository
	requests    *mockSupportRequestRepository
	plans       *mockMembershipPlanRepository
}

func newTestContentService() (*contentService, *contentMocks) {
	logger, _ := zap.NewDevelopment()
	mocks := &contentMocks{
		programs:    &mockProgramRepository{},
		events:      &mockEventRepository{},
		resources:   &mockResourceRepository{},
		memberships: &mockMembershipRepository{},
		messages:    &mockContactMessageRepository{},
		requests:    &mockSupportRequestRepository{},
		plans:       &mockMembershipPlanRepository{},
	}
	svc := NewContentService(
		mocks.programs, mocks.events, mocks.resources, mocks.memberships,
		mocks.messages, mocks.requests, mocks.plans, logger,
	)
	return svc, mocks
}

func TestContentService_CreateProgram(t *testing.T) {
	svc, mocks := newTestContentService()

	t.Run("success with default active flag", func(t *testing.T) {
		program, err := svc.CreateProgram(context.Background(), &models.CreateProgramRequest{
			Title:       "Startup Incubator",
			Description: "Twelve week program",
			Category:    "entrepreneurship",
		})
		require.NoError(t, err)
		assert.Equal(t, "program-1", program.ID)
		assert.True(t, program.IsActive)
		assert.Equal(t, "Startup Incubator", mocks.programs.created.Title)
	})

	t.Run("explicit inactive flag preserved", func(t *testing.T) {
		inactive := false
		program, err := svc.CreateProgram(context.Background(), &models.CreateProgramRequest{
			Title:       "Archived Program",
			Description: "No longer running",
			Category:    "legacy",
			IsActive:    &inactive,
		})
		require.NoError(t, err)
		assert.False(t, program.IsActive)
	})

	t.Run("missing required fields", func(t *testing.T) {
		_, err := svc.CreateProgram(context.Background(), &models.CreateProgramRequest{
			Title: "No description",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestContentService_CreateEvent(t *testing.T) {
	svc, _ := newTestContentService()

	t.Run("success", func(t *testing.T) {
		event, err := svc.CreateEvent(context.Background(), &models.CreateEventRequest{
			Title:       "Annual Gala",
			Description: "Fundraising dinner",
			Date:        time.Date(2026, 11, 20, 18, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, "event-1", event.ID)
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := svc.CreateEvent(context.Background(), &models.CreateEventRequest{
			Title:       "Annual Gala",
			Description: "Fundraising dinner",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestContentService_CreateMembership(t *testing.T) {
	svc, mocks := newTestContentService()

	t.Run("defaults to active status", func(t *testing.T) {
		membership, err := svc.CreateMembership(context.Background(), &models.CreateMembershipRequest{
			Name:           "Jane Doe",
			Email:          "jane@example.com",
			MembershipType: "individual",
		})
		require.NoError(t, err)
		assert.Equal(t, models.MembershipStatusActive, membership.Status)
		assert.Equal(t, "jane@example.com", mocks.memberships.created.Email)
	})

	t.Run("missing membership type", func(t *testing.T) {
		_, err := svc.CreateMembership(context.Background(), &models.CreateMembershipRequest{
			Name:  "Jane Doe",
			Email: "jane@example.com",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestContentService_CreateMessage(t *testing.T) {
	svc, _ := newTestContentService()

	t.Run("success", func(t *testing.T) {
		message, err := svc.CreateMessage(context.Background(), &models.CreateContactMessageRequest{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Message: "How do I join?",
		})
		require.NoError(t, err)
		assert.Equal(t, "message-1", message.ID)
	})

	t.Run("missing message body", func(t *testing.T) {
		_, err := svc.CreateMessage(context.Background(), &models.CreateContactMessageRequest{
			Name:  "Jane Doe",
			Email: "jane@example.com",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestContentService_UpdateRequestStatus(t *testing.T) {
	svc, mocks := newTestContentService()

	t.Run("success", func(t *testing.T) {
		request, err := svc.UpdateRequestStatus(context.Background(), "request-1", models.RequestStatusResolved)
		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusResolved, request.Status)
		assert.Equal(t, models.RequestStatusResolved, mocks.requests.updatedStatus)
	})

	t.Run("empty status rejected", func(t *testing.T) {
		_, err := svc.UpdateRequestStatus(context.Background(), "request-1", "  ")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestContentService_ListPlans(t *testing.T) {
	svc, mocks := newTestContentService()
	mocks.plans.plans = []models.MembershipPlan{
		{ID: "plan-1", Name: "Basic", IsActive: true},
		{ID: "plan-2", Name: "Retired", IsActive: false},
		{ID: "plan-3", Name: "Premium", IsActive: true},
	}

	t.Run("public listing hides inactive plans", func(t *testing.T) {
		plans, err := svc.ListPlans(context.Background(), true)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, "Basic", plans[0].Name)
		assert.Equal(t, "Premium", plans[1].Name)
	})

	t.Run("admin listing includes all plans", func(t *testing.T) {
		plans, err := svc.ListPlans(context.Background(), false)
		require.NoError(t, err)
		require.Len(t, plans, 3)
	})
}

func TestContentService_CreatePlan(t *testing.T) {
	svc, _ := newTestContentService()

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := svc.CreatePlan(context.Background(), &models.CreateMembershipPlanRequest{
			Name:  "Bad Plan",
			Price: -100,
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})

	t.Run("success", func(t *testing.T) {
		plan, err := svc.CreatePlan(context.Background(), &models.CreateMembershipPlanRequest{
			Name:  "Supporter",
			Price: 5000,
		})
		require.NoError(t, err)
		assert.Equal(t, "plan-1", plan.ID)
		assert.True(t, plan.IsActive)
	})
}
