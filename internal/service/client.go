package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dangerclosesec/crmboard/internal/audit"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxClientPage = 200

type ClientService struct {
	repo     repository.ClientRepositoryIface
	audit    audit.Logger
	validate *validator.Validate
}

func NewClientService(repo repository.ClientRepositoryIface, auditLogger audit.Logger) *ClientService {
	if auditLogger == nil {
		auditLogger = &audit.NoOpLogger{}
	}
	return &ClientService{
		repo:     repo,
		audit:    auditLogger,
		validate: newValidator(),
	}
}

type CreateClientInput struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"omitempty,max=50"`
	Company  string  `json:"company" validate:"omitempty,max=200"`
	ValueUSD float64 `json:"valueUsd" validate:"gte=0"`
	Notes    string  `json:"notes"`
}

type UpdateClientInput struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Email    *string  `json:"email" validate:"omitempty,email"`
	Phone    *string  `json:"phone" validate:"omitempty,max=50"`
	Company  *string  `json:"company" validate:"omitempty,max=200"`
	ValueUSD *float64 `json:"valueUsd" validate:"omitempty,gte=0"`
	Notes    *string  `json:"notes"`
}

type ListClientsInput struct {
	Search string
	Limit  int
	Offset int
}

func (s *ClientService) ListClients(ctx context.Context, orgID uuid.UUID, input ListClientsInput) ([]model.Client, int64, error) {
	if input.Limit < 0 || input.Offset < 0 {
		return nil, 0, ErrInvalidPaging
	}
	if input.Limit > maxClientPage {
		input.Limit = maxClientPage
	}

	clients, total, err := s.repo.List(ctx, orgID, repository.ClientQuery{
		Search: strings.TrimSpace(input.Search),
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing clients: %w", err)
	}
	return clients, total, nil
}

func (s *ClientService) GetClient(ctx context.Context, orgID, id uuid.UUID) (*model.Client, error) {
	client, err := s.repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("finding client: %w", err)
	}
	return client, nil
}

// CreateClient adds a client. Emails are unique per organization.
func (s *ClientService) CreateClient(ctx context.Context, orgID uuid.UUID, input CreateClientInput) (*model.Client, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	client := &model.Client{
		OrganizationID: orgID,
		Name:           strings.TrimSpace(input.Name),
		Email:          repository.NormalizeEmail(input.Email),
		Phone:          strings.TrimSpace(input.Phone),
		Company:        strings.TrimSpace(input.Company),
		ValueUSD:       input.ValueUSD,
		Notes:          input.Notes,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	record(ctx, s.audit, orgID, model.ActionClientCreate, model.EntityClient, client.ID, map[string]interface{}{
		"email": client.Email,
	})
	return client, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, orgID, id uuid.UUID, input UpdateClientInput) (*model.Client, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	client, err := s.repo.Update(ctx, orgID, id, repository.ClientPatch{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Company:  input.Company,
		ValueUSD: input.ValueUSD,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	record(ctx, s.audit, orgID, model.ActionClientUpdate, model.EntityClient, client.ID, nil)
	return client, nil
}

// DeleteClient removes a client. Linked cards and events keep existing
// without it.
func (s *ClientService) DeleteClient(ctx context.Context, orgID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	record(ctx, s.audit, orgID, model.ActionClientDelete, model.EntityClient, id, nil)
	return nil
}
