// internal/repository/client.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepositoryIface interface {
	List(ctx context.Context, orgID uuid.UUID, params ClientQuery) ([]model.Client, int64, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (*model.Client, error)
	FindByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, orgID, id uuid.UUID, patch ClientPatch) (*model.Client, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	MaterializeFromCard(ctx context.Context, orgID, cardID uuid.UUID) (*model.Client, bool, error)
}

// ClientQuery filters and pages the client list.
type ClientQuery struct {
	Search string
	Limit  int
	Offset int
}

type ClientPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Company  *string
	ValueUSD *float64
	Notes    *string
}

const defaultClientLimit = 50

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// NormalizeEmail is the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *ClientRepository) List(ctx context.Context, orgID uuid.UUID, params ClientQuery) ([]model.Client, int64, error) {
	var (
		clients []model.Client
		count   int64
	)

	query := r.db.WithContext(ctx).Model(&model.Client{}).Scopes(byOrg(orgID))
	if s := strings.TrimSpace(params.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?", like, like, like)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting clients: %w", classify(err))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultClientLimit
	}
	query = query.Limit(limit)
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	if err := query.Order("name ASC").Order("id ASC").Find(&clients).Error; err != nil {
		return nil, 0, fmt.Errorf("listing clients: %w", classify(err))
	}
	return clients, count, nil
}

func (r *ClientRepository) Get(ctx context.Context, orgID, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Scopes(byOrg(orgID)).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("finding client: %w", classify(err))
	}
	return &client, nil
}

func (r *ClientRepository) FindByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.Client, error) {
	return findClientByEmail(r.db.WithContext(ctx), orgID, email)
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	client.Email = NormalizeEmail(client.Email)
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		err = classify(err)
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrClientEmailExists
		}
		return fmt.Errorf("creating client: %w", err)
	}
	return nil
}

func (r *ClientRepository) Update(ctx context.Context, orgID, id uuid.UUID, patch ClientPatch) (*model.Client, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = NormalizeEmail(*patch.Email)
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Company != nil {
		updates["company"] = *patch.Company
	}
	if patch.ValueUSD != nil {
		updates["value_usd"] = *patch.ValueUSD
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&model.Client{}).
			Scopes(byOrg(orgID)).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			err := classify(result.Error)
			if errors.Is(err, domain.ErrConflict) {
				return nil, domain.ErrClientEmailExists
			}
			return nil, fmt.Errorf("updating client: %w", err)
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrClientNotFound
		}
	}

	return r.Get(ctx, orgID, id)
}

// Delete removes the client. Cards and events pointing at it are unlinked by
// their foreign keys.
func (r *ClientRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(byOrg(orgID)).Delete(&model.Client{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting client: %w", classify(result.Error))
	}
	if result.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// MaterializeFromCard links a card that carries an inline prospect to a
// client record: an existing client with the same email in the organization,
// or a new one built from the card's inline fields. The boolean reports
// whether a client was created. A card already linked is returned unchanged.
func (r *ClientRepository) MaterializeFromCard(ctx context.Context, orgID, cardID uuid.UUID) (*model.Client, bool, error) {
	var (
		client  *model.Client
		created bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card model.Card
		if err := forUpdate(tx).Scopes(byOrg(orgID)).First(&card, "id = ?", cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCardNotFound
			}
			return fmt.Errorf("finding card: %w", classify(err))
		}

		if card.ClientID != nil {
			existing, err := findClient(tx, orgID, *card.ClientID)
			if err != nil {
				return err
			}
			client = existing
			return nil
		}
		if !card.HasInlineClient() {
			return domain.ErrClientInfoMissing
		}

		email := NormalizeEmail(*card.ClientEmail)
		existing, err := findClientByEmail(tx, orgID, email)
		switch {
		case err == nil:
			client = existing
		case errors.Is(err, domain.ErrClientNotFound):
			c := &model.Client{
				OrganizationID: orgID,
				Name:           card.InlineClientName(),
				Email:          email,
				ValueUSD:       card.Value,
			}
			if card.ClientCompany != nil {
				c.Company = strings.TrimSpace(*card.ClientCompany)
			}
			// a concurrent materialization may insert the same email first
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(c)
			if res.Error != nil {
				return fmt.Errorf("creating client: %w", classify(res.Error))
			}
			if res.RowsAffected == 0 {
				if c, err = findClientByEmail(tx, orgID, email); err != nil {
					return err
				}
			} else {
				created = true
			}
			client = c
		default:
			return err
		}

		err = tx.Model(&model.Card{}).Where("id = ?", card.ID).UpdateColumn("client_id", client.ID).Error
		if err != nil {
			return fmt.Errorf("linking card to client: %w", classify(err))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrClientInfoMissing) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("transaction failed: %w", err)
	}
	return client, created, nil
}

func findClient(tx *gorm.DB, orgID, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := tx.Scopes(byOrg(orgID)).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("finding client: %w", classify(err))
	}
	return &client, nil
}

func findClientByEmail(tx *gorm.DB, orgID uuid.UUID, email string) (*model.Client, error) {
	var client model.Client
	err := tx.Scopes(byOrg(orgID)).Where("email = ?", NormalizeEmail(email)).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("finding client by email: %w", classify(err))
	}
	return &client, nil
}
