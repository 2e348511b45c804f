package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
)

// Principals resolves the authenticated identity behind a request into a
// role-checked user record. One capability check per role instead of ad hoc
// field checks scattered over the endpoints.
type Principals struct {
	users UserStore
}

func NewPrincipals(users UserStore) *Principals {
	return &Principals{users: users}
}

func (p *Principals) AsBuyer(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return p.as(ctx, id, models.RoleBuyer)
}

func (p *Principals) AsSeller(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return p.as(ctx, id, models.RoleSeller)
}

func (p *Principals) AsAdmin(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return p.as(ctx, id, models.RoleAdmin)
}

func (p *Principals) as(ctx context.Context, id primitive.ObjectID, role string) (*models.User, error) {
	user, err := p.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("principals: load user: %w", err)
	}
	if user == nil || user.Role != role {
		return nil, ErrNotAuthorized
	}
	return user, nil
}
