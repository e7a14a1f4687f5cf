package components

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"uiforge/internal/storage"
	"uiforge/pkg/models"
)

var ErrValidation = errors.New("components: validation failed")

// Patch names the fields an update should touch; nil means leave as is.
type Patch struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

func (p Patch) fields() map[string]string {
	fields := make(map[string]string, 3)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Code != nil {
		fields["code"] = *p.Code
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	return fields
}

type Repo struct {
	Store *storage.Store
}

func NewRepo(store *storage.Store) *Repo {
	return &Repo{Store: store}
}

func (r *Repo) List(ctx context.Context) ([]models.Component, error) {
	return r.Store.ListComponents(ctx)
}

func (r *Repo) Get(ctx context.Context, id string) (*models.Component, error) {
	return r.Store.GetComponent(ctx, id)
}

func (r *Repo) Create(ctx context.Context, name, code, description string) (*models.Component, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: name and code are required", ErrValidation)
	}
	return r.Store.CreateComponent(ctx, models.Component{
		ID:          storage.NewID("component"),
		Name:        name,
		Code:        code,
		Description: description,
	})
}

// Update applies p and reports whether a row changed. A missing id or an
// empty patch changes nothing and is not an error.
func (r *Repo) Update(ctx context.Context, id string, p Patch) (bool, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return false, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if p.Code != nil && strings.TrimSpace(*p.Code) == "" {
		return false, fmt.Errorf("%w: code cannot be empty", ErrValidation)
	}
	return r.Store.UpdateComponent(ctx, id, p.fields())
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.Store.DeleteComponent(ctx, id)
}
