package service

import (
	"context"
	"iter"

	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/repository"
)

// ProjectService handles project-related business logic
type ProjectService struct {
	store repository.Store
}

// NewProjectService creates a new project service
func NewProjectService(store repository.Store) *ProjectService {
	return &ProjectService{
		store: store,
	}
}

// List returns the lazy, one-shot project sequence ordered by ordem
func (s *ProjectService) List(ctx context.Context) iter.Seq2[domain.Project, error] {
	return s.store.List(ctx)
}

// Snapshot reads the whole collection once
func (s *ProjectService) Snapshot(ctx context.Context) ([]domain.Project, error) {
	items, err := repository.Collect(s.store.List(ctx))
	if err != nil {
		logutils.Log.WithError(err).Error("list projects failed")
		return nil, err
	}
	return items, nil
}

// Get retrieves one project
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.store.Get(ctx, id)
}

// Create stores a new project and returns its id
func (s *ProjectService) Create(ctx context.Context, in domain.ProjectInput) (string, error) {
	id, err := s.store.Create(ctx, in)
	if err != nil {
		logutils.Log.WithError(err).WithField("titulo", in.Title).Error("create project failed")
		return "", err
	}
	logutils.Log.WithFields(logutils.Fields{"id": id, "titulo": in.Title}).Info("project created")
	return id, nil
}

// Update overwrites a project
func (s *ProjectService) Update(ctx context.Context, id string, in domain.ProjectInput) error {
	if err := s.store.Update(ctx, id, in); err != nil {
		logutils.Log.WithError(err).WithField("id", id).Error("update project failed")
		return err
	}
	logutils.Log.WithField("id", id).Info("project updated")
	return nil
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		logutils.Log.WithError(err).WithField("id", id).Error("delete project failed")
		return err
	}
	logutils.Log.WithField("id", id).Info("project deleted")
	return nil
}

// Seed inserts items only when the collection is empty and reports how many were added.
func (s *ProjectService) Seed(ctx context.Context, items []domain.ProjectInput) (int, error) {
	existing, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, in := range items {
		if _, err := s.Create(ctx, in.WithDefaults()); err != nil {
			return i, err
		}
	}
	return len(items), nil
}
