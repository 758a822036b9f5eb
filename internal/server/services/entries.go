package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/asorokin/decat/internal/common"
	"github.com/asorokin/decat/internal/server/config"
	"github.com/asorokin/decat/internal/server/models"
	"github.com/asorokin/decat/internal/server/repositories/entries"
	"github.com/asorokin/decat/internal/server/repositories/repomanager"
)

// maxPageSize caps a single listing page regardless of what the client asks for.
const maxPageSize = 100

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *EntryService {
	return &EntryService{db: db, repomanager: m, config: cfg}
}

// List returns one page of the user's entries plus the total count matching
// the filter.
func (s *EntryService) List(ctx context.Context, userID string, q entries.ListQuery) ([]models.Entry, int64, error) {
	if q.Limit <= 0 || q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.repomanager.Entries(s.db).List(ctx, userID, q)
}

// Create validates and stores a new entry on behalf of userID, returning it
// with the server-assigned id and timestamp.
func (s *EntryService) Create(ctx context.Context, userID string, entry *models.Entry) (*models.Entry, error) {
	if err := validateFields(entry); err != nil {
		return nil, err
	}
	entry.CreatedBy = userID
	return s.repomanager.Entries(s.db).Insert(ctx, entry)
}

// Update replaces the four text fields of the user's entry.
func (s *EntryService) Update(ctx context.Context, userID string, entry *models.Entry) (*models.Entry, error) {
	if err := validateFields(entry); err != nil {
		return nil, err
	}
	entry.CreatedBy = userID
	return s.repomanager.Entries(s.db).Update(ctx, entry)
}

// Delete removes the user's entry by id.
func (s *EntryService) Delete(ctx context.Context, userID string, id int64) error {
	return s.repomanager.Entries(s.db).Delete(ctx, userID, id)
}

// validateFields enforces the "required non-empty" rule for the four
// reflection fields at creation and edit time.
func validateFields(entry *models.Entry) error {
	for _, f := range []string{entry.WorstCase, entry.WorstConsequences, entry.WhatCanIDo, entry.HowWillICope} {
		if strings.TrimSpace(f) == "" {
			return common.ErrorEmptyField
		}
	}
	return nil
}
