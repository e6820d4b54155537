// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

// Classifier is a mock implementation of ports.Classifier.
type Classifier struct {
	// ExtractBrands return values, consumed per call when BrandsPerCall is set.
	Brands        []entities.BrandObservation
	BrandsPerCall [][]entities.BrandObservation
	BrandsErrs    []error
	BrandsErr     error

	// ExtractCategories return values
	Categories    []string
	CategoriesErr error

	// GroupDuplicates return values
	Groups    []entities.Grouping
	GroupsErr error

	ExtractCalls  int
	CategoryCalls int
	GroupCalls    int
}

// ExtractBrands returns the configured observations or error.
func (m *Classifier) ExtractBrands(ctx context.Context, text string) ([]entities.BrandObservation, error) {
	call := m.ExtractCalls
	m.ExtractCalls++
	if call < len(m.BrandsErrs) && m.BrandsErrs[call] != nil {
		return nil, m.BrandsErrs[call]
	}
	if m.BrandsErr != nil {
		return nil, m.BrandsErr
	}
	if call < len(m.BrandsPerCall) {
		return m.BrandsPerCall[call], nil
	}
	return m.Brands, nil
}

// ExtractCategories returns the configured categories or error.
func (m *Classifier) ExtractCategories(ctx context.Context, brand string, contexts []string) ([]string, error) {
	m.CategoryCalls++
	if m.CategoriesErr != nil {
		return nil, m.CategoriesErr
	}
	return m.Categories, nil
}

// GroupDuplicates returns the configured groupings or error.
func (m *Classifier) GroupDuplicates(ctx context.Context, names []string) ([]entities.Grouping, error) {
	m.GroupCalls++
	if m.GroupsErr != nil {
		return nil, m.GroupsErr
	}
	return m.Groups, nil
}
