// Package artifacts persists pipeline artifacts as flat JSON files and gives
// each stage an explicit precondition check instead of ad hoc path probing.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

// ErrArtifactMissing marks a required upstream artifact that has not been
// produced yet. A phase hitting it aborts immediately with nothing written.
var ErrArtifactMissing = errors.New("required artifact missing")

// Kind identifies one artifact type in the pipeline.
type Kind string

const (
	KindPosts            Kind = "posts"
	KindCorpus           Kind = "corpus"
	KindRawBrands        Kind = "raw_brands"
	KindBrands           Kind = "brands"
	KindAliases          Kind = "brand_aliases"
	KindRunMentions      Kind = "brand_search_mentions"
	KindCategories       Kind = "categories"
	KindCategoryMentions Kind = "brand_category_mentions"
	KindMasterBrands     Kind = "master_brands"
	KindMasterRelations  Kind = "master_brandtobrand"
)

// fileNames maps each kind to its on-disk file name.
var fileNames = map[Kind]string{
	KindPosts:            "posts.json",
	KindCorpus:           "corpus.json",
	KindRawBrands:        "raw_brands.json",
	KindBrands:           "brands.json",
	KindAliases:          "brand_aliases.json",
	KindRunMentions:      "brand_search_mentions.json",
	KindCategories:       "categories.json",
	KindCategoryMentions: "brand_category_mentions.json",
	KindMasterBrands:     "master_brands.json",
	KindMasterRelations:  "master_brandtobrand.json",
}

// MasterState is the cumulative cross-run registry, loaded once at the start
// of the master phase and saved once at the end. The merge logic itself only
// ever sees this value, never the files.
type MasterState struct {
	Brands    []entities.Entity
	Relations []entities.BrandRelation
}

// Store reads and writes pipeline artifacts. Per-run artifacts live in the
// run directory, master artifacts in the master directory.
type Store struct {
	runDir    string
	masterDir string
}

// NewStore creates a store over the given directories.
func NewStore(runDir, masterDir string) *Store {
	return &Store{runDir: runDir, masterDir: masterDir}
}

// Path returns the file path for an artifact kind.
func (s *Store) Path(kind Kind) string {
	dir := s.runDir
	if kind == KindMasterBrands || kind == KindMasterRelations {
		dir = s.masterDir
	}
	return filepath.Join(dir, fileNames[kind])
}

// Has reports whether the artifact exists on disk.
func (s *Store) Has(kind Kind) bool {
	_, err := os.Stat(s.Path(kind))
	return err == nil
}

// LoadPosts reads the search-phase output.
func (s *Store) LoadPosts() ([]entities.Post, error) {
	return load[entities.Post](s, KindPosts)
}

// SavePosts writes the search-phase output.
func (s *Store) SavePosts(posts []entities.Post) error {
	return save(s, KindPosts, posts)
}

// LoadCorpus reads the enriched post+comment corpus.
func (s *Store) LoadCorpus() ([]entities.Thread, error) {
	return load[entities.Thread](s, KindCorpus)
}

// SaveCorpus writes the enriched post+comment corpus.
func (s *Store) SaveCorpus(corpus []entities.Thread) error {
	return save(s, KindCorpus, corpus)
}

// LoadRawBrands reads the raw brand observations.
func (s *Store) LoadRawBrands() ([]entities.Entity, error) {
	return load[entities.Entity](s, KindRawBrands)
}

// SaveRawBrands writes the raw brand observations.
func (s *Store) SaveRawBrands(brands []entities.Entity) error {
	return save(s, KindRawBrands, brands)
}

// LoadBrands reads the deduplicated per-run brand list.
func (s *Store) LoadBrands() ([]entities.Entity, error) {
	return load[entities.Entity](s, KindBrands)
}

// SaveBrands writes the deduplicated per-run brand list.
func (s *Store) SaveBrands(brands []entities.Entity) error {
	return save(s, KindBrands, brands)
}

// SaveAliases writes the alias table.
func (s *Store) SaveAliases(aliases []entities.Alias) error {
	return save(s, KindAliases, aliases)
}

// LoadRunMentions reads the per-run subject ledger.
func (s *Store) LoadRunMentions() ([]entities.SearchMention, error) {
	return load[entities.SearchMention](s, KindRunMentions)
}

// SaveRunMentions writes the per-run subject ledger.
func (s *Store) SaveRunMentions(mentions []entities.SearchMention) error {
	return save(s, KindRunMentions, mentions)
}

// LoadCategories reads the category list.
func (s *Store) LoadCategories() ([]entities.Entity, error) {
	return load[entities.Entity](s, KindCategories)
}

// SaveCategories writes the category list.
func (s *Store) SaveCategories(categories []entities.Entity) error {
	return save(s, KindCategories, categories)
}

// LoadCategoryMentions reads the brand-category relationship list.
func (s *Store) LoadCategoryMentions() ([]entities.CategoryMention, error) {
	return load[entities.CategoryMention](s, KindCategoryMentions)
}

// SaveCategoryMentions writes the brand-category relationship list.
func (s *Store) SaveCategoryMentions(mentions []entities.CategoryMention) error {
	return save(s, KindCategoryMentions, mentions)
}

// LoadMaster reads the cumulative registry and ledger. Missing files mean a
// fresh start, not an error.
func (s *Store) LoadMaster() (MasterState, error) {
	var state MasterState
	if s.Has(KindMasterBrands) {
		brands, err := load[entities.Entity](s, KindMasterBrands)
		if err != nil {
			return state, err
		}
		state.Brands = brands
	}
	if s.Has(KindMasterRelations) {
		relations, err := load[entities.BrandRelation](s, KindMasterRelations)
		if err != nil {
			return state, err
		}
		state.Relations = relations
	}
	return state, nil
}

// SaveMaster writes the cumulative registry and ledger.
func (s *Store) SaveMaster(state MasterState) error {
	if err := save(s, KindMasterBrands, state.Brands); err != nil {
		return err
	}
	return save(s, KindMasterRelations, state.Relations)
}

// load reads one artifact, translating a missing file into ErrArtifactMissing.
func load[T any](s *Store, kind Kind) ([]T, error) {
	path := s.Path(kind)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return out, nil
}

// save writes one artifact atomically: temp file in the same directory, then
// rename, so a failed write never clobbers the previous artifact.
func save[T any](s *Store, kind Kind, items []T) error {
	path := s.Path(kind)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
