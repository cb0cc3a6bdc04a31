// Package rules provides per-shop persistence and validation for gallery
// rules and their global settings. Collections model the shop metafield the
// admin app stores rules in: one ordered rule list plus settings per shop.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/gallerykit/gallery-engine/internal/errors"
	"github.com/gallerykit/gallery-engine/model"
)

// ShopRules bundles one shop's ordered rule list and global settings.
type ShopRules struct {
	Rules    []model.Rule         `json:"rules"`
	Settings model.GlobalSettings `json:"settings"`
}

// RuleStore is the persistence interface for shop rule collections.
type RuleStore interface {
	GetShopRules(shop string) (ShopRules, error)
	AddShopRule(shop string, rule model.Rule) (model.Rule, error)
	UpdateShopRule(shop string, rule model.Rule) error
	DeleteShopRule(shop, ruleID string) error
	ReorderShopRules(shop string, orderedIDs []string) error
	UpdateGlobalSettings(shop string, settings model.GlobalSettings) error
}

// MemoryRuleStore is an in-memory implementation of the RuleStore interface
type MemoryRuleStore struct {
	shops map[string]*ShopRules
	mutex sync.RWMutex
}

// NewMemoryRuleStore creates a new in-memory rule store
func NewMemoryRuleStore() *MemoryRuleStore {
	return &MemoryRuleStore{
		shops: make(map[string]*ShopRules),
	}
}

// GetShopRules retrieves a shop's rule collection. Shops that never stored
// anything get an empty collection with default settings.
func (s *MemoryRuleStore) GetShopRules(shop string) (ShopRules, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.shops[shop]
	if !exists {
		return ShopRules{Rules: []model.Rule{}, Settings: model.DefaultGlobalSettings()}, nil
	}
	return cloneShopRules(*record), nil
}

// AddShopRule validates and appends a rule to the shop's collection.
func (s *MemoryRuleStore) AddShopRule(shop string, rule model.Rule) (model.Rule, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record := s.shopRecord(shop)

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if findRule(record.Rules, rule.ID) >= 0 {
		return model.Rule{}, fmt.Errorf("rule with ID %s already exists: %w", rule.ID, apperrors.ErrRuleAlreadyExists)
	}

	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	if rule.Status == "" {
		rule.Status = model.RuleStatusDraft
	}

	if err := ValidateRule(rule); err != nil {
		return model.Rule{}, fmt.Errorf("invalid rule: %w", err)
	}

	record.Rules = append(record.Rules, rule)
	return rule, nil
}

// UpdateShopRule replaces an existing rule, preserving its creation timestamp.
func (s *MemoryRuleStore) UpdateShopRule(shop string, rule model.Rule) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.shops[shop]
	if !exists {
		return apperrors.NewRuleNotFoundError(rule.ID, shop)
	}
	idx := findRule(record.Rules, rule.ID)
	if idx < 0 {
		return apperrors.NewRuleNotFoundError(rule.ID, shop)
	}

	rule.CreatedAt = record.Rules[idx].CreatedAt
	rule.UpdatedAt = time.Now()

	if err := ValidateRule(rule); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}

	record.Rules[idx] = rule
	return nil
}

// DeleteShopRule removes a rule from the shop's collection.
func (s *MemoryRuleStore) DeleteShopRule(shop, ruleID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.shops[shop]
	if !exists {
		return apperrors.NewRuleNotFoundError(ruleID, shop)
	}
	idx := findRule(record.Rules, ruleID)
	if idx < 0 {
		return apperrors.NewRuleNotFoundError(ruleID, shop)
	}

	record.Rules = append(record.Rules[:idx], record.Rules[idx+1:]...)
	return nil
}

// ReorderShopRules rewrites the collection order (and priorities) to match
// orderedIDs, which must be a permutation of the stored rule IDs.
func (s *MemoryRuleStore) ReorderShopRules(shop string, orderedIDs []string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.shops[shop]
	if !exists {
		return apperrors.NewShopNotFoundError(shop)
	}

	reordered, err := reorderRules(record.Rules, orderedIDs)
	if err != nil {
		return err
	}
	record.Rules = reordered
	return nil
}

// UpdateGlobalSettings replaces the shop's settings.
func (s *MemoryRuleStore) UpdateGlobalSettings(shop string, settings model.GlobalSettings) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record := s.shopRecord(shop)
	record.Settings = settings.Normalize()
	return nil
}

// shopRecord returns the shop's record, creating a default one if needed.
// Callers must hold the write lock.
func (s *MemoryRuleStore) shopRecord(shop string) *ShopRules {
	record, exists := s.shops[shop]
	if !exists {
		record = &ShopRules{Rules: []model.Rule{}, Settings: model.DefaultGlobalSettings()}
		s.shops[shop] = record
	}
	return record
}

// FileRuleStore is a file-based implementation of the RuleStore interface
type FileRuleStore struct {
	shops        map[string]*ShopRules
	mutex        sync.RWMutex
	dataFilePath string
}

// NewFileRuleStore creates a new file-based rule store
func NewFileRuleStore(dataDir string) *FileRuleStore {
	store := &FileRuleStore{
		shops:        make(map[string]*ShopRules),
		dataFilePath: filepath.Join(dataDir, "rules.json"),
	}

	// Load existing rules data
	if err := store.loadData(); err != nil {
		// If file doesn't exist, that's fine - we'll create it on first save
		if !os.IsNotExist(err) {
			fmt.Printf("Warning: Failed to load rules data: %v\n", err)
		}
	}

	return store
}

// GetShopRules retrieves a shop's rule collection. Shops that never stored
// anything get an empty collection with default settings.
func (s *FileRuleStore) GetShopRules(shop string) (ShopRules, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.shops[shop]
	if !exists {
		return ShopRules{Rules: []model.Rule{}, Settings: model.DefaultGlobalSettings()}, nil
	}
	return cloneShopRules(*record), nil
}

// AddShopRule validates, appends and persists a rule.
func (s *FileRuleStore) AddShopRule(shop string, rule model.Rule) (model.Rule, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.shops[shop]
	if !exists {
		record = &ShopRules{Rules: []model.Rule{}, Settings: model.DefaultGlobalSettings()}
		s.shops[shop] = record
	}

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if findRule(record.Rules, rule.ID) >= 0 {
		return model.Rule{}, fmt.Errorf("rule with ID %s already exists: %w", rule.ID, apperrors.ErrRuleAlreadyExists)
	}

	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	if rule.Status == "" {
		rule.Status = model.RuleStatusDraft
	}

	if err := ValidateRule(rule); err != nil {
		return model.Rule{}, fmt.Errorf("invalid rule: %w", err)
	}

	record.Rules = append(record.Rules, rule)

	// Persist to disk
	if err := s.saveData(); err != nil {
		// Rollback the in-memory change
		record.Rules = record.Rules[:len(record.Rules)-1]
		return model.Rule{}, fmt.Errorf("failed to persist rule: %w", err)
	}

	return rule, nil
}

// UpdateShopRule replaces an existing rule and persists the collection.
func (s *FileRuleStore) UpdateShopRule(shop string, rule model.Rule) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.shops[shop]
	if !exists {
		return apperrors.NewRuleNotFoundError(rule.ID, shop)
	}
	idx := findRule(record.Rules, rule.ID)
	if idx < 0 {
		return apperrors.NewRuleNotFoundError(rule.ID, shop)
	}

	rule.CreatedAt = record.Rules[idx].CreatedAt
	rule.UpdatedAt = time.Now()

	if err := ValidateRule(rule); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}

	oldRule := record.Rules[idx]
	record.Rules[idx] = rule

	// Persist to disk
	if err := s.saveData(); err != nil {
		// Rollback the in-memory change
		record.Rules[idx] = oldRule
		return fmt.Errorf("failed to persist rule update: %w", err)
	}

	return nil
}

// DeleteShopRule removes a rule and persists the collection.
func (s *FileRuleStore) DeleteShopRule(shop, ruleID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.shops[shop]
	if !exists {
		return apperrors.NewRuleNotFoundError(ruleID, shop)
	}
	idx := findRule(record.Rules, ruleID)
	if idx < 0 {
		return apperrors.NewRuleNotFoundError(ruleID, shop)
	}

	oldRules := cloneRules(record.Rules)
	record.Rules = append(record.Rules[:idx], record.Rules[idx+1:]...)

	// Persist to disk
	if err := s.saveData(); err != nil {
		// Rollback the in-memory change
		record.Rules = oldRules
		return fmt.Errorf("failed to persist rule deletion: %w", err)
	}

	return nil
}

// ReorderShopRules rewrites the collection order (and priorities) and
// persists it.
func (s *FileRuleStore) ReorderShopRules(shop string, orderedIDs []string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.shops[shop]
	if !exists {
		return apperrors.NewShopNotFoundError(shop)
	}

	reordered, err := reorderRules(record.Rules, orderedIDs)
	if err != nil {
		return err
	}

	oldRules := record.Rules
	record.Rules = reordered

	if err := s.saveData(); err != nil {
		record.Rules = oldRules
		return fmt.Errorf("failed to persist rule reorder: %w", err)
	}

	return nil
}

// UpdateGlobalSettings replaces and persists the shop's settings.
func (s *FileRuleStore) UpdateGlobalSettings(shop string, settings model.GlobalSettings) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.shops[shop]
	if !exists {
		record = &ShopRules{Rules: []model.Rule{}, Settings: model.DefaultGlobalSettings()}
		s.shops[shop] = record
	}

	oldSettings := record.Settings
	record.Settings = settings.Normalize()

	if err := s.saveData(); err != nil {
		record.Settings = oldSettings
		return fmt.Errorf("failed to persist settings: %w", err)
	}

	return nil
}

// loadData loads shop collections from the data file
func (s *FileRuleStore) loadData() error {
	// Ensure directory exists
	dir := filepath.Dir(s.dataFilePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Read file
	data, err := os.ReadFile(s.dataFilePath)
	if err != nil {
		return err
	}

	// Parse JSON
	var shops map[string]*ShopRules
	if err := json.Unmarshal(data, &shops); err != nil {
		return fmt.Errorf("failed to parse rules data: %w", err)
	}

	s.shops = shops
	if s.shops == nil {
		s.shops = make(map[string]*ShopRules)
	}

	return nil
}

// saveData saves shop collections to the data file
func (s *FileRuleStore) saveData() error {
	data, err := json.MarshalIndent(s.shops, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rules data: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(s.dataFilePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Write to file
	if err := os.WriteFile(s.dataFilePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write rules data: %w", err)
	}

	return nil
}

// findRule returns the index of the rule with the given ID, or -1.
func findRule(rules []model.Rule, ruleID string) int {
	for i, rule := range rules {
		if rule.ID == ruleID {
			return i
		}
	}
	return -1
}

// reorderRules rebuilds the rule list in the order of orderedIDs, reassigning
// priorities to match the new order. orderedIDs must name every stored rule
// exactly once.
func reorderRules(rules []model.Rule, orderedIDs []string) ([]model.Rule, error) {
	if len(orderedIDs) != len(rules) {
		return nil, apperrors.NewValidationError("rule_ids",
			fmt.Sprintf("expected %d rule IDs, got %d", len(rules), len(orderedIDs)))
	}

	byID := make(map[string]model.Rule, len(rules))
	for _, rule := range rules {
		byID[rule.ID] = rule
	}

	reordered := make([]model.Rule, 0, len(rules))
	seen := make(map[string]bool, len(orderedIDs))
	for i, id := range orderedIDs {
		rule, exists := byID[id]
		if !exists {
			return nil, apperrors.NewRuleNotFoundError(id)
		}
		if seen[id] {
			return nil, apperrors.NewValidationError("rule_ids", fmt.Sprintf("duplicate rule ID '%s'", id))
		}
		seen[id] = true
		rule.Priority = i
		rule.UpdatedAt = time.Now()
		reordered = append(reordered, rule)
	}

	return reordered, nil
}

// cloneShopRules deep-copies a collection so callers cannot mutate stored
// state through the returned slices.
func cloneShopRules(record ShopRules) ShopRules {
	return ShopRules{
		Rules:    cloneRules(record.Rules),
		Settings: record.Settings,
	}
}

func cloneRules(rules []model.Rule) []model.Rule {
	out := make([]model.Rule, len(rules))
	copy(out, rules)
	return out
}
