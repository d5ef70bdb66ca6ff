// Package memory provides an in-process ledger store with the same
// semantics as the SQLite repository. It backs the memory backend and the
// service-level tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gastos/internal/core"
)

type Store struct {
	mu           sync.RWMutex
	categories   map[string]core.Category
	transactions map[string]core.Transaction
	seq          int64
}

func NewStore() *Store {
	return &Store{
		categories:   make(map[string]core.Category),
		transactions: make(map[string]core.Transaction),
	}
}

// nextCreatedAt produces strictly increasing timestamps so the insertion
// tie-break stays deterministic even within one wall-clock tick.
func (s *Store) nextCreatedAt() time.Time {
	s.seq++
	return time.Now().UTC().Add(time.Duration(s.seq) * time.Nanosecond)
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cats := make([]core.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Type != cats[j].Type {
			return cats[i].Type < cats[j].Type
		}
		return cats[i].Label < cats[j].Label
	})
	return cats, nil
}

func (s *Store) ListCategoriesByType(_ context.Context, typ core.TransactionType) ([]core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cats []core.Category
	for _, c := range s.categories {
		if c.Type == typ {
			cats = append(cats, c)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Label < cats[j].Label })
	return cats, nil
}

func (s *Store) GetCategory(_ context.Context, id string) (*core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *Store) GetCategoryByName(_ context.Context, name string) (*core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) CategoryNameExists(_ context.Context, name, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateCategory(_ context.Context, cat core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[cat.ID]; exists {
		return fmt.Errorf("category %s already exists", cat.ID)
	}
	now := time.Now().UTC()
	cat.CreatedAt = now
	cat.UpdatedAt = now
	s.categories[cat.ID] = cat
	return nil
}

func (s *Store) UpdateCategory(_ context.Context, cat core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[cat.ID]
	if !ok {
		return fmt.Errorf("category %s not found", cat.ID)
	}
	cat.CreatedAt = existing.CreatedAt
	cat.UpdatedAt = time.Now().UTC()
	s.categories[cat.ID] = cat
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return fmt.Errorf("category %s not found", id)
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		txs = append(txs, s.joined(t))
	}
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date.Time) {
			return txs[i].Date.After(txs[j].Date.Time)
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
	return txs, nil
}

// joined denormalizes category metadata onto the row, mirroring the SQL
// LEFT JOIN and its fallback for dangling references.
func (s *Store) joined(t core.Transaction) core.Transaction {
	if c, ok := s.categories[t.CategoryID]; ok {
		t.Category = c.Name
		t.CategoryLabel = c.Label
		icon := c.Icon
		t.CategoryIcon = &icon
	} else {
		t.Category = core.FallbackCategory
		t.CategoryLabel = core.FallbackCategory
		t.CategoryIcon = nil
	}
	return t
}

func (s *Store) GetTransaction(_ context.Context, id string) (*core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.transactions[id]; ok {
		joined := s.joined(t)
		return &joined, nil
	}
	return nil, nil
}

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[t.ID]; exists {
		return fmt.Errorf("transaction %s already exists", t.ID)
	}
	t.CreatedAt = s.nextCreatedAt()
	s.transactions[t.ID] = t
	return nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.transactions[t.ID]
	if !ok {
		return fmt.Errorf("transaction %s not found", t.ID)
	}
	t.CreatedAt = existing.CreatedAt
	s.transactions[t.ID] = t
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return fmt.Errorf("transaction %s not found", id)
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) CountTransactionsByCategory(_ context.Context, categoryID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, t := range s.transactions {
		if t.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *Store) TotalExpenses(_ context.Context) (core.ExpenseTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total core.ExpenseTotal
	for _, t := range s.transactions {
		if t.Type == core.Expense {
			total.Total += t.Amount
			total.Count++
		}
	}
	return total, nil
}
