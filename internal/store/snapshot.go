package store

import (
	"encoding/json"
	"fmt"

	"MoneyWise/internal/model"
)

// Keys under which the ledger state is stored.
const (
	TransactionsKey = "financial_data"
	BudgetsKey      = "budgets"
)

// Snapshot persists whole-state JSON snapshots of the ledger on top of a KV.
type Snapshot struct {
	kv KV
}

func NewSnapshot(kv KV) *Snapshot {
	return &Snapshot{kv: kv}
}

// LoadTransactions returns the stored transactions, or an empty list when none were saved.
func (s *Snapshot) LoadTransactions() ([]model.Transaction, error) {
	data, ok, err := s.kv.Get(TransactionsKey)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	txs := []model.Transaction{}
	if !ok || len(data) == 0 {
		return txs, nil
	}
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return txs, nil
}

// SaveTransactions overwrites the stored list.
func (s *Snapshot) SaveTransactions(txs []model.Transaction) error {
	if txs == nil {
		txs = []model.Transaction{}
	}
	data, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := s.kv.Set(TransactionsKey, data); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

// LoadBudgets returns the stored budgets, or nil when none were saved.
func (s *Snapshot) LoadBudgets() (map[model.Category]float64, error) {
	data, ok, err := s.kv.Get(BudgetsKey)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}
	var budgets map[model.Category]float64
	if err := json.Unmarshal(data, &budgets); err != nil {
		return nil, fmt.Errorf("decode budgets: %w", err)
	}
	return budgets, nil
}

// SaveBudgets overwrites the stored budgets.
func (s *Snapshot) SaveBudgets(budgets map[model.Category]float64) error {
	data, err := json.MarshalIndent(budgets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode budgets: %w", err)
	}
	if err := s.kv.Set(BudgetsKey, data); err != nil {
		return fmt.Errorf("save budgets: %w", err)
	}
	return nil
}
