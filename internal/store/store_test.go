package store

import (
	"path/filepath"
	"testing"
	"time"

	"MoneyWise/internal/model"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()
	fileKV, err := NewFileKV(filepath.Join(dir, "files"))
	if err != nil {
		t.Fatalf("file kv: %v", err)
	}
	sqliteKV, err := NewSQLiteKV(filepath.Join(dir, "store.db"))
	if err != nil {
		t.Fatalf("sqlite kv: %v", err)
	}
	t.Cleanup(func() { sqliteKV.Close() })
	return map[string]KV{
		"memory": NewMemoryKV(),
		"file":   fileKV,
		"sqlite": sqliteKV,
	}
}

func TestKV_GetSet(t *testing.T) {
	for name, kv := range backends(t) {
		if _, ok, err := kv.Get("missing"); err != nil || ok {
			t.Errorf("%s: expected missing key, got ok=%v err=%v", name, ok, err)
		}
		if err := kv.Set("k", []byte("v1")); err != nil {
			t.Fatalf("%s: set: %v", name, err)
		}
		if err := kv.Set("k", []byte("v2")); err != nil {
			t.Fatalf("%s: overwrite: %v", name, err)
		}
		got, ok, err := kv.Get("k")
		if err != nil || !ok || string(got) != "v2" {
			t.Errorf("%s: expected v2, got %q ok=%v err=%v", name, got, ok, err)
		}
	}
}

func TestFileKV_RejectsPathKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Set("../escape", []byte("x")); err == nil {
		t.Error("expected error for key with path separators")
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("redis", ""); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestSnapshot(t *testing.T) {
	for name, kv := range backends(t) {
		s := NewSnapshot(kv)

		txs, err := s.LoadTransactions()
		if err != nil || txs == nil || len(txs) != 0 {
			t.Errorf("%s: expected empty non-nil list, got %v err=%v", name, txs, err)
		}
		if b, err := s.LoadBudgets(); err != nil || b != nil {
			t.Errorf("%s: expected nil budgets, got %v err=%v", name, b, err)
		}

		now := time.Date(2025, time.June, 7, 9, 30, 0, 0, time.UTC)
		want := []model.Transaction{
			model.NewTransaction(0, 2500, "salaire", "Salaire mensuel", now),
			model.NewTransaction(1, -800, model.CategoryLoyer, "Loyer", now),
		}
		if err := s.SaveTransactions(want); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		got, err := s.LoadTransactions()
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if len(got) != 2 || got[1] != want[1] || got[0].CategoryEncoded != 7 {
			t.Errorf("%s: unexpected transactions %+v", name, got)
		}

		if err := s.SaveTransactions(nil); err != nil {
			t.Fatalf("%s: save empty: %v", name, err)
		}
		if got, _ := s.LoadTransactions(); len(got) != 0 {
			t.Errorf("%s: expected empty list after reset, got %d", name, len(got))
		}

		if err := s.SaveBudgets(map[model.Category]float64{model.CategoryLoyer: 900}); err != nil {
			t.Fatalf("%s: save budgets: %v", name, err)
		}
		b, err := s.LoadBudgets()
		if err != nil || b[model.CategoryLoyer] != 900 {
			t.Errorf("%s: expected loyer budget 900, got %v err=%v", name, b, err)
		}
	}
}
