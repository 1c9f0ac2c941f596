package model

import (
	"encoding/json"
	"testing"
)

func TestAlertJSON(t *testing.T) {
	tests := []struct {
		name     string
		alert    Alert
		wantKeys []string
		noKeys   []string
	}{
		{
			name:     "zero budget kept",
			alert:    Alert{Type: AlertBudgetExceeded, Category: CategoryLoyer, Spent: 10, Budget: 0},
			wantKeys: []string{"type", "category", "spent", "budget"},
			noKeys:   []string{"message"},
		},
		{
			name:     "high spending has no amounts",
			alert:    Alert{Type: AlertHighSpending, Message: "Vos dépenses sont élevées ce mois-ci"},
			wantKeys: []string{"type", "message"},
			noKeys:   []string{"spent", "budget", "category"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.alert)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var out map[string]interface{}
			if err := json.Unmarshal(data, &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			for _, k := range tt.wantKeys {
				if _, ok := out[k]; !ok {
					t.Errorf("expected key %q in %s", k, data)
				}
			}
			for _, k := range tt.noKeys {
				if _, ok := out[k]; ok {
					t.Errorf("unexpected key %q in %s", k, data)
				}
			}
		})
	}
}
