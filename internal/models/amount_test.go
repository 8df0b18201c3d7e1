package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAmountUnmarshalJSON(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    Amount
		wantErr error
	}{
		{name: "number", input: `50000`, want: 50000},
		{name: "string", input: `"75000"`, want: 75000},
		{name: "trailing zero fraction", input: `"125000.00"`, want: 125000},
		{name: "fraction", input: `12.5`, wantErr: ErrAmountNotIntegral},
		{name: "negative", input: `-1`, wantErr: ErrAmountNegative},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got Amount
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestAmountMarshalsAsInteger(t *testing.T) {
	payload, err := json.Marshal(struct {
		Total Amount `json:"total"`
	}{Total: 125000})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(payload) != `{"total":125000}` {
		t.Fatalf("unexpected payload: %s", payload)
	}
}

func TestSumAmounts(t *testing.T) {
	if got := SumAmounts(50000, 75000); got != 125000 {
		t.Fatalf("expected 125000, got %d", got)
	}
	if got := SumAmounts(); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestAmountGrouped(t *testing.T) {
	cases := map[Amount]string{
		0:       "0",
		950:     "950",
		50000:   "50.000",
		125000:  "125.000",
		1250000: "1.250.000",
		-75000:  "-75.000",
	}
	for amount, want := range cases {
		if got := amount.Grouped(); got != want {
			t.Fatalf("Grouped(%d)=%q want %q", amount, got, want)
		}
	}
}
