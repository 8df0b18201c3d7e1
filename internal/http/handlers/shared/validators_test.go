package shared

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type scheduleDateProbe struct {
	ScheduleDate string `json:"schedule_date" binding:"required,schedule_date"`
}

type idsProbe struct {
	CartLineIDs []uint `json:"cart_line_ids" binding:"ids_unique"`
}

func TestRegisterValidators(t *testing.T) {
	if err := RegisterValidators(); err != nil {
		t.Fatalf("register validators failed: %v", err)
	}
	// 重复注册幂等
	if err := RegisterValidators(); err != nil {
		t.Fatalf("second register failed: %v", err)
	}

	dateCases := []struct {
		value string
		ok    bool
	}{
		{value: "2025-03-10", ok: true},
		{value: "10/03/2025", ok: false},
		{value: "2025-02-30", ok: false},
		{value: "", ok: false},
	}
	for _, tc := range dateCases {
		err := binding.Validator.ValidateStruct(&scheduleDateProbe{ScheduleDate: tc.value})
		if (err == nil) != tc.ok {
			t.Fatalf("schedule_date %q: want ok=%v got err=%v", tc.value, tc.ok, err)
		}
	}

	idCases := []struct {
		name string
		ids  []uint
		ok   bool
	}{
		{name: "empty", ids: nil, ok: true},
		{name: "distinct", ids: []uint{1, 2, 3}, ok: true},
		{name: "duplicate", ids: []uint{4, 4}, ok: false},
		{name: "zero", ids: []uint{0, 1}, ok: false},
	}
	for _, tc := range idCases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&idsProbe{CartLineIDs: tc.ids})
			if (err == nil) != tc.ok {
				t.Fatalf("want ok=%v got err=%v", tc.ok, err)
			}
		})
	}
}
