// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package validation

import (
	"strings"
	"sync"
	"testing"
)

type pageRequest struct {
	Limit  int `validate:"min=1,max=100"`
	Offset int `validate:"min=0"`
}

func TestValidateStructPasses(t *testing.T) {
	if err := ValidateStruct(&pageRequest{Limit: 30, Offset: 0}); err != nil {
		t.Fatalf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructSingleFailure(t *testing.T) {
	err := ValidateStruct(&pageRequest{Limit: 500, Offset: 0})
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if len(err.Errors()) != 1 {
		t.Fatalf("got %d field errors, want 1", len(err.Errors()))
	}
	fe := err.Errors()[0]
	if fe.Field() != "Limit" || fe.Tag() != "max" {
		t.Errorf("field error = (%s, %s), want (Limit, max)", fe.Field(), fe.Tag())
	}
	if !strings.Contains(fe.Error(), "at most 100") {
		t.Errorf("message = %q, want mention of the limit", fe.Error())
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	err := ValidateStruct(&pageRequest{Limit: 0, Offset: -1})
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("got %d field errors, want 2", len(err.Errors()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("combined message = %q, want joined messages", err.Error())
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	var wg sync.WaitGroup
	instances := make([]interface{}, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			instances[i] = GetValidator()
		}(i)
	}
	wg.Wait()

	for i := 1; i < 8; i++ {
		if instances[i] != instances[0] {
			t.Fatal("GetValidator() returned distinct instances")
		}
	}
}
