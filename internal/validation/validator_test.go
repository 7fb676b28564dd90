// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"errors"
	"testing"
)

type pageRequest struct {
	Page  int `validate:"min=1"`
	Limit int `validate:"min=1,max=100"`
}

func TestValidateStructPasses(t *testing.T) {
	if err := ValidateStruct(&pageRequest{Page: 1, Limit: 20}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}
}

func TestValidateStructFieldError(t *testing.T) {
	err := ValidateStruct(&pageRequest{Page: 0, Limit: 20})
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fe.Field != "page" {
		t.Errorf("unexpected field: %s", fe.Field)
	}
	if fe.Reason != "must be at least 1" {
		t.Errorf("unexpected reason: %s", fe.Reason)
	}
}

func TestValidateStructMaxBound(t *testing.T) {
	err := ValidateStruct(&pageRequest{Page: 1, Limit: 500})
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fe.Field != "limit" {
		t.Errorf("unexpected field: %s", fe.Field)
	}
}
