package forms_test

import (
	"reflect"
	"testing"

	"teamroster/internal/application/forms"
)

// TestValidateCollectsAllMessages tests that every failing rule across
// fields contributes its message, in rule order.
func TestValidateCollectsAllMessages(t *testing.T) {
	got := forms.Validate([]forms.Field{
		{Value: "", Rules: []forms.Rule{
			{Check: forms.Required, Message: "name is required"},
		}},
		{Value: "", Rules: []forms.Rule{
			{Check: forms.Required, Message: "activity is required"},
		}},
	})
	want := []string{"name is required", "activity is required"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() = %v, want %v", got, want)
	}
}

// TestValidatePassing tests that a fully valid submission yields nil.
func TestValidatePassing(t *testing.T) {
	got := forms.Validate([]forms.Field{
		{Value: "Chess Club", Rules: []forms.Rule{
			{Check: forms.Required, Message: "required"},
			{Check: forms.MaxLen(100), Message: "too long"},
		}},
	})
	if got != nil {
		t.Errorf("Validate() = %v, want nil", got)
	}
}

// TestValidateBail tests that a Bail rule is skipped once an earlier rule
// on the same field has failed, but still runs on a clean chain.
func TestValidateBail(t *testing.T) {
	uniqueCalled := false
	unique := forms.Rule{
		Check:   func(string) bool { uniqueCalled = true; return false },
		Message: "must be unique",
		Bail:    true,
	}

	t.Run("skipped after earlier failure", func(t *testing.T) {
		uniqueCalled = false
		got := forms.Validate([]forms.Field{
			{Value: "", Rules: []forms.Rule{
				{Check: forms.Required, Message: "required"},
				unique,
			}},
		})
		if uniqueCalled {
			t.Error("bail rule ran despite earlier failure")
		}
		want := []string{"required"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Validate() = %v, want %v", got, want)
		}
	})

	t.Run("runs on clean chain", func(t *testing.T) {
		uniqueCalled = false
		got := forms.Validate([]forms.Field{
			{Value: "Chess Club", Rules: []forms.Rule{
				{Check: forms.Required, Message: "required"},
				unique,
			}},
		})
		if !uniqueCalled {
			t.Error("bail rule skipped on clean chain")
		}
		want := []string{"must be unique"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Validate() = %v, want %v", got, want)
		}
	})
}

// TestValidateNonBailRulesAlwaysRun tests that rules without Bail still run
// after an earlier failure, so an empty age reports both messages.
func TestValidateNonBailRulesAlwaysRun(t *testing.T) {
	got := forms.Validate([]forms.Field{
		{Value: "", Rules: []forms.Rule{
			{Check: forms.Required, Message: "age is required"},
			{Check: forms.IntBetween(1, 100), Message: "age out of range"},
		}},
	})
	want := []string{"age is required", "age out of range"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() = %v, want %v", got, want)
	}
}

// TestValidateTrimsBeforeChecking tests that rules see the trimmed value.
func TestValidateTrimsBeforeChecking(t *testing.T) {
	got := forms.Validate([]forms.Field{
		{Value: "   ", Rules: []forms.Rule{
			{Check: forms.Required, Message: "required"},
		}},
	})
	if len(got) != 1 {
		t.Errorf("whitespace-only value must fail Required, got %v", got)
	}
}

// TestMaxLen tests the length check boundary.
func TestMaxLen(t *testing.T) {
	check := forms.MaxLen(3)
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"abc", true},
		{"abcd", false},
	}
	for _, tt := range tests {
		if got := check(tt.value); got != tt.want {
			t.Errorf("MaxLen(3)(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

// TestIntBetween tests strict integer range validation.
func TestIntBetween(t *testing.T) {
	check := forms.IntBetween(1, 100)
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"30", true},
		{"99", true},
		{"100", true},
		{"0", false},
		{"101", false},
		{"-5", false},
		{"abc", false},
		{"3.5", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := check(tt.value); got != tt.want {
			t.Errorf("IntBetween(1,100)(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
