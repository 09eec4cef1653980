package jobs

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/azim128/jobify/internal/shared/apperr"
)

func TestParseSalaryRange(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    *SalaryRange
		wantMsg string
	}{
		{"native object", `{"min":50000,"max":90000}`, &SalaryRange{Min: 50000, Max: 90000}, ""},
		{"string encoded", `"{\"min\":50000,\"max\":90000}"`, &SalaryRange{Min: 50000, Max: 90000}, ""},
		{"absent", ``, nil, ""},
		{"null", `null`, nil, ""},
		{"empty string", `""`, nil, ""},
		{"garbage", `"not json"`, nil, "Invalid salary range format"},
		{"wrong type", `[1,2]`, nil, "Invalid salary range format"},
		{"missing max", `{"min":50000}`, nil, "Please provide valid salary range"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var raw json.RawMessage
			if tc.raw != "" {
				raw = json.RawMessage(tc.raw)
			}
			got, err := ParseSalaryRange(raw)
			if tc.wantMsg != "" {
				if !apperr.IsKind(err, apperr.KindValidation) {
					t.Fatalf("err = %v, want validation", err)
				}
				if msg := apperr.Message(err); msg != tc.wantMsg {
					t.Fatalf("message = %q, want %q", msg, tc.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestValidateSalaryRange(t *testing.T) {
	if err := ValidateSalaryRange(&SalaryRange{Min: 10, Max: 5}); err == nil {
		t.Fatal("inverted range accepted")
	} else if got := apperr.Message(err); got != "Minimum salary cannot be greater than maximum salary" {
		t.Fatalf("message = %q", got)
	}
	if err := ValidateSalaryRange(&SalaryRange{Min: 10, Max: 10}); err != nil {
		t.Fatalf("equal bounds rejected: %v", err)
	}
	if err := ValidateSalaryRange(nil); err == nil {
		t.Fatal("nil range accepted")
	}
}

func TestParseStringList(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"native array", `["Go","SQL"]`, []string{"Go", "SQL"}, false},
		{"string encoded", `"[\"Go\",\"SQL\"]"`, []string{"Go", "SQL"}, false},
		{"absent", ``, []string{}, false},
		{"null", `null`, []string{}, false},
		{"garbage", `"oops"`, nil, true},
		{"wrong element type", `[1,2]`, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var raw json.RawMessage
			if tc.raw != "" {
				raw = json.RawMessage(tc.raw)
			}
			got, err := ParseStringList(raw, "requirements")
			if tc.wantErr {
				if !apperr.IsKind(err, apperr.KindValidation) {
					t.Fatalf("err = %v, want validation", err)
				}
				if msg := apperr.Message(err); msg != "Invalid format for requirements" {
					t.Fatalf("message = %q", msg)
				}
				return
			}
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}
