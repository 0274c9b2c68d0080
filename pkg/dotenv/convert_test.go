package dotenv

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/thoreinstein/configuror/internal/errors"
)

func TestBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"n", false},
		{"N", false},
		{"0", false},
		{"no", false},
		{"No", false},
		{"false", false},
		{"FALSE", false},
		{"", false},
		{"y", true},
		{"1", true},
		{"true", true},
		{"anything", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Bool(tt.in); got != tt.want {
				t.Errorf("Bool(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{"a, b;  c:d", []string{"a", "b", "c", "d"}},
		{"a   b\tc", []string{"a", "b", "c"}},
		{"single", []string{"single"}},
		{"  ", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Strings(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Strings(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInts(t *testing.T) {
	got, err := Ints("1, 2;3 4")
	if err != nil {
		t.Fatalf("Ints() error = %v", err)
	}
	if want := []int{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Ints() = %v, want %v", got, want)
	}

	_, err = Ints("1,two")
	if !errors.Is(err, errors.ErrInvalidValue) {
		t.Fatalf("Ints(1,two) error = %v, want ErrInvalidValue", err)
	}
	if !strings.Contains(err.Error(), `"two"`) {
		t.Errorf("error = %q, want it to quote the bad item", err.Error())
	}
}

func TestFloats(t *testing.T) {
	got, err := Floats("1.5,2")
	if err != nil {
		t.Fatalf("Floats() error = %v", err)
	}
	if want := []float64{1.5, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Floats() = %v, want %v", got, want)
	}

	if _, err := Floats("x"); err == nil {
		t.Error("Floats(x) error = nil")
	}
}

func TestDecimals(t *testing.T) {
	got, err := Decimals("0.1; 0.2")
	if err != nil {
		t.Fatalf("Decimals() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Decimals() = %v, want 2 items", got)
	}
	if sum := got[0].Add(got[1]); !sum.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", sum)
	}

	if _, err := Decimals("0.1,abc"); err == nil {
		t.Error("Decimals(0.1,abc) error = nil")
	}
}

func TestPaths(t *testing.T) {
	if got, want := Paths("/usr/bin/ /opt//tools"), []string{"/usr/bin", "/opt/tools"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}
