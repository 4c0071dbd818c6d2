package decimal

import "testing"

func TestParseAndString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"1.5", "1.5"},
		{"-1.50", "-1.5"},
		{"100", "100"},
	}
	for _, tt := range tests {
		d, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if got := d.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRejectsWhitespace(t *testing.T) {
	if _, err := Parse(" 1"); err == nil {
		t.Fatal("expected error for leading whitespace")
	}
	if _, err := Parse("1 "); err == nil {
		t.Fatal("expected error for trailing whitespace")
	}
}

func TestNegativeZeroEqualsZero(t *testing.T) {
	neg, _ := Parse("-0")
	if !neg.Equal(Zero) {
		t.Errorf("-0 should equal 0")
	}
	if neg.Cmp(Zero) != 0 {
		t.Errorf("-0 should compare equal to 0")
	}
}

func TestDivisionOneThird(t *testing.T) {
	one := FromInt64(1)
	three := FromInt64(3)
	got, err := one.Div(three)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "0." + repeat("3", 34)
	if got.String() != want {
		t.Errorf("1/3 = %s, want %s", got.String(), want)
	}
}

func repeat(s string, n int) string {
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s[0])
	}
	return string(out)
}

func TestDivisionByZero(t *testing.T) {
	one := FromInt64(1)
	if _, err := one.Div(Zero); err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestModuloSignFollowsDivisor(t *testing.T) {
	tests := []struct {
		x, y string
		want string
	}{
		{"5", "3", "2"},
		{"-5", "3", "1"},
		{"5", "-3", "-1"},
		{"-5", "-3", "-2"},
	}
	for _, tt := range tests {
		x, _ := Parse(tt.x)
		y, _ := Parse(tt.y)
		got, err := x.Modulo(y)
		if err != nil {
			t.Fatalf("Modulo(%s,%s) error: %v", tt.x, tt.y, err)
		}
		if got.String() != tt.want {
			t.Errorf("Modulo(%s,%s) = %s, want %s", tt.x, tt.y, got.String(), tt.want)
		}
	}
}

func TestCommutativity(t *testing.T) {
	x, _ := Parse("3.25")
	y, _ := Parse("-1.125")
	if !x.Add(y).Equal(y.Add(x)) {
		t.Error("addition not commutative")
	}
	if !x.Mul(y).Equal(y.Mul(x)) {
		t.Error("multiplication not commutative")
	}
}

func TestDivMulRoundTrip(t *testing.T) {
	x, _ := Parse("10")
	y, _ := Parse("4")
	q, err := x.Div(y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.Mul(y).Equal(x) {
		t.Errorf("(x/y)*y = %s, want %s", q.Mul(y).String(), x.String())
	}
}

func TestFloorCeil(t *testing.T) {
	x, _ := Parse("1.5")
	if x.Floor().String() != "1" {
		t.Errorf("floor(1.5) = %s", x.Floor().String())
	}
	if x.Ceil().String() != "2" {
		t.Errorf("ceil(1.5) = %s", x.Ceil().String())
	}
	neg, _ := Parse("-1.5")
	if neg.Floor().String() != "-2" {
		t.Errorf("floor(-1.5) = %s", neg.Floor().String())
	}
}

func TestSqrt(t *testing.T) {
	x, _ := Parse("4")
	got, err := x.Sqrt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "2" {
		t.Errorf("sqrt(4) = %s, want 2", got.String())
	}
	if _, err := FromInt64(-1).Sqrt(); err == nil {
		t.Fatal("expected error for sqrt of negative number")
	}
}

func TestPowInt(t *testing.T) {
	x, _ := Parse("2")
	got, err := x.PowInt(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "1024" {
		t.Errorf("2^10 = %s, want 1024", got.String())
	}
}
