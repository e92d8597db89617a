package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "canonical", in: "2009-06-02", want: New(2009, time.June, 2)},
		{name: "lenient single digits", in: "2009-6-2", want: New(2009, time.June, 2)},
		{name: "not a date", in: "yesterday", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNew_normalizes(t *testing.T) {
	// Out of range days roll over to the next month.
	got := New(2009, time.January, 32)
	want := New(2009, time.February, 1)
	if got != want {
		t.Errorf("New(2009, January, 32) = %v, want %v", got, want)
	}
}

func TestCompare(t *testing.T) {
	a := MustParse("2009-06-02")
	b := MustParse("2009-06-03")
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before is inconsistent for %v and %v", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After is inconsistent for %v and %v", a, b)
	}
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Errorf("Compare is inconsistent for %v and %v", a, b)
	}
}

func TestAdd(t *testing.T) {
	d := MustParse("2009-12-31")
	if got, want := d.Add(1), MustParse("2010-01-01"); got != want {
		t.Errorf("%v.Add(1) = %v, want %v", d, got, want)
	}
	if got, want := d.Add(-31), MustParse("2009-11-30"); got != want {
		t.Errorf("%v.Add(-31) = %v, want %v", d, got, want)
	}
}

func TestIsZero(t *testing.T) {
	var zero Date
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if Today().IsZero() {
		t.Error("Today should not report IsZero")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2009-06-02")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2009-06-02"` {
		t.Errorf("Marshal = %s, want %q", data, `"2009-06-02"`)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
