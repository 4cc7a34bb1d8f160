package attrs

import "testing"

func TestAnnotationGetSet(t *testing.T) {
	a := NewAnnotation(4)
	if got := a.Get(2); got != NullValue {
		t.Fatalf("Get(2) = %d, want NullValue", got)
	}
	a.Set(2, 7)
	if got := a.Get(2); got != 7 {
		t.Fatalf("Get(2) = %d, want 7", got)
	}
	if got := a.Get(99); got != NullValue {
		t.Fatalf("Get(99) = %d, want NullValue for out-of-range attribute", got)
	}
}

func TestAnnotationClone(t *testing.T) {
	a := NewAnnotation(2)
	a.Set(0, 5)
	b := a.Clone()
	b.Set(0, 9)
	if got := a.Get(0); got != 5 {
		t.Fatalf("original mutated via clone: got %d, want 5", got)
	}
}

func TestRestrictionEmptyAcceptsEverything(t *testing.T) {
	var r Restriction
	if !r.Check(NewAnnotation(3)) {
		t.Fatal("empty restriction should accept any annotation")
	}
}

func TestRestrictionIncludeExclude(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *Builder)
		attr    Attribute
		value   Value
		want    bool
	}{
		{
			name: "include match",
			build: func(b *Builder) {
				b.AddAttribute(0, false)
				b.AddValue(1)
				b.AddValue(2)
			},
			attr:  0,
			value: 2,
			want:  true,
		},
		{
			name: "include no match",
			build: func(b *Builder) {
				b.AddAttribute(0, false)
				b.AddValue(1)
				b.AddValue(2)
			},
			attr:  0,
			value: 3,
			want:  false,
		},
		{
			name: "exclude match is rejected",
			build: func(b *Builder) {
				b.AddAttribute(0, true)
				b.AddValue(1)
			},
			attr:  0,
			value: 1,
			want:  false,
		},
		{
			name: "exclude non-match is accepted",
			build: func(b *Builder) {
				b.AddAttribute(0, true)
				b.AddValue(1)
			},
			attr:  0,
			value: 2,
			want:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b Builder
			tc.build(&b)
			r, err := b.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			a := NewAnnotation(1)
			a.Set(tc.attr, tc.value)
			if got := r.Check(a); got != tc.want {
				t.Fatalf("Check = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRestrictionMultipleClausesIsConjunction(t *testing.T) {
	var b Builder
	b.AddAttribute(0, false)
	b.AddValue(1)
	b.AddAttribute(2, false)
	b.AddValue(5)
	r, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	both := NewAnnotation(3)
	both.Set(0, 1)
	both.Set(2, 5)
	if !r.Check(both) {
		t.Fatal("annotation satisfying both clauses should pass")
	}

	onlyFirst := NewAnnotation(3)
	onlyFirst.Set(0, 1)
	if r.Check(onlyFirst) {
		t.Fatal("annotation satisfying only one clause should fail")
	}
}

func TestRestrictionWideValues(t *testing.T) {
	var b Builder
	b.AddAttribute(0, false)
	b.AddValue(300) // exceeds a byte, forces wide encoding
	r, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a := NewAnnotation(1)
	a.Set(0, 300)
	if !r.Check(a) {
		t.Fatal("wide value 300 should match")
	}
	a.Set(0, 301)
	if r.Check(a) {
		t.Fatal("wide value 301 should not match")
	}
}

func TestBuilderRejectsNonIncreasingAttribute(t *testing.T) {
	var b Builder
	b.AddAttribute(2, false)
	b.AddValue(1)
	b.AddAttribute(1, false)
	b.AddValue(1)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for non-increasing attribute order")
	}
}

func TestBuilderRejectsNonIncreasingValue(t *testing.T) {
	var b Builder
	b.AddAttribute(0, false)
	b.AddValue(2)
	b.AddValue(2)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for duplicate/non-increasing value")
	}
}

func TestBuilderRejectsEmptyClause(t *testing.T) {
	var b Builder
	b.AddAttribute(0, false)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for attribute with no values")
	}
}
