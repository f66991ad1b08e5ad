package models

import (
	"testing"
	"time"
)

func TestParseEnums(t *testing.T) {
	for _, c := range Categories {
		if got, err := ParseCategory(string(c)); err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %q, %v", c, got, err)
		}
	}
	for _, s := range Statuses {
		if got, err := ParseStatus(string(s)); err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}

	bad := []string{"", "all", "Bug", "archived", "in_review"}
	for _, v := range bad {
		if _, err := ParseCategory(v); err == nil {
			t.Errorf("ParseCategory(%q) should fail", v)
		}
		if _, err := ParseStatus(v); err == nil {
			t.Errorf("ParseStatus(%q) should fail", v)
		}
		if _, err := ParsePriority(v); err == nil {
			t.Errorf("ParsePriority(%q) should fail", v)
		}
		if _, err := ParseRole(v); err == nil {
			t.Errorf("ParseRole(%q) should fail", v)
		}
	}
}

func TestStatusOpen(t *testing.T) {
	want := map[Status]bool{
		StatusNew:      true,
		StatusInReview: true,
		StatusResolved: false,
		StatusClosed:   false,
	}
	for s, open := range want {
		if s.Open() != open {
			t.Errorf("%s.Open() = %v, want %v", s, s.Open(), open)
		}
	}
}

func TestHasRole(t *testing.T) {
	var nobody *User
	if nobody.HasRole(RoleAdmin) {
		t.Error("nil user must not hold any role")
	}
	u := &User{Role: RoleSupport}
	if !u.HasRole(RoleSupport, RoleAdmin) {
		t.Error("support user should pass support/admin gate")
	}
	if u.HasRole(RoleCustomer) {
		t.Error("support user should fail customer gate")
	}
	if (&User{Role: "root"}).HasRole(Roles...) {
		t.Error("unknown role must not pass any gate")
	}
}

func TestResolutionTime(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	closed := created.Add(90 * time.Minute)

	fb := &Feedback{Status: StatusClosed, CreatedAt: created, ClosedAt: &closed}
	if d, ok := fb.ResolutionTime(); !ok || d != 90*time.Minute {
		t.Errorf("ResolutionTime() = %v, %v", d, ok)
	}

	reopened := &Feedback{Status: StatusInReview, CreatedAt: created, ClosedAt: &closed}
	if _, ok := reopened.ResolutionTime(); ok {
		t.Error("reopened item should not count as resolved")
	}

	missing := &Feedback{Status: StatusClosed, CreatedAt: created}
	if _, ok := missing.ResolutionTime(); ok {
		t.Error("closed item without closed_at should not count")
	}
}

func TestFeedbackValidate(t *testing.T) {
	valid := Feedback{Title: "t", Category: CategoryBug, Priority: PriorityLow, Status: StatusNew, UserID: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid feedback rejected: %v", err)
	}

	cases := map[string]func(f *Feedback){
		"no title":     func(f *Feedback) { f.Title = "" },
		"bad category": func(f *Feedback) { f.Category = "idea" },
		"bad priority": func(f *Feedback) { f.Priority = "urgent" },
		"bad status":   func(f *Feedback) { f.Status = "archived" },
		"no owner":     func(f *Feedback) { f.UserID = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := valid
			mutate(&f)
			if err := f.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
