package models

import "fmt"

// Role is the access level of a portal user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSupport  Role = "support"
	RoleAdmin    Role = "admin"
)

// Category classifies a feedback item.
type Category string

const (
	CategoryBug       Category = "bug"
	CategoryFeature   Category = "feature"
	CategoryComplaint Category = "complaint"
	CategoryPraise    Category = "praise"
)

// Priority is the submitter's urgency for a feedback item.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status is the triage state of a feedback item.
type Status string

const (
	StatusNew      Status = "new"
	StatusInReview Status = "in-review"
	StatusResolved Status = "resolved"
	StatusClosed   Status = "closed"
)

// Enumerations in display order. Callers must not modify these slices.
var (
	Roles      = []Role{RoleCustomer, RoleSupport, RoleAdmin}
	Categories = []Category{CategoryBug, CategoryFeature, CategoryComplaint, CategoryPraise}
	Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}
	Statuses   = []Status{StatusNew, StatusInReview, StatusResolved, StatusClosed}
)

func (r Role) Valid() bool     { return contains(Roles, r) }
func (c Category) Valid() bool { return contains(Categories, c) }
func (p Priority) Valid() bool { return contains(Priorities, p) }
func (s Status) Valid() bool   { return contains(Statuses, s) }

// Open reports whether the item still needs attention from staff.
func (s Status) Open() bool {
	return s == StatusNew || s == StatusInReview
}

func ParseRole(v string) (Role, error) {
	r := Role(v)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", v)
	}
	return r, nil
}

func ParseCategory(v string) (Category, error) {
	c := Category(v)
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q", v)
	}
	return c, nil
}

func ParsePriority(v string) (Priority, error) {
	p := Priority(v)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q", v)
	}
	return p, nil
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q", v)
	}
	return s, nil
}

func contains[T comparable](set []T, v T) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}
