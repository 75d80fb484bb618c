package models

import (
	"reflect"
	"testing"
	"time"
)

func TestAnnouncementIsLive(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)
	off := false
	on := true

	tests := []struct {
		name string
		a    Announcement
		want bool
	}{
		{"open window", Announcement{}, true},
		{"started", Announcement{StartAt: &before}, true},
		{"not started", Announcement{StartAt: &after}, false},
		{"ended", Announcement{EndAt: &before}, false},
		{"inside window", Announcement{StartAt: &before, EndAt: &after}, true},
		{"start boundary", Announcement{StartAt: &now}, true},
		{"end boundary", Announcement{EndAt: &now}, true},
		{"inactive", Announcement{Active: &off}, false},
		{"active flag", Announcement{Active: &on, EndAt: &after}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsLive(now); got != tt.want {
				t.Errorf("IsLive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJSONStrings(t *testing.T) {
	j, err := NewJSON([]string{"first_page", "page_5"})
	if err != nil {
		t.Fatal(err)
	}
	if got := j.Strings(); !reflect.DeepEqual(got, []string{"first_page", "page_5"}) {
		t.Errorf("Strings() = %v", got)
	}

	if got := (JSON{}).Strings(); got != nil {
		t.Errorf("Empty JSON should decode to nil, got %v", got)
	}

	bad, _ := NewJSON(map[string]int{"a": 1})
	if got := bad.Strings(); got != nil {
		t.Errorf("Non-array JSON should decode to nil, got %v", got)
	}
}

func TestAuthoredAccessors(t *testing.T) {
	uid := "u1"
	deadline := time.Now()
	var a Authored = &Comment{UserID: &uid, EditableUntil: deadline}

	if a.AuthorUserID() != "u1" || a.AuthorGuestToken() != "" || !a.EditDeadline().Equal(deadline) {
		t.Errorf("Unexpected accessors for %+v", a)
	}
}
