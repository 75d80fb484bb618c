// engine.go
//
// Reader community data service for the This Is Us series
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of This-Is-Us-Series.
// This-Is-Us-Series is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// This-Is-Us-Series is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with This-Is-Us-Series.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package achievements

import "time"

// Progress is the reader's position in the current item.
// PageIndex is zero based; a negative index means nothing has been read.
type Progress struct {
	PageIndex  int
	TotalPages int
}

// Engagement holds the reader's per-item activity counters
type Engagement struct {
	Comments  int64
	Replies   int64
	Reactions int64
	Ratings   int64
}

// Snapshot is everything a rule may look at
type Snapshot struct {
	Progress
	Engagement
	Percent int
	Hour    int
}

// NewSnapshot builds a snapshot; local is the reader's local time
func NewSnapshot(p Progress, e Engagement, local time.Time) Snapshot {
	return Snapshot{
		Progress:   p,
		Engagement: e,
		Percent:    Percent(p),
		Hour:       local.Hour(),
	}
}

// Percent returns floor((PageIndex+1)/TotalPages*100), or 0 without a page count
func Percent(p Progress) int {
	if p.TotalPages <= 0 {
		return 0
	}
	return (p.PageIndex + 1) * 100 / p.TotalPages
}

// Night covers local hours 00 through 04
func (s Snapshot) Night() bool {
	return s.Hour >= 0 && s.Hour <= 4
}

// Early covers local hours 05 through 08
func (s Snapshot) Early() bool {
	return s.Hour >= 5 && s.Hour <= 8
}

// Unlocked is one notification for a newly earned milestone
type Unlocked struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Evaluate returns the rules that hold for s and are not in previously, in rule order
func Evaluate(s Snapshot, previously []string) []Unlocked {
	had := make(map[string]struct{}, len(previously))
	for _, id := range previously {
		had[id] = struct{}{}
	}

	var out []Unlocked
	for _, r := range Rules {
		if _, ok := had[r.ID]; ok {
			continue
		}
		if r.When(s) {
			out = append(out, Unlocked{ID: r.ID, Label: r.Label})
		}
	}
	return out
}

// Union appends the ids of unlocked to previously, keeping previously intact and
// dropping duplicates. The result never loses an id that was present.
func Union(previously []string, unlocked []Unlocked) []string {
	seen := make(map[string]struct{}, len(previously)+len(unlocked))
	out := make([]string, 0, len(previously)+len(unlocked))
	for _, id := range previously {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, u := range unlocked {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u.ID)
	}
	return out
}
