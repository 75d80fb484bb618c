// gate.go
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

package termsgate

import (
	"errors"
	"fmt"
)

// State of the per-session terms gate
type State int

const (
	NotDecided State = iota
	ShownBlocking
	Accepted
)

func (s State) String() string {
	switch s {
	case NotDecided:
		return "not-decided"
	case ShownBlocking:
		return "shown-blocking"
	case Accepted:
		return "accepted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText renders the state name in JSON responses
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name
func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{NotDecided, ShownBlocking, Accepted} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown terms state %q", text)
}

var (
	ErrAgreementRequired = errors.New("Please check the agreement box to continue.")
	ErrNotDismissible    = errors.New("The terms must be accepted to continue.")
	ErrInvalidTransition = errors.New("invalid terms gate transition")
)

// Gate tracks one reader's progress through the acceptance gate for a terms version
type Gate struct {
	state   State
	version int
}

// New returns a gate in NotDecided for the current terms version
func New(version int) *Gate {
	return &Gate{state: NotDecided, version: version}
}

func (g *Gate) State() State { return g.state }
func (g *Gate) Version() int { return g.version }
func (g *Gate) Blocking() bool { return g.state == ShownBlocking }

// Satisfies reports whether a stored acceptance version covers the gate's version
func (g *Gate) Satisfies(stored int) bool {
	return stored >= g.version
}

// Resolve settles a NotDecided gate from the stored acceptance version (0 when none)
func (g *Gate) Resolve(stored int) error {
	if g.state != NotDecided {
		return ErrInvalidTransition
	}
	if g.Satisfies(stored) {
		g.state = Accepted
	} else {
		g.state = ShownBlocking
	}
	return nil
}

// Confirm accepts the terms from ShownBlocking when the reader checked the agreement box
func (g *Gate) Confirm(agreed bool) error {
	switch g.state {
	case Accepted:
		return nil
	case ShownBlocking:
		if !agreed {
			return ErrAgreementRequired
		}
		g.state = Accepted
		return nil
	}
	return ErrInvalidTransition
}

// Dismiss is refused while the gate blocks; there is no path around acceptance
func (g *Gate) Dismiss() error {
	if g.state == ShownBlocking {
		return ErrNotDismissible
	}
	return nil
}
