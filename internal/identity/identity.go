// identity.go
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

package identity

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GuestTokenBytes is the amount of randomness in a guest token
const GuestTokenBytes = 16

// Reader identifies who is acting on a request. Authenticated readers carry a UserID;
// every reader carries a GuestToken so anonymous actions stay attributable across sign-in.
type Reader struct {
	UserID     string
	GuestToken string
	IsAdmin    bool
	Name       string
}

// SignedIn reports whether the reader is authenticated
func (r Reader) SignedIn() bool {
	return r.UserID != ""
}

// Key returns the reader key used for per-reader markers and counters
func (r Reader) Key() string {
	if r.UserID != "" {
		return UserKey(r.UserID)
	}
	return GuestKey(r.GuestToken)
}

// UserKey returns the reader key of an authenticated user
func UserKey(userID string) string {
	return "u:" + userID
}

// GuestKey returns the reader key of an anonymous visitor
func GuestKey(token string) string {
	return "g:" + token
}

// DisplayName returns the default author name for comments and replies
func (r Reader) DisplayName() string {
	if r.IsAdmin {
		return "Admin"
	}
	if r.Name != "" {
		return r.Name
	}
	return "Reader"
}

// NewGuestToken returns a random 128-bit token as 32 lowercase hex characters
func NewGuestToken() (string, error) {
	b := make([]byte, GuestTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate guest token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ValidGuestToken reports whether s has the shape produced by NewGuestToken
func ValidGuestToken(s string) bool {
	if len(s) != GuestTokenBytes*2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
