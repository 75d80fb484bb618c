// terms.go
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

package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/termsgate"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MsgTermsSaveFailed is shown when an acceptance could not be stored
const MsgTermsSaveFailed = "Could not save. Please try again."

// TermsStatus is the resolved gate of one reader
type TermsStatus struct {
	State    termsgate.State `json:"state"`
	Version  int             `json:"version"`
	Accepted int             `json:"acceptedVersion"`
	Blocking bool            `json:"blocking"`
}

func termsStatus(gate *termsgate.Gate, stored int) TermsStatus {
	return TermsStatus{
		State:    gate.State(),
		Version:  gate.Version(),
		Accepted: stored,
		Blocking: gate.Blocking(),
	}
}

// readerKeys lists the keys an acceptance may be stored under: the guest key, then the user key
func readerKeys(reader identity.Reader) []string {
	var keys []string
	if reader.GuestToken != "" {
		keys = append(keys, identity.GuestKey(reader.GuestToken))
	}
	if reader.SignedIn() {
		keys = append(keys, identity.UserKey(reader.UserID))
	}
	return keys
}

// acceptedVersions returns the stored version per key
func acceptedVersions(db *gorm.DB, keys []string) (map[string]int, error) {
	found := map[string]int{}
	if len(keys) == 0 {
		return found, nil
	}
	var rows []models.TermsAcceptance
	if err := db.Where("reader_key IN ?", keys).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		found[r.ReaderKey] = r.Version
	}
	return found, nil
}

// ResolveTerms settles the reader's gate for version. Acceptance under either the guest
// key or the user key counts; a signed-in reader accepted only as a guest gets the user
// record written so the acceptance follows the account.
func ResolveTerms(db *gorm.DB, reader identity.Reader, version int, now time.Time) (TermsStatus, *termsgate.Gate, error) {
	gate := termsgate.New(version)

	found, err := acceptedVersions(db, readerKeys(reader))
	if err != nil {
		return TermsStatus{}, nil, fmt.Errorf("resolve terms: %w", err)
	}

	stored := 0
	for _, v := range found {
		stored = max(stored, v)
	}
	if err := gate.Resolve(stored); err != nil {
		return TermsStatus{}, nil, err
	}

	if reader.SignedIn() && gate.State() == termsgate.Accepted {
		userKey := identity.UserKey(reader.UserID)
		if !gate.Satisfies(found[userKey]) {
			if err := saveAcceptance(db, []string{userKey}, stored, now); err != nil {
				return TermsStatus{}, nil, fmt.Errorf("reconcile terms: %w", err)
			}
		}
	}

	return termsStatus(gate, stored), gate, nil
}

// AcceptTerms confirms the gate for version. Acceptance is stored under the guest key and,
// when signed in, the user key.
func AcceptTerms(db *gorm.DB, reader identity.Reader, version int, agreed bool, now time.Time) (TermsStatus, error) {
	_, gate, err := ResolveTerms(db, reader, version, now)
	if err != nil {
		return TermsStatus{}, err
	}
	if gate.State() == termsgate.Accepted {
		found, err := acceptedVersions(db, readerKeys(reader))
		if err != nil {
			return TermsStatus{}, fmt.Errorf("accept terms: %w", err)
		}
		stored := 0
		for _, v := range found {
			stored = max(stored, v)
		}
		return termsStatus(gate, stored), nil
	}

	if err := gate.Confirm(agreed); err != nil {
		if errors.Is(err, termsgate.ErrAgreementRequired) {
			return TermsStatus{}, types.Validation(err.Error())
		}
		return TermsStatus{}, err
	}

	keys := readerKeys(reader)
	if len(keys) == 0 {
		return TermsStatus{}, types.Validation(MsgTermsSaveFailed)
	}
	if err := saveAcceptance(db, keys, version, now); err != nil {
		return TermsStatus{}, &types.CustomError{
			Code:    500,
			Message: MsgTermsSaveFailed,
			Type:    types.TypeInternal,
		}
	}

	return termsStatus(gate, version), nil
}

// saveAcceptance upserts version for every key; a stored version never moves backwards
func saveAcceptance(db *gorm.DB, keys []string, version int, now time.Time) error {
	return runTx(db, func(tx *gorm.DB) error {
		for _, key := range keys {
			row := models.TermsAcceptance{ReaderKey: key, Version: version, AcceptedAt: now.UTC()}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.TermsAcceptance{}).
				Where("reader_key = ? AND version < ?", key, version).
				Updates(map[string]interface{}{
					"version":     version,
					"accepted_at": now.UTC(),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
