// tx.go
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
	"context"
	"errors"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/database"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// txAttempts bounds retries of a transaction that hit a lock conflict
const txAttempts = 5

// runTx runs fn in one transaction, retrying the whole transaction on transient conflicts.
// The error returned is the last attempt's error, unwrapped.
func runTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var lastErr error

	err := retry.Do(
		func() error {
			lastErr = db.Transaction(fn)
			return lastErr
		},
		retry.Attempts(txAttempts),
		retry.Delay(20*time.Millisecond),
		retry.MaxDelay(250*time.Millisecond),
		retry.MaxJitter(20*time.Millisecond),
		retry.Context(contextOf(db)),
		retry.OnRetry(func(n uint, err error) {
			metrics.Default().TransactionRetries.Inc()
		}),
		retry.RetryIf(database.IsTransient),
	)
	if err != nil && lastErr != nil {
		return lastErr
	}
	return err
}

func contextOf(db *gorm.DB) context.Context {
	if db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}

// quiet silences record-not-found noise on lookups that expect misses
func quiet(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})
}

// tagged labels a query in database logs and slow query reports
func tagged(db *gorm.DB, name string) *gorm.DB {
	return db.Clauses(hints.CommentBefore("select", "community:"+name))
}

// forUpdate locks the selected rows until the transaction ends. SQLite serializes
// writers instead; SQL Server relies on its default update locks.
func forUpdate(tx *gorm.DB) *gorm.DB {
	switch tx.Dialector.Name() {
	case "sqlite", "sqlserver":
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
