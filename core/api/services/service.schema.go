package services

import (
	"time"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
)

// archiveTimeLayout formats the timestamp embedded in archived storage
// keys.
const archiveTimeLayout = "20060102150405"

// ValidateDeclaration checks a submitted column configuration. The
// only declaration error is a duplicate display name; types, counts
// and ordering are all free.
func ValidateDeclaration(columns []models.ColumnSpec) error {
	seen := make(map[string]bool, len(columns))
	var duplicates []string
	for _, col := range columns {
		if seen[col.DataIndex] {
			duplicates = append(duplicates, col.DataIndex)
			continue
		}
		seen[col.DataIndex] = true
	}
	if len(duplicates) > 0 {
		return common.NewDuplicateColumnError(duplicates)
	}
	return nil
}

// StorageKeys returns the physical field names of a configuration, in
// declaration order.
func StorageKeys(columns []models.ColumnSpec) []string {
	keys := make([]string, len(columns))
	for i, col := range columns {
		keys[i] = col.StorageKey()
	}
	return keys
}

// StorageKeySet returns the storage keys as a lookup set.
func StorageKeySet(columns []models.ColumnSpec) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, col := range columns {
		set[col.StorageKey()] = true
	}
	return set
}

// DisplayNameByStorageKey maps each storage key back to the column's
// display name.
func DisplayNameByStorageKey(columns []models.ColumnSpec) map[string]string {
	byKey := make(map[string]string, len(columns))
	for _, col := range columns {
		byKey[col.StorageKey()] = col.DataIndex
	}
	return byKey
}

// DiffColumns compares an old and a new column configuration and
// describes how the stored rows should be migrated. Reserved columns
// are exempt: their storage keys never carry a type suffix, so they
// cannot change. For user columns:
//
//   - same display name, different type: change_type, archiving the
//     old key;
//   - display name only in the new configuration: add;
//   - display name only in the old configuration: delete, archiving
//     the old key.
//
// A renamed column therefore surfaces as a delete plus an add; values
// stay reachable under the archived key. The archive timestamp comes
// from now so repeated edits of the same name stay distinct.
func DiffColumns(oldColumns, newColumns []models.ColumnSpec, now time.Time) []models.SchemaDiffEntry {
	ts := now.Format(archiveTimeLayout)

	oldByName := make(map[string]models.ColumnSpec, len(oldColumns))
	for _, col := range oldColumns {
		if models.IsDefaultColumn(col.DataIndex) {
			continue
		}
		oldByName[col.DataIndex] = col
	}

	var entries []models.SchemaDiffEntry
	newNames := make(map[string]bool, len(newColumns))
	for _, col := range newColumns {
		if models.IsDefaultColumn(col.DataIndex) {
			continue
		}
		newNames[col.DataIndex] = true

		oldCol, existed := oldByName[col.DataIndex]
		if !existed {
			entries = append(entries, models.SchemaDiffEntry{
				Kind:      models.SchemaDiffAdd,
				NewColumn: col.StorageKey(),
			})
			continue
		}
		if oldCol.DataType != col.DataType {
			rawKey := oldCol.StorageKey()
			entries = append(entries, models.SchemaDiffEntry{
				Kind:        models.SchemaDiffChangeType,
				RawColumn:   rawKey,
				ArchivedKey: rawKey + "_" + ts,
				NewColumn:   col.StorageKey(),
			})
		}
	}

	for _, col := range oldColumns {
		if models.IsDefaultColumn(col.DataIndex) || newNames[col.DataIndex] {
			continue
		}
		if _, tracked := oldByName[col.DataIndex]; !tracked {
			continue
		}
		rawKey := col.StorageKey()
		entries = append(entries, models.SchemaDiffEntry{
			Kind:        models.SchemaDiffDelete,
			RawColumn:   rawKey,
			ArchivedKey: rawKey + "_" + ts,
		})
	}

	return entries
}
