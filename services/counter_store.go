package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/pocketbase/pocketbase/core"
)

// SettingsCounterStore keeps counters in the app_settings collection. Its
// increment runs inside a database transaction, so concurrent requests in
// one PocketBase instance never receive the same number.
type SettingsCounterStore struct {
	App core.App
}

func (s *SettingsCounterStore) GetCounter(key string) (string, bool, error) {
	record, err := s.App.FindFirstRecordByData(SettingsCollection, "key", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find setting %q: %w", key, err)
	}
	return record.GetString("value"), true, nil
}

func (s *SettingsCounterStore) SetCounter(key, value string) error {
	return setSetting(s.App, key, value)
}

func (s *SettingsCounterStore) IncrementCounter(key string) (int, error) {
	var next int
	err := s.App.RunInTransaction(func(txApp core.App) error {
		tx := &SettingsCounterStore{App: txApp}
		value, _, err := tx.GetCounter(key)
		if err != nil {
			return err
		}
		next = ParseCounter(value) + 1
		return setSetting(txApp, key, strconv.Itoa(next))
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// RaiseCounter sets key to n when the stored value is lower and reports
// whether it wrote. The counter is never lowered.
func (s *SettingsCounterStore) RaiseCounter(key string, n int) (bool, error) {
	value, _, err := s.GetCounter(key)
	if err != nil {
		return false, err
	}
	if ParseCounter(value) >= n {
		return false, nil
	}
	if err := setSetting(s.App, key, strconv.Itoa(n)); err != nil {
		return false, err
	}
	return true, nil
}

func setSetting(app core.App, key, value string) error {
	record, err := app.FindFirstRecordByData(SettingsCollection, "key", key)
	if errors.Is(err, sql.ErrNoRows) {
		col, err := app.FindCollectionByNameOrId(SettingsCollection)
		if err != nil {
			return fmt.Errorf("find %s collection: %w", SettingsCollection, err)
		}
		record = core.NewRecord(col)
		record.Set("key", key)
	} else if err != nil {
		return fmt.Errorf("find setting %q: %w", key, err)
	}
	record.Set("value", value)
	if err := app.Save(record); err != nil {
		return fmt.Errorf("save setting %q: %w", key, err)
	}
	return nil
}
