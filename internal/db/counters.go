package db

import (
	"fmt"
	"strconv"
)

// LoadNextTaskID returns the next task id to hand out, 0 if none was saved
func (db *DB) LoadNextTaskID() (int64, error) {
	id, _, err := db.loadCounter(keyNextTaskID)
	return id, err
}

// SaveNextTaskID stores the next task id
func (db *DB) SaveNextTaskID(id int64) error {
	return db.SetSetting(keyNextTaskID, strconv.FormatInt(id, 10))
}

// LoadNextProjectID returns the next project id. ok is false when none was saved yet.
func (db *DB) LoadNextProjectID() (id int64, ok bool, err error) {
	return db.loadCounter(keyNextProjectID)
}

// SaveNextProjectID stores the next project id
func (db *DB) SaveNextProjectID(id int64) error {
	return db.SetSetting(keyNextProjectID, strconv.FormatInt(id, 10))
}

func (db *DB) loadCounter(key string) (int64, bool, error) {
	value, err := db.GetSetting(key)
	if err != nil {
		return 0, false, err
	}
	if value == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("setting %s: %w", key, err)
	}
	return n, true, nil
}
