package store

import (
	"context"
	"fmt"

	"github.com/bramv/brainsparks/ent"
	"github.com/bramv/brainsparks/ent/record"
)

// RecordKV exposes Record rows as a key-value store. The history
// service persists its JSON blobs through this interface.
type RecordKV struct {
	client *ent.Client
}

// Get returns the value stored under key and whether it exists.
func (kv *RecordKV) Get(key string) (string, bool, error) {
	ctx := context.Background()
	r, err := kv.client.Record.Query().
		Where(record.Key(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get record %q: %w", key, err)
	}
	return r.Value, true, nil
}

// Set writes value under key, replacing any existing value.
func (kv *RecordKV) Set(key, value string) error {
	ctx := context.Background()
	r, err := kv.client.Record.Query().
		Where(record.Key(key)).
		Only(ctx)
	if err != nil {
		if !ent.IsNotFound(err) {
			return fmt.Errorf("lookup record %q: %w", key, err)
		}
		_, err = kv.client.Record.Create().
			SetKey(key).
			SetValue(value).
			Save(ctx)
		if err != nil {
			return fmt.Errorf("create record %q: %w", key, err)
		}
		return nil
	}

	_, err = kv.client.Record.UpdateOne(r).
		SetValue(value).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update record %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key. Removing a missing key is
// not an error.
func (kv *RecordKV) Remove(key string) error {
	ctx := context.Background()
	_, err := kv.client.Record.Delete().
		Where(record.Key(key)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("remove record %q: %w", key, err)
	}
	return nil
}
