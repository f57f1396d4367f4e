// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/bramv/brainsparks/ent/record"
	"github.com/bramv/brainsparks/ent/schema"
	"github.com/bramv/brainsparks/ent/sessionevent"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	recordFields := schema.Record{}.Fields()
	_ = recordFields
	// recordDescKey is the schema descriptor for key field.
	recordDescKey := recordFields[0].Descriptor()
	// record.KeyValidator is a validator for the "key" field. It is called by the builders before save.
	record.KeyValidator = recordDescKey.Validators[0].(func(string) error)
	// recordDescUpdatedAt is the schema descriptor for updated_at field.
	recordDescUpdatedAt := recordFields[2].Descriptor()
	// record.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	record.DefaultUpdatedAt = recordDescUpdatedAt.Default.(func() time.Time)
	// record.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	record.UpdateDefaultUpdatedAt = recordDescUpdatedAt.UpdateDefault.(func() time.Time)
	sessioneventMixin := schema.SessionEvent{}.Mixin()
	sessioneventMixinFields0 := sessioneventMixin[0].Fields()
	_ = sessioneventMixinFields0
	sessioneventFields := schema.SessionEvent{}.Fields()
	_ = sessioneventFields
	// sessioneventDescTimestamp is the schema descriptor for timestamp field.
	sessioneventDescTimestamp := sessioneventMixinFields0[1].Descriptor()
	// sessionevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	sessionevent.DefaultTimestamp = sessioneventDescTimestamp.Default.(func() time.Time)
	// sessioneventDescSessionID is the schema descriptor for session_id field.
	sessioneventDescSessionID := sessioneventFields[0].Descriptor()
	// sessionevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	sessionevent.SessionIDValidator = sessioneventDescSessionID.Validators[0].(func(string) error)
	// sessioneventDescDay is the schema descriptor for day field.
	sessioneventDescDay := sessioneventFields[1].Descriptor()
	// sessionevent.DayValidator is a validator for the "day" field. It is called by the builders before save.
	sessionevent.DayValidator = sessioneventDescDay.Validators[0].(func(string) error)
	// sessioneventDescTotalScore is the schema descriptor for total_score field.
	sessioneventDescTotalScore := sessioneventFields[2].Descriptor()
	// sessionevent.DefaultTotalScore holds the default value on creation for the total_score field.
	sessionevent.DefaultTotalScore = sessioneventDescTotalScore.Default.(int)
	// sessioneventDescBrainAge is the schema descriptor for brain_age field.
	sessioneventDescBrainAge := sessioneventFields[3].Descriptor()
	// sessionevent.DefaultBrainAge holds the default value on creation for the brain_age field.
	sessionevent.DefaultBrainAge = sessioneventDescBrainAge.Default.(int)
}
