package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records one finalized training session. The log is
// append-only: re-finalizing a session id appends a new row rather than
// rewriting history.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

// TestSummary is the serialized per-test result stored with the event.
type TestSummary struct {
	Kind  string `json:"kind"`
	Score int    `json:"score"`
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the finalized session"),
		field.String("day").
			NotEmpty().
			Comment("Local day the session was played, YYYY-MM-DD"),
		field.Int("total_score").
			Default(0).
			Comment("Sum of the per-test scores"),
		field.Int("brain_age").
			Default(0).
			Comment("Brain-age estimate computed at finalization"),
		field.JSON("tests", []TestSummary{}).
			Optional().
			Comment("Per-test kinds and scores"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("day"),
	}
}
