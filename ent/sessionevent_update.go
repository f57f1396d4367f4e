// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/dialect/sql/sqljson"
	"entgo.io/ent/schema/field"
	"github.com/bramv/brainsparks/ent/predicate"
	"github.com/bramv/brainsparks/ent/schema"
	"github.com/bramv/brainsparks/ent/sessionevent"
)

// SessionEventUpdate is the builder for updating SessionEvent entities.
type SessionEventUpdate struct {
	config
	hooks    []Hook
	mutation *SessionEventMutation
}

// Where appends a list predicates to the SessionEventUpdate builder.
func (_u *SessionEventUpdate) Where(ps ...predicate.SessionEvent) *SessionEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetSessionID sets the "session_id" field.
func (_u *SessionEventUpdate) SetSessionID(v string) *SessionEventUpdate {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableSessionID(v *string) *SessionEventUpdate {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetDay sets the "day" field.
func (_u *SessionEventUpdate) SetDay(v string) *SessionEventUpdate {
	_u.mutation.SetDay(v)
	return _u
}

// SetNillableDay sets the "day" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableDay(v *string) *SessionEventUpdate {
	if v != nil {
		_u.SetDay(*v)
	}
	return _u
}

// SetTotalScore sets the "total_score" field.
func (_u *SessionEventUpdate) SetTotalScore(v int) *SessionEventUpdate {
	_u.mutation.ResetTotalScore()
	_u.mutation.SetTotalScore(v)
	return _u
}

// SetNillableTotalScore sets the "total_score" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableTotalScore(v *int) *SessionEventUpdate {
	if v != nil {
		_u.SetTotalScore(*v)
	}
	return _u
}

// AddTotalScore adds value to the "total_score" field.
func (_u *SessionEventUpdate) AddTotalScore(v int) *SessionEventUpdate {
	_u.mutation.AddTotalScore(v)
	return _u
}

// SetBrainAge sets the "brain_age" field.
func (_u *SessionEventUpdate) SetBrainAge(v int) *SessionEventUpdate {
	_u.mutation.ResetBrainAge()
	_u.mutation.SetBrainAge(v)
	return _u
}

// SetNillableBrainAge sets the "brain_age" field if the given value is not nil.
func (_u *SessionEventUpdate) SetNillableBrainAge(v *int) *SessionEventUpdate {
	if v != nil {
		_u.SetBrainAge(*v)
	}
	return _u
}

// AddBrainAge adds value to the "brain_age" field.
func (_u *SessionEventUpdate) AddBrainAge(v int) *SessionEventUpdate {
	_u.mutation.AddBrainAge(v)
	return _u
}

// SetTests sets the "tests" field.
func (_u *SessionEventUpdate) SetTests(v []schema.TestSummary) *SessionEventUpdate {
	_u.mutation.SetTests(v)
	return _u
}

// AppendTests appends value to the "tests" field.
func (_u *SessionEventUpdate) AppendTests(v []schema.TestSummary) *SessionEventUpdate {
	_u.mutation.AppendTests(v)
	return _u
}

// ClearTests clears the value of the "tests" field.
func (_u *SessionEventUpdate) ClearTests() *SessionEventUpdate {
	_u.mutation.ClearTests()
	return _u
}

// Mutation returns the SessionEventMutation object of the builder.
func (_u *SessionEventUpdate) Mutation() *SessionEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *SessionEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SessionEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *SessionEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SessionEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SessionEventUpdate) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := sessionevent.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.session_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Day(); ok {
		if err := sessionevent.DayValidator(v); err != nil {
			return &ValidationError{Name: "day", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.day": %w`, err)}
		}
	}
	return nil
}

func (_u *SessionEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(sessionevent.Table, sessionevent.Columns, sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(sessionevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Day(); ok {
		_spec.SetField(sessionevent.FieldDay, field.TypeString, value)
	}
	if value, ok := _u.mutation.TotalScore(); ok {
		_spec.SetField(sessionevent.FieldTotalScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTotalScore(); ok {
		_spec.AddField(sessionevent.FieldTotalScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.BrainAge(); ok {
		_spec.SetField(sessionevent.FieldBrainAge, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedBrainAge(); ok {
		_spec.AddField(sessionevent.FieldBrainAge, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Tests(); ok {
		_spec.SetField(sessionevent.FieldTests, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedTests(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, sessionevent.FieldTests, value)
		})
	}
	if _u.mutation.TestsCleared() {
		_spec.ClearField(sessionevent.FieldTests, field.TypeJSON)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{sessionevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// SessionEventUpdateOne is the builder for updating a single SessionEvent entity.
type SessionEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *SessionEventMutation
}

// SetSessionID sets the "session_id" field.
func (_u *SessionEventUpdateOne) SetSessionID(v string) *SessionEventUpdateOne {
	_u.mutation.SetSessionID(v)
	return _u
}

// SetNillableSessionID sets the "session_id" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableSessionID(v *string) *SessionEventUpdateOne {
	if v != nil {
		_u.SetSessionID(*v)
	}
	return _u
}

// SetDay sets the "day" field.
func (_u *SessionEventUpdateOne) SetDay(v string) *SessionEventUpdateOne {
	_u.mutation.SetDay(v)
	return _u
}

// SetNillableDay sets the "day" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableDay(v *string) *SessionEventUpdateOne {
	if v != nil {
		_u.SetDay(*v)
	}
	return _u
}

// SetTotalScore sets the "total_score" field.
func (_u *SessionEventUpdateOne) SetTotalScore(v int) *SessionEventUpdateOne {
	_u.mutation.ResetTotalScore()
	_u.mutation.SetTotalScore(v)
	return _u
}

// SetNillableTotalScore sets the "total_score" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableTotalScore(v *int) *SessionEventUpdateOne {
	if v != nil {
		_u.SetTotalScore(*v)
	}
	return _u
}

// AddTotalScore adds value to the "total_score" field.
func (_u *SessionEventUpdateOne) AddTotalScore(v int) *SessionEventUpdateOne {
	_u.mutation.AddTotalScore(v)
	return _u
}

// SetBrainAge sets the "brain_age" field.
func (_u *SessionEventUpdateOne) SetBrainAge(v int) *SessionEventUpdateOne {
	_u.mutation.ResetBrainAge()
	_u.mutation.SetBrainAge(v)
	return _u
}

// SetNillableBrainAge sets the "brain_age" field if the given value is not nil.
func (_u *SessionEventUpdateOne) SetNillableBrainAge(v *int) *SessionEventUpdateOne {
	if v != nil {
		_u.SetBrainAge(*v)
	}
	return _u
}

// AddBrainAge adds value to the "brain_age" field.
func (_u *SessionEventUpdateOne) AddBrainAge(v int) *SessionEventUpdateOne {
	_u.mutation.AddBrainAge(v)
	return _u
}

// SetTests sets the "tests" field.
func (_u *SessionEventUpdateOne) SetTests(v []schema.TestSummary) *SessionEventUpdateOne {
	_u.mutation.SetTests(v)
	return _u
}

// AppendTests appends value to the "tests" field.
func (_u *SessionEventUpdateOne) AppendTests(v []schema.TestSummary) *SessionEventUpdateOne {
	_u.mutation.AppendTests(v)
	return _u
}

// ClearTests clears the value of the "tests" field.
func (_u *SessionEventUpdateOne) ClearTests() *SessionEventUpdateOne {
	_u.mutation.ClearTests()
	return _u
}

// Mutation returns the SessionEventMutation object of the builder.
func (_u *SessionEventUpdateOne) Mutation() *SessionEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the SessionEventUpdate builder.
func (_u *SessionEventUpdateOne) Where(ps ...predicate.SessionEvent) *SessionEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *SessionEventUpdateOne) Select(field string, fields ...string) *SessionEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated SessionEvent entity.
func (_u *SessionEventUpdateOne) Save(ctx context.Context) (*SessionEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SessionEventUpdateOne) SaveX(ctx context.Context) *SessionEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *SessionEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SessionEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *SessionEventUpdateOne) check() error {
	if v, ok := _u.mutation.SessionID(); ok {
		if err := sessionevent.SessionIDValidator(v); err != nil {
			return &ValidationError{Name: "session_id", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.session_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Day(); ok {
		if err := sessionevent.DayValidator(v); err != nil {
			return &ValidationError{Name: "day", err: fmt.Errorf(`ent: validator failed for field "SessionEvent.day": %w`, err)}
		}
	}
	return nil
}

func (_u *SessionEventUpdateOne) sqlSave(ctx context.Context) (_node *SessionEvent, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(sessionevent.Table, sessionevent.Columns, sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "SessionEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, sessionevent.FieldID)
		for _, f := range fields {
			if !sessionevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != sessionevent.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SessionID(); ok {
		_spec.SetField(sessionevent.FieldSessionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Day(); ok {
		_spec.SetField(sessionevent.FieldDay, field.TypeString, value)
	}
	if value, ok := _u.mutation.TotalScore(); ok {
		_spec.SetField(sessionevent.FieldTotalScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTotalScore(); ok {
		_spec.AddField(sessionevent.FieldTotalScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.BrainAge(); ok {
		_spec.SetField(sessionevent.FieldBrainAge, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedBrainAge(); ok {
		_spec.AddField(sessionevent.FieldBrainAge, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Tests(); ok {
		_spec.SetField(sessionevent.FieldTests, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedTests(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, sessionevent.FieldTests, value)
		})
	}
	if _u.mutation.TestsCleared() {
		_spec.ClearField(sessionevent.FieldTests, field.TypeJSON)
	}
	_node = &SessionEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{sessionevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
