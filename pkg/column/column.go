package column

import (
	"github.com/kasuganosora/livetable/pkg/errs"
	"github.com/kasuganosora/livetable/pkg/interner"
	"github.com/kasuganosora/livetable/pkg/sequence"
)

// Column is a typed, optionally-nullable array-like container indexed
// by integer position. String columns may share a StringInterner with
// their owning table, in which case values are stored as interner ids
// in a parallel sequence while the primary sequence holds placeholders.
type Column struct {
	name       string
	columnType Type
	nullable   bool

	values    sequence.Sequence[Value]
	nullFlags sequence.Sequence[bool] // nil when !nullable

	in        *interner.StringInterner // nil when not interning
	stringIDs sequence.Sequence[interner.StringID]

	useTiered    bool // whether WithTieredVector was requested
	minBlockSize int  // block-size hint passed to WithTieredVectorBlockSize, if any
}

// Option configures a new Column.
type Option func(*Column)

// WithTieredVector makes the column back its storage with a
// TieredVectorSequence instead of the default ArraySequence.
func WithTieredVector() Option {
	return WithTieredVectorBlockSize(0)
}

// WithTieredVectorBlockSize is WithTieredVector with an explicit
// minimum block size instead of the sequence package's default; 0
// falls back to that default.
func WithTieredVectorBlockSize(minBlockSize int) Option {
	return func(c *Column) {
		c.useTiered = true
		c.minBlockSize = minBlockSize
		c.values = sequence.NewTieredVectorSequenceWithBlockSize[Value](minBlockSize)
		if c.nullable {
			c.nullFlags = sequence.NewTieredVectorSequenceWithBlockSize[bool](minBlockSize)
		}
		if c.stringIDs != nil {
			c.stringIDs = sequence.NewTieredVectorSequenceWithBlockSize[interner.StringID](minBlockSize)
		}
	}
}

// WithInterner enables string interning for a String column, sharing
// in across every column constructed with it (typically the table's
// single interner instance). Has no effect on non-String columns.
func WithInterner(in *interner.StringInterner) Option {
	return func(c *Column) {
		if c.columnType != TypeString {
			return
		}
		c.in = in
		if c.useTiered {
			c.stringIDs = sequence.NewTieredVectorSequenceWithBlockSize[interner.StringID](c.minBlockSize)
		} else {
			c.stringIDs = sequence.NewArraySequence[interner.StringID]()
		}
	}
}

func New(name string, columnType Type, nullable bool, opts ...Option) *Column {
	c := &Column{
		name:       name,
		columnType: columnType,
		nullable:   nullable,
		values:     sequence.NewArraySequence[Value](),
	}
	if nullable {
		c.nullFlags = sequence.NewArraySequence[bool]()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Column) Name() string { return c.name }

func (c *Column) ColumnType() Type { return c.columnType }

func (c *Column) IsNullable() bool { return c.nullable }

func (c *Column) Len() int { return c.values.Len() }

func (c *Column) IsEmpty() bool { return c.values.IsEmpty() }

// UsesInterning reports whether this column stores strings via a
// shared StringInterner.
func (c *Column) UsesInterning() bool {
	return c.in != nil && c.columnType == TypeString
}

func (c *Column) validate(v Value) (Value, error) {
	if v.IsNull() {
		if !c.nullable {
			return Value{}, errs.NewErrNullabilityViolation(c.name)
		}
		return Null(), nil
	}
	if !v.matchesType(c.columnType) {
		return Value{}, errs.NewErrTypeMismatch(c.name, c.columnType.String(), v.Type().String())
	}
	return v, nil
}

// Get returns the value stored at index.
func (c *Column) Get(index int) (Value, error) {
	if c.nullable {
		isNull, err := c.nullFlags.Get(index)
		if err != nil {
			return Value{}, err
		}
		if isNull {
			return Null(), nil
		}
	}

	if c.stringIDs != nil {
		id, err := c.stringIDs.Get(index)
		if err != nil {
			return Value{}, err
		}
		s, ok := c.in.ResolveUnchecked(id)
		if !ok {
			return Value{}, errs.NewErrInvalidInternerID(uint32(id), index)
		}
		return String(s), nil
	}

	return c.values.Get(index)
}

// GetF64 is a fast numeric read: it checks the null flag directly and
// returns the float64 projection of Int32/Int64/Float32/Float64 values
// without going through the interner or constructing a String. It
// returns (0, false) for a null cell, a String/Bool column, or an
// out-of-range index.
func (c *Column) GetF64(index int) (float64, bool) {
	if c.nullable {
		isNull, err := c.nullFlags.Get(index)
		if err != nil || isNull {
			return 0, false
		}
	}

	switch c.columnType {
	case TypeInt32, TypeInt64, TypeFloat32, TypeFloat64:
	default:
		return 0, false
	}

	v, err := c.values.Get(index)
	if err != nil {
		return 0, false
	}
	return v.AsFloat64Numeric()
}

// IsNull reports whether the value at index is null.
func (c *Column) IsNull(index int) (bool, error) {
	if !c.nullable {
		return false, nil
	}
	return c.nullFlags.Get(index)
}

// Set overwrites the value at index.
func (c *Column) Set(index int, v Value) error {
	v, err := c.validate(v)
	if err != nil {
		return err
	}

	if v.IsNull() {
		if c.nullFlags != nil {
			if err := c.nullFlags.Set(index, true); err != nil {
				return err
			}
		}
		if c.stringIDs != nil {
			oldID, err := c.stringIDs.Get(index)
			if err != nil {
				return err
			}
			c.in.Release(oldID)
			if err := c.stringIDs.Set(index, 0); err != nil {
				return err
			}
		}
		return c.values.Set(index, defaultValueFor(c.columnType))
	}

	if c.nullFlags != nil {
		if err := c.nullFlags.Set(index, false); err != nil {
			return err
		}
	}

	if c.stringIDs != nil {
		s, _ := v.AsString()
		oldID, err := c.stringIDs.Get(index)
		if err != nil {
			return err
		}
		c.in.Release(oldID)
		newID := c.in.Intern(s)
		if err := c.stringIDs.Set(index, newID); err != nil {
			return err
		}
		return c.values.Set(index, String(""))
	}

	return c.values.Set(index, v)
}

// Insert places v at index, shifting subsequent elements right.
func (c *Column) Insert(index int, v Value) error {
	v, err := c.validate(v)
	if err != nil {
		return err
	}

	if v.IsNull() {
		if c.nullFlags != nil {
			if err := c.nullFlags.Insert(index, true); err != nil {
				return err
			}
		}
		if c.stringIDs != nil {
			if err := c.stringIDs.Insert(index, 0); err != nil {
				return err
			}
		}
		return c.values.Insert(index, defaultValueFor(c.columnType))
	}

	if c.nullFlags != nil {
		if err := c.nullFlags.Insert(index, false); err != nil {
			return err
		}
	}

	if c.stringIDs != nil {
		s, _ := v.AsString()
		id := c.in.Intern(s)
		if err := c.stringIDs.Insert(index, id); err != nil {
			return err
		}
		return c.values.Insert(index, String(""))
	}

	return c.values.Insert(index, v)
}

// Append adds v to the end of the column.
func (c *Column) Append(v Value) error {
	v, err := c.validate(v)
	if err != nil {
		return err
	}

	if v.IsNull() {
		if c.nullFlags != nil {
			c.nullFlags.Append(true)
		}
		if c.stringIDs != nil {
			c.stringIDs.Append(0)
		}
		c.values.Append(defaultValueFor(c.columnType))
		return nil
	}

	if c.nullFlags != nil {
		c.nullFlags.Append(false)
	}

	if c.stringIDs != nil {
		s, _ := v.AsString()
		id := c.in.Intern(s)
		c.stringIDs.Append(id)
		c.values.Append(String(""))
		return nil
	}

	c.values.Append(v)
	return nil
}

// Delete removes and returns the value at index. For interned string
// columns the id is removed from stringIDs and the placeholder from
// values before the string is resolved (via ResolveUnchecked, since
// the refcount may already reflect the pending release) and the
// reference finally released — this ordering mirrors the original
// implementation and matters because releasing first and resolving
// after would read a possibly-reused slot.
func (c *Column) Delete(index int) (Value, error) {
	var isNull bool
	if c.nullFlags != nil {
		v, err := c.nullFlags.Delete(index)
		if err != nil {
			return Value{}, err
		}
		isNull = v
	}

	if c.stringIDs != nil {
		id, err := c.stringIDs.Delete(index)
		if err != nil {
			return Value{}, err
		}
		if _, err := c.values.Delete(index); err != nil {
			return Value{}, err
		}

		if isNull {
			return Null(), nil
		}

		s, ok := c.in.ResolveUnchecked(id)
		c.in.Release(id)
		if !ok {
			return Value{}, errs.NewErrInvalidInternerID(uint32(id), index)
		}
		return String(s), nil
	}

	v, err := c.values.Delete(index)
	if err != nil {
		return Value{}, err
	}
	if isNull {
		return Null(), nil
	}
	return v, nil
}

// ForEach visits every (index, value) pair in order. Stops early if fn
// returns false.
func (c *Column) ForEach(fn func(index int, value Value) bool) {
	for i := 0; i < c.Len(); i++ {
		v, err := c.Get(i)
		if err != nil {
			return
		}
		if !fn(i, v) {
			return
		}
	}
}

// Values returns every value in the column, in order.
func (c *Column) Values() []Value {
	out := make([]Value, c.Len())
	for i := range out {
		out[i], _ = c.Get(i)
	}
	return out
}
