package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Record es un objeto JSON tal como lo devuelve el servicio.
type Record map[string]any

var (
	ErrMissing = errors.New("field missing")
	ErrShape   = errors.New("field has unexpected shape")
)

// FieldError describe un campo requerido ausente o con forma inesperada.
type FieldError struct {
	Field  string
	Reason error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Reason
}

func missing(field string) error {
	return &FieldError{Field: field, Reason: ErrMissing}
}

func shape(field string) error {
	return &FieldError{Field: field, Reason: ErrShape}
}

// IsIncomplete indica si err proviene de un payload parcial o con otra forma.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrMissing) || errors.Is(err, ErrShape)
}

// Decode parsea un objeto JSON conservando los números como json.Number.
func Decode(raw []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec == nil {
		return nil, shape("$")
	}
	return rec, nil
}

// AsRecord devuelve v como Record si es un objeto indexable.
func AsRecord(v any) (Record, bool) {
	switch r := v.(type) {
	case Record:
		return r, r != nil
	case map[string]any:
		return Record(r), r != nil
	default:
		return nil, false
	}
}

func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Value devuelve el valor crudo; solo falla si la clave no existe.
func (r Record) Value(field string) (any, error) {
	v, ok := r[field]
	if !ok {
		return nil, missing(field)
	}
	return v, nil
}

func (r Record) String(field string) (string, error) {
	v, ok := r[field]
	if !ok {
		return "", missing(field)
	}
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(s), nil
	default:
		return "", shape(field)
	}
}

func (r Record) Int(field string) (int64, error) {
	v, ok := r[field]
	if !ok {
		return 0, missing(field)
	}
	if v == nil {
		return 0, nil
	}
	n, ok := toInt(v)
	if !ok {
		return 0, shape(field)
	}
	return n, nil
}

// ID es como Int pero un null no cuenta como identificador.
func (r Record) ID(field string) (int64, error) {
	v, ok := r[field]
	if !ok {
		return 0, missing(field)
	}
	n, ok := toInt(v)
	if !ok {
		return 0, shape(field)
	}
	return n, nil
}

func (r Record) Bool(field string) (bool, error) {
	v, ok := r[field]
	if !ok {
		return false, missing(field)
	}
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "true":
			return true, nil
		case "", "0", "false":
			return false, nil
		}
	case json.Number, float64:
		n, ok := toInt(b)
		if ok {
			return n != 0, nil
		}
	}
	return false, shape(field)
}

// Object exige un objeto anidado; null también es una forma inválida.
func (r Record) Object(field string) (Record, error) {
	v, ok := r[field]
	if !ok {
		return nil, missing(field)
	}
	rec, ok := AsRecord(v)
	if !ok {
		return nil, shape(field)
	}
	return rec, nil
}

// Array devuelve la lista del campo; null se trata como lista vacía.
func (r Record) Array(field string) ([]any, error) {
	v, ok := r[field]
	if !ok {
		return nil, missing(field)
	}
	switch a := v.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return a, nil
	default:
		return nil, shape(field)
	}
}

// RefID extrae el id de un objeto o de una referencia escalar.
func RefID(v any) (int64, bool) {
	if rec, ok := AsRecord(v); ok {
		id, err := rec.ID("id")
		return id, err == nil
	}
	return toInt(v)
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil || f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
