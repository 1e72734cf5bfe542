package service

import (
	"errors"

	"stash-connect/internal/payload"
)

// fields lee atributos requeridos y se queda con el primer fallo.
// Los lectores anidados comparten el fallo con su raíz.
type fields struct {
	rec    payload.Record
	prefix string
	root   *fields
	err    error
}

func readFields(rec payload.Record) *fields {
	f := &fields{rec: rec}
	f.root = f
	return f
}

func (f *fields) failed() bool { return f.root.err != nil }

func (f *fields) Err() error { return f.root.err }

func (f *fields) fail(err error) {
	if f.root.err != nil {
		return
	}
	var fe *payload.FieldError
	if f.prefix != "" && errors.As(err, &fe) {
		err = &payload.FieldError{Field: f.prefix + fe.Field, Reason: fe.Reason}
	}
	f.root.err = err
}

func (f *fields) str(name string) string {
	if f.failed() {
		return ""
	}
	v, err := f.rec.String(name)
	if err != nil {
		f.fail(err)
	}
	return v
}

func (f *fields) num(name string) int64 {
	if f.failed() {
		return 0
	}
	v, err := f.rec.Int(name)
	if err != nil {
		f.fail(err)
	}
	return v
}

func (f *fields) id(name string) int64 {
	if f.failed() {
		return 0
	}
	v, err := f.rec.ID(name)
	if err != nil {
		f.fail(err)
	}
	return v
}

func (f *fields) flag(name string) bool {
	if f.failed() {
		return false
	}
	v, err := f.rec.Bool(name)
	if err != nil {
		f.fail(err)
	}
	return v
}

func (f *fields) value(name string) any {
	if f.failed() {
		return nil
	}
	v, err := f.rec.Value(name)
	if err != nil {
		f.fail(err)
	}
	return v
}

func (f *fields) array(name string) []any {
	if f.failed() {
		return nil
	}
	v, err := f.rec.Array(name)
	if err != nil {
		f.fail(err)
	}
	return v
}

// object devuelve un lector sobre el objeto anidado name.
func (f *fields) object(name string) *fields {
	sub := &fields{root: f.root, prefix: f.prefix + name + "."}
	if f.failed() {
		return sub
	}
	rec, err := f.rec.Object(name)
	if err != nil {
		f.fail(err)
		return sub
	}
	sub.rec = rec
	return sub
}

// ref exige una referencia con id: un objeto con "id" o un id escalar.
func (f *fields) ref(name string) any {
	v := f.value(name)
	if f.failed() {
		return nil
	}
	if _, ok := payload.RefID(v); !ok {
		f.fail(&payload.FieldError{Field: name, Reason: payload.ErrShape})
		return nil
	}
	return v
}
