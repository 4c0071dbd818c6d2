package value

import (
	"bytes"
	"encoding/json"
)

// ToJSON renders v as the normalised JSON encoding of a FEEL value: numbers
// as JSON numbers, temporal values as their canonical string, ranges as
// `{"start":...,"end":...,"start-included":bool,"end-included":bool}`,
// contexts as JSON objects preserving insertion order, lists as JSON
// arrays, null as JSON null. Traces are discarded.
//
// Plain encoding/json is used throughout; no third-party JSON library is
// needed for this shape of encoding.
func ToJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case Null, Error:
		buf.WriteString("null")
		return nil
	case Boolean:
		if val.V {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case Number:
		enc, err := json.Marshal(json.Number(val.D.String()))
		if err != nil {
			return err
		}
		buf.Write(enc)
		return nil
	case Str:
		return writeJSONString(buf, val.V)
	case Date, Time, DateTime, YearsMonthsDuration, DaysTimeDuration:
		return writeJSONString(buf, stripTemporalMarkers(v.String()))
	case List:
		buf.WriteByte('[')
		for i, e := range val.Elements {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case *Context:
		buf.WriteByte('{')
		for i, k := range val.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			fv, _ := val.Get(k)
			if err := writeJSON(buf, fv); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case Range:
		buf.WriteString(`{"start":`)
		if err := writeJSON(buf, val.Low); err != nil {
			return err
		}
		buf.WriteString(`,"end":`)
		if err := writeJSON(buf, val.High); err != nil {
			return err
		}
		buf.WriteString(`,"start-included":`)
		buf.WriteString(boolLit(val.LowClosed))
		buf.WriteString(`,"end-included":`)
		buf.WriteString(boolLit(val.HighClosed))
		buf.WriteByte('}')
		return nil
	default:
		// Functions and type-descriptors have no JSON projection.
		buf.WriteString("null")
		return nil
	}
}

func boolLit(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(enc)
	return nil
}

// stripTemporalMarkers removes the `@"` ... `"` envelope FEEL's canonical
// literal form wraps temporal values in, since JSON renders their bare
// string form.
func stripTemporalMarkers(s string) string {
	if len(s) >= 3 && s[0] == '@' && s[1] == '"' && s[len(s)-1] == '"' {
		return s[2 : len(s)-1]
	}
	return s
}
