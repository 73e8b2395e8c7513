package base85

import (
	"math"
)

// EncodeFloat32s encodes the IEEE-754 bit patterns of vals, in the encoding's
// byte order. This is the payload of an Arnold b85FLOAT array. Negative zero
// is not the zero word, so it never uses the zero shorthand.
func (e *Encoding) EncodeFloat32s(vals []float32) string {
	buf := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		buf = e.order.AppendUint32(buf, math.Float32bits(v))
	}
	return e.EncodeToString(buf)
}

// DecodeFloat32s is the inverse of [Encoding.EncodeFloat32s].
func (e *Encoding) DecodeFloat32s(s string) ([]float32, error) {
	buf, err := e.DecodeString(s)
	if err != nil {
		return nil, err
	}
	vals := make([]float32, len(buf)/4)
	for i := range vals {
		vals[i] = math.Float32frombits(e.order.Uint32(buf[4*i:]))
	}
	return vals, nil
}

// EncodeUint32s encodes vals as words, the payload of an Arnold b85UINT
// array.
func (e *Encoding) EncodeUint32s(vals []uint32) string {
	buf := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		buf = e.order.AppendUint32(buf, v)
	}
	return e.EncodeToString(buf)
}

func (e *Encoding) DecodeUint32s(s string) ([]uint32, error) {
	buf, err := e.DecodeString(s)
	if err != nil {
		return nil, err
	}
	vals := make([]uint32, len(buf)/4)
	for i := range vals {
		vals[i] = e.order.Uint32(buf[4*i:])
	}
	return vals, nil
}
