package stream

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestReadEndian(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test")

	t.Run("uint32 big-endian", func(t *testing.T) {
		val, err := ReadEndian[uint32](sr, 0, "test", BigEndian)
		if err != nil {
			t.Fatalf("ReadEndian failed: %v", err)
		}
		// 0x01020304 = 16909060
		if val != 16909060 {
			t.Errorf("ReadEndian(BigEndian) = %d, want 16909060", val)
		}
	})

	t.Run("uint32 little-endian", func(t *testing.T) {
		val, err := ReadEndian[uint32](sr, 0, "test", LittleEndian)
		if err != nil {
			t.Fatalf("ReadEndian failed: %v", err)
		}
		// 0x04030201 = 67305985
		if val != 67305985 {
			t.Errorf("ReadEndian(LittleEndian) = %d, want 67305985", val)
		}
	})

	t.Run("uint16 at offset", func(t *testing.T) {
		val, err := ReadEndian[uint16](sr, 2, "test", BigEndian)
		if err != nil {
			t.Fatalf("ReadEndian failed: %v", err)
		}
		if val != 0x0304 {
			t.Errorf("ReadEndian = 0x%04x, want 0x0304", val)
		}
	})

	t.Run("past end", func(t *testing.T) {
		if _, err := ReadEndian[uint32](sr, 2, "test", BigEndian); err == nil {
			t.Error("expected error reading past end")
		}
	})
}

func TestPutGetUint_MatchesEncodingBinary(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		value  uint64
		endian Endianness
		want   func() []byte
	}{
		{
			name: "uint16 big", width: 2, value: 0xABCD, endian: BigEndian,
			want: func() []byte { b := make([]byte, 2); binary.BigEndian.PutUint16(b, 0xABCD); return b },
		},
		{
			name: "uint16 little", width: 2, value: 0xABCD, endian: LittleEndian,
			want: func() []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, 0xABCD); return b },
		},
		{
			name: "uint32 big", width: 4, value: 0x12345678, endian: BigEndian,
			want: func() []byte { b := make([]byte, 4); binary.BigEndian.PutUint32(b, 0x12345678); return b },
		},
		{
			name: "uint64 little", width: 8, value: 0x0102030405060708, endian: LittleEndian,
			want: func() []byte { b := make([]byte, 8); binary.LittleEndian.PutUint64(b, 0x0102030405060708); return b },
		},
		{
			name: "uint24 big", width: 3, value: 0x0A0B0C, endian: BigEndian,
			want: func() []byte { return []byte{0x0A, 0x0B, 0x0C} },
		},
		{
			name: "uint24 little", width: 3, value: 0x0A0B0C, endian: LittleEndian,
			want: func() []byte { return []byte{0x0C, 0x0B, 0x0A} },
		},
		{
			name: "uint8", width: 1, value: 0x7F, endian: LittleEndian,
			want: func() []byte { return []byte{0x7F} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.width)
			putUint(buf, tt.value, tt.endian)
			if !bytes.Equal(buf, tt.want()) {
				t.Errorf("putUint = %x, want %x", buf, tt.want())
			}
			if got := getUint(buf, tt.endian); got != tt.value {
				t.Errorf("getUint = 0x%x, want 0x%x", got, tt.value)
			}
		})
	}
}

func TestEndianness_String(t *testing.T) {
	if BigEndian.String() != "big" || LittleEndian.String() != "little" {
		t.Errorf("unexpected names: %s %s", BigEndian, LittleEndian)
	}
}
