package lzma

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	headers := []Header{
		{Properties: Properties{3, 0, 2}, DictSize: 8 * 1024 * 1024, Size: -1},
		{Properties: Properties{4, 3, 3}, DictSize: 4096, Size: 10},
	}
	for _, want := range headers {
		data, err := want.marshalBinary()
		if err != nil {
			t.Fatalf("marshalBinary(%+v) error %s", want, err)
		}
		if len(data) != headerLen {
			t.Fatalf("marshalBinary(%+v) produced %d bytes; want %d", want, len(data), headerLen)
		}
		var got Header
		if err = got.unmarshalBinary(data); err != nil {
			t.Fatalf("unmarshalBinary error %s", err)
		}
		if got != want {
			t.Errorf("round trip = %+v; want %+v", got, want)
		}
	}
}

func TestHeaderRejectsZeroDictSize(t *testing.T) {
	data := make([]byte, headerLen)
	data[0] = Properties{3, 0, 2}.byte()
	// data[1:5] left zero: an all-zero dictionary size field, which falls
	// below MinDictSize and must be rejected here rather than reaching
	// newDecoderDataBuffer.
	var h Header
	if err := h.unmarshalBinary(data); err != ErrInvalidHeader {
		t.Fatalf("unmarshalBinary with zero dict size = %v; want ErrInvalidHeader", err)
	}
}

func TestValidHeader(t *testing.T) {
	headers := []Header{
		{Properties: Properties{3, 0, 2}, DictSize: 8 * 1024 * 1024, Size: -1},
		{Properties: Properties{4, 3, 3}, DictSize: 4096, Size: 10},
	}
	for _, h := range headers {
		data, err := h.marshalBinary()
		if err != nil {
			t.Fatalf("marshalBinary error %s", err)
		}
		if !ValidHeader(data) {
			t.Errorf("ValidHeader(%+v) = false; want true", h)
		}
	}
	if ValidHeader([]byte("\xff234567890123")) {
		t.Error("ValidHeader of a bogus 13-byte string = true; want false")
	}
	if ValidHeader([]byte("short")) {
		t.Error("ValidHeader of a too-short buffer = true; want false")
	}
}
