package trace

import (
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	can "github.com/samsamfire/canbridge/pkg/can"
)

// Frame directions as seen from the bridge
const (
	DirHardwareToVirtual = "rx"
	DirVirtualToHardware = "tx"
)

// Record is one bridged frame, encoded as a CBOR map. A trace file is
// a plain concatenation of records.
type Record struct {
	Timestamp int64  `cbor:"ts"`
	Direction string `cbor:"dir"`
	ID        uint32 `cbor:"id"`
	FD        bool   `cbor:"fd"`
	Data      []byte `cbor:"data"`
}

// Recorder appends CBOR frame records to a writer. Safe for
// concurrent use, both bridge directions share one recorder.
type Recorder struct {
	mu  sync.Mutex
	enc *cbor.Encoder
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: cbor.NewEncoder(w)}
}

func (r *Recorder) Record(direction string, frame can.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(Record{
		Timestamp: time.Now().UnixMicro(),
		Direction: direction,
		ID:        frame.ID,
		FD:        frame.IsFD,
		Data:      frame.Data,
	})
}

// Reader decodes a stream of trace records
type Reader struct {
	dec *cbor.Decoder
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

// Next returns the next record, io.EOF at end of stream
func (r *Reader) Next() (Record, error) {
	var record Record
	err := r.dec.Decode(&record)
	return record, err
}
