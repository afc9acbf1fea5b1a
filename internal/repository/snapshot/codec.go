package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
)

const (
	CodecJSON = "json"
	CodecCBOR = "cbor"
)

// Codec turns a state into bytes and back. Unmarshal decodes queue and
// history records one by one and reports undecodable records separately, so
// one bad entry does not discard the whole snapshot.
type Codec interface {
	Name() string
	Marshal(st *models.SystemState) ([]byte, error)
	Unmarshal(data []byte) (*models.SystemState, []error, error)
}

func CodecByName(name string) (Codec, error) {
	switch name {
	case "", CodecJSON:
		return jsonCodec{}, nil
	case CodecCBOR:
		return newCBORCodec()
	default:
		return nil, fmt.Errorf("unknown snapshot codec %q", name)
	}
}

type envelope[R any] struct {
	User     string         `json:"user" cbor:"user"`
	Queue    []R            `json:"queue" cbor:"queue"`
	History  []R            `json:"history" cbor:"history"`
	Sections map[string]int `json:"sections" cbor:"sections"`
}

func decodeEnvelope[R any](env envelope[R], decode func(R, *models.Ticket) error) (*models.SystemState, []error) {
	var rejected []error
	records := func(in []R) []models.Ticket {
		out := make([]models.Ticket, 0, len(in))
		for i, raw := range in {
			var t models.Ticket
			if err := decode(raw, &t); err != nil {
				rejected = append(rejected, fmt.Errorf("record %d: %w", i, err))
				continue
			}
			out = append(out, t)
		}
		return out
	}

	st := &models.SystemState{
		CurrentUserName: env.User,
		Queue:           records(env.Queue),
		History:         records(env.History),
		SectionCounters: env.Sections,
	}
	if st.SectionCounters == nil {
		st.SectionCounters = map[string]int{}
	}
	return st, rejected
}

type jsonCodec struct{}

func (jsonCodec) Name() string {
	return CodecJSON
}

func (jsonCodec) Marshal(st *models.SystemState) ([]byte, error) {
	return json.Marshal(st)
}

func (jsonCodec) Unmarshal(data []byte) (*models.SystemState, []error, error) {
	var env envelope[json.RawMessage]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("decoding json snapshot: %w", err)
	}

	st, rejected := decodeEnvelope(env, func(raw json.RawMessage, t *models.Ticket) error {
		return json.Unmarshal(raw, t)
	})
	return st, rejected, nil
}

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func newCBORCodec() (cborCodec, error) {
	encOpts := cbor.CoreDetEncOptions()
	encOpts.Time = cbor.TimeRFC3339Nano
	enc, err := encOpts.EncMode()
	if err != nil {
		return cborCodec{}, fmt.Errorf("cbor encoder: %w", err)
	}

	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return cborCodec{}, fmt.Errorf("cbor decoder: %w", err)
	}

	return cborCodec{enc: enc, dec: dec}, nil
}

func (cborCodec) Name() string {
	return CodecCBOR
}

func (c cborCodec) Marshal(st *models.SystemState) ([]byte, error) {
	return c.enc.Marshal(st)
}

func (c cborCodec) Unmarshal(data []byte) (*models.SystemState, []error, error) {
	var env envelope[cbor.RawMessage]
	if err := c.dec.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("decoding cbor snapshot: %w", err)
	}

	st, rejected := decodeEnvelope(env, func(raw cbor.RawMessage, t *models.Ticket) error {
		return c.dec.Unmarshal(raw, t)
	})
	return st, rejected, nil
}
