// Copyright (c) 2024 Neomantra Corp

package itch

// SystemEvent (tag 'S') announces session-wide milestones: start/end of
// system hours, start/end of market hours, start/end of the message stream.
type SystemEvent struct {
	Header MessageHeader
	Code   SystemEventCode
}

func (m *SystemEvent) Type() MessageType   { return MessageTypeSystemEvent }
func (m *SystemEvent) Head() MessageHeader { return m.Header }

// DecodeSystemEvent decodes b, which must be exactly RecordLength(MessageTypeSystemEvent) bytes.
func DecodeSystemEvent(b []byte) (*SystemEvent, error) {
	if err := checkLength(MessageTypeSystemEvent, b); err != nil {
		return nil, err
	}
	m := &SystemEvent{}
	fillMessageHeader(b[0:MessageHeaderSize], &m.Header)
	code, err := decodeSystemEventCode(byte(MessageTypeSystemEvent), MessageHeaderSize, b[10])
	if err != nil {
		return nil, err
	}
	m.Code = code
	return m, nil
}
