package hub

// MessageType distinguishes text (JSON) from binary payloads.
type MessageType int

const (
	// JSONMessage is a UTF-8 JSON payload.
	JSONMessage MessageType = iota

	// BinaryMessage is an opaque binary payload.
	BinaryMessage
)

// Message is one broadcast unit.
type Message struct {
	Type MessageType
	Data []byte
}

// NewJSONMessage wraps already-encoded JSON.
func NewJSONMessage(data []byte) Message {
	return Message{Type: JSONMessage, Data: data}
}

// NewBinaryMessage wraps binary data.
func NewBinaryMessage(data []byte) Message {
	return Message{Type: BinaryMessage, Data: data}
}
