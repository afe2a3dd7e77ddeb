package models

// a light as reported by the lighting service
type Light struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	On    bool   `json:"on"`
	// nil when the light has no colour capability or the field was omitted
	Color *Color   `json:"color"`
	Tags  []string `json:"tags"`
}

// DisplayLabel falls back to the id when the light has no label
func (l Light) DisplayLabel() string {
	if l.Label != "" {
		return l.Label
	}
	return l.ID
}

// the lighting service's native colour representation
type Color struct {
	// degrees, [0,360)
	Hue float64 `json:"hue"`
	// [0,1]
	Saturation float64 `json:"saturation"`
	// [0,1]
	Brightness float64 `json:"brightness"`
	Kelvin     int     `json:"kelvin"`
}

// the wearable's colour encoding, h/s/b are percentages
type CompactColor struct {
	H int `json:"colorH"`
	S int `json:"colorS"`
	B int `json:"colorB"`
	K int `json:"colorK"`
}

// represents a group of lights sharing a tag on the lighting service
type TagGroup struct {
	Label string
	// colour of the first light seen with this tag, display only
	RepresentativeColor CompactColor
}

type TargetType string

const (
	TargetAll   TargetType = "all"
	TargetLight TargetType = "light"
	TargetTag   TargetType = "tag"
)

// the addressing context of a remote command
type Target struct {
	Type  TargetType
	Index int
}

type MessageType string

const (
	MessageTypeError MessageType = "error"
	MessageTypeLight MessageType = "light"
	MessageTypeTag   MessageType = "tag"
	MessageTypeAll   MessageType = "all"
)

type Method string

const (
	MethodBegin   Method = "begin"
	MethodData    Method = "data"
	MethodEnd     Method = "end"
	MethodRefresh Method = "refresh"
	MethodToggle  Method = "toggle"
	MethodOn      Method = "on"
	MethodOff     Method = "off"
	MethodColor   Method = "color"
	MethodReady   Method = "ready"
)

type LightState string

const (
	LightStateOn    LightState = "ON"
	LightStateOff   LightState = "OFF"
	LightStateError LightState = "Err"
)

// a message exchanged with the wearable
type Message struct {
	Type   MessageType `json:"type,omitempty"`
	Method Method      `json:"method,omitempty"`
	// position within the batch, or the count on begin/end
	Index int        `json:"index"`
	Label string     `json:"label,omitempty"`
	State LightState `json:"state,omitempty"`
	*CompactColor
}

// Target returns the addressing context carried by an inbound command
func (m Message) Target() Target {
	switch m.Type {
	case MessageTypeLight:
		return Target{Type: TargetLight, Index: m.Index}
	case MessageTypeTag:
		return Target{Type: TargetTag, Index: m.Index}
	default:
		return Target{Type: TargetAll}
	}
}
