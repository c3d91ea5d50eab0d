package genai

import "sort"

// Role values used in chat history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Modality values for Request.ResponseModalities.
const (
	ModalityText  = "TEXT"
	ModalityAudio = "AUDIO"
	ModalityImage = "IMAGE"
)

// Grounding selects a server-side tool the model may call.
type Grounding string

const (
	GroundingNone   Grounding = ""
	GroundingSearch Grounding = "googleSearch"
	GroundingMaps   Grounding = "googleMaps"
)

// Part is one piece of a message: text or an inline base64 blob.
type Part struct {
	Text     string
	MIMEType string
	Data     string
}

// TextPart builds a text-only part.
func TextPart(text string) Part { return Part{Text: text} }

// InlinePart builds a base64 data part.
func InlinePart(mimeType, data string) Part { return Part{MIMEType: mimeType, Data: data} }

// Message is one turn of a conversation.
type Message struct {
	Role  string
	Parts []Part
}

// Request is everything a tool can ask of generateContent.
type Request struct {
	Model              string
	SystemInstruction  string
	History            []Message
	Parts              []Part
	Temperature        *float64
	ResponseMIMEType   string
	ResponseSchema     *Schema
	ResponseModalities []string
	VoiceName          string
	AspectRatio        string
	ThinkingBudget     int
	Grounding          Grounding
}

// Response is the flattened first candidate.
type Response struct {
	Text         string
	Inline       []InlineData
	Sources      []Source
	Places       []Source
	FinishReason string
}

// InlineData is a binary part returned by the model (audio or image).
type InlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// Source is a grounding citation.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Schema types as accepted by responseSchema.
const (
	TypeString  = "STRING"
	TypeNumber  = "NUMBER"
	TypeInteger = "INTEGER"
	TypeBoolean = "BOOLEAN"
	TypeArray   = "ARRAY"
	TypeObject  = "OBJECT"
)

// Schema is the OpenAPI subset Gemini uses for structured output.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// String, Number, Integer and Boolean are scalar schema shorthands.
func String() *Schema  { return &Schema{Type: TypeString} }
func Number() *Schema  { return &Schema{Type: TypeNumber} }
func Integer() *Schema { return &Schema{Type: TypeInteger} }
func Boolean() *Schema { return &Schema{Type: TypeBoolean} }

// Enum is a string schema limited to values.
func Enum(values ...string) *Schema { return &Schema{Type: TypeString, Enum: values} }

// ArrayOf wraps item in an array schema.
func ArrayOf(item *Schema) *Schema { return &Schema{Type: TypeArray, Items: item} }

// Object builds an object schema. Every property is required unless listed in optional.
func Object(props map[string]*Schema, optional ...string) *Schema {
	skip := make(map[string]struct{}, len(optional))
	for _, name := range optional {
		skip[name] = struct{}{}
	}
	required := make([]string, 0, len(props))
	for name := range props {
		if _, ok := skip[name]; !ok {
			required = append(required, name)
		}
	}
	sort.Strings(required)
	return &Schema{Type: TypeObject, Properties: props, Required: required}
}
