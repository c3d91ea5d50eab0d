package genai

type wireRequest struct {
	Contents          []wireContent         `json:"contents"`
	SystemInstruction *wireContent          `json:"systemInstruction,omitempty"`
	Tools             []map[string]struct{} `json:"tools,omitempty"`
	GenerationConfig  *wireGenerationConfig `json:"generationConfig,omitempty"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *wireInlineData `json:"inlineData,omitempty"`
	Thought    bool            `json:"thought,omitempty"`
}

type wireInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type wireGenerationConfig struct {
	Temperature        *float64            `json:"temperature,omitempty"`
	CandidateCount     int                 `json:"candidateCount,omitempty"`
	ResponseMIMEType   string              `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema             `json:"responseSchema,omitempty"`
	ResponseModalities []string            `json:"responseModalities,omitempty"`
	SpeechConfig       *wireSpeechConfig   `json:"speechConfig,omitempty"`
	ImageConfig        *wireImageConfig    `json:"imageConfig,omitempty"`
	ThinkingConfig     *wireThinkingConfig `json:"thinkingConfig,omitempty"`
}

type wireSpeechConfig struct {
	VoiceConfig struct {
		PrebuiltVoiceConfig struct {
			VoiceName string `json:"voiceName"`
		} `json:"prebuiltVoiceConfig"`
	} `json:"voiceConfig"`
}

type wireImageConfig struct {
	AspectRatio string `json:"aspectRatio"`
}

type wireThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type wireResponse struct {
	Candidates []struct {
		Content           wireContent `json:"content"`
		FinishReason      string      `json:"finishReason"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web  *wireChunk `json:"web"`
				Maps *wireChunk `json:"maps"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type wireChunk struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type wireError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func toWireParts(parts []Part) []wirePart {
	out := make([]wirePart, 0, len(parts))
	for _, p := range parts {
		if p.Data != "" {
			out = append(out, wirePart{InlineData: &wireInlineData{MIMEType: p.MIMEType, Data: p.Data}})
			continue
		}
		out = append(out, wirePart{Text: p.Text})
	}
	return out
}

func buildWireRequest(req Request) wireRequest {
	var contents []wireContent
	for _, msg := range req.History {
		contents = append(contents, wireContent{Role: msg.Role, Parts: toWireParts(msg.Parts)})
	}
	contents = append(contents, wireContent{Role: RoleUser, Parts: toWireParts(req.Parts)})

	out := wireRequest{Contents: contents}
	if req.SystemInstruction != "" {
		out.SystemInstruction = &wireContent{Parts: []wirePart{{Text: req.SystemInstruction}}}
	}
	if req.Grounding != GroundingNone {
		out.Tools = []map[string]struct{}{{string(req.Grounding): {}}}
	}

	cfg := &wireGenerationConfig{
		Temperature:        req.Temperature,
		ResponseMIMEType:   req.ResponseMIMEType,
		ResponseSchema:     req.ResponseSchema,
		ResponseModalities: req.ResponseModalities,
	}
	if req.VoiceName != "" {
		cfg.SpeechConfig = &wireSpeechConfig{}
		cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName = req.VoiceName
	}
	if req.AspectRatio != "" {
		cfg.ImageConfig = &wireImageConfig{AspectRatio: req.AspectRatio}
	}
	if req.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &wireThinkingConfig{ThinkingBudget: req.ThinkingBudget}
	}
	if !cfg.empty() {
		out.GenerationConfig = cfg
	}
	return out
}

func (c *wireGenerationConfig) empty() bool {
	return c.Temperature == nil && c.ResponseMIMEType == "" && c.ResponseSchema == nil &&
		len(c.ResponseModalities) == 0 && c.SpeechConfig == nil && c.ImageConfig == nil &&
		c.ThinkingConfig == nil
}
