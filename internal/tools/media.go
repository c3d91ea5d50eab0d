package tools

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"geniemetrics/internal/providers/genai"
)

const transcribePrompt = "Transcribe this audio."

func defaultMedia(mimeType string) func(*Input) {
	return func(in *Input) {
		if in.Media != nil && in.Media.MIMEType == "" {
			in.Media.MIMEType = mimeType
		}
	}
}

func requireMedia(allowed []any) func(Input) error {
	return func(in Input) error {
		return validation.ValidateStruct(&in,
			validation.Field(&in.Media, mediaRules(allowed)),
			validation.Field(&in.Text, validation.Length(0, maxPromptText)),
		)
	}
}

func mediaRequest(in Input, prompt string) genai.Request {
	return genai.Request{Parts: []genai.Part{
		genai.InlinePart(in.Media.MIMEType, in.Media.Data),
		genai.TextPart(prompt),
	}}
}

func firstInline(resp *genai.Response, prefix string) (genai.InlineData, bool) {
	for _, part := range resp.Inline {
		if prefix == "" || strings.HasPrefix(part.MIMEType, prefix) {
			return part, true
		}
	}
	return genai.InlineData{}, false
}

// mediaTools generate or read binary content. Generation prompts are sent
// verbatim; a locale suffix would be spoken or drawn.
func mediaTools() []Tool {
	return []Tool{
		credits(TextToSpeech, "Text to Speech", 5).
			on(TierTTS).
			verbatim().
			defaulted(func(in *Input) {
				if in.Voice == "" {
					in.Voice = defaultVoice
				}
			}).
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Text, validation.Required, notBlank, validation.Length(1, maxPromptText)),
					validation.Field(&in.Voice, validation.In(prebuiltVoices...)),
				)
			}).
			builds(func(in Input) genai.Request {
				return genai.Request{
					Parts:              []genai.Part{genai.TextPart(in.Text)},
					ResponseModalities: []string{genai.ModalityAudio},
					VoiceName:          in.Voice,
				}
			}).
			parses(func(resp *genai.Response, _ Input) (any, error) {
				audio, ok := firstInline(resp, "")
				if !ok {
					return nil, genai.ErrEmptyResponse
				}
				return SpeechResult{MIMEType: audio.MIMEType, Data: audio.Data}, nil
			}),

		credits(ImageGenerate, "Image Generator", 10).
			on(TierImage).
			verbatim().
			defaulted(func(in *Input) {
				if in.AspectRatio == "" {
					in.AspectRatio = defaultAspect
				}
			}).
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Text, validation.Required, notBlank, validation.Length(1, maxPromptText)),
					validation.Field(&in.AspectRatio, validation.In(aspectRatios...)),
				)
			}).
			builds(func(in Input) genai.Request {
				return genai.Request{
					Parts:              []genai.Part{genai.TextPart(in.Text)},
					ResponseModalities: []string{genai.ModalityImage},
					AspectRatio:        in.AspectRatio,
				}
			}).
			parses(func(resp *genai.Response, _ Input) (any, error) {
				img, ok := firstInline(resp, "image/")
				if !ok {
					return nil, genai.ErrEmptyResponse
				}
				return ImageResult{DataURI: "data:" + img.MIMEType + ";base64," + img.Data}, nil
			}),

		credits(ImageAnalyze, "Image Analyzer", 5).
			on(TierPro).
			defaulted(func(in *Input) {
				defaultMedia("image/jpeg")(in)
				if in.Text == "" {
					in.Text = imagePromptHint
				}
			}).
			validated(requireMedia(imageMIMETypes)).
			builds(func(in Input) genai.Request { return mediaRequest(in, in.Text) }).
			parses(plainText).
			orElse(always("Analysis failed.")),

		credits(AudioTranscribe, "Audio Transcriber", 5).
			defaulted(defaultMedia("audio/mp3")).
			validated(requireMedia(audioMIMETypes)).
			builds(func(in Input) genai.Request { return mediaRequest(in, transcribePrompt) }).
			parses(plainText).
			orElse(always("Transcription failed.")),

		credits(VideoAnalyze, "Video Analyzer", 15).
			on(TierPro).
			defaulted(func(in *Input) {
				defaultMedia("video/mp4")(in)
				if in.Text == "" {
					in.Text = videoPromptHint
				}
			}).
			validated(requireMedia(videoMIMETypes)).
			builds(func(in Input) genai.Request { return mediaRequest(in, in.Text) }).
			parses(plainText).
			orElse(always("Analysis failed.")),
	}
}
