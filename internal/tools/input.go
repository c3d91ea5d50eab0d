package tools

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"geniemetrics/internal/domain"
)

const (
	maxPromptText   = 5000
	maxQueryLength  = 500
	maxChatHistory  = 50
	maxMediaBase64  = 28 << 20
	minAuditLength  = 50
	defaultVoice    = "Kore"
	defaultAspect   = "1:1"
	defaultRobots   = "standard"
	imagePromptHint = "Analyze this image for SEO: describe it, suggest alt text and a filename."
	videoPromptHint = "Summarize this video and suggest an SEO title, description and tags."
)

var (
	aspectRatios   = []any{"1:1", "4:3", "16:9", "9:16"}
	socialFormats  = []any{"Hashtags", "YouTube", "TikTok", "Captions", "Scripts"}
	postPlatforms  = []any{"Twitter", "LinkedIn", "Facebook"}
	prebuiltVoices = []any{"Kore", "Puck", "Charon", "Fenrir", "Zephyr", "Aoede", "Leda", "Orus"}
	imageMIMETypes = []any{"image/jpeg", "image/png", "image/webp"}
	audioMIMETypes = []any{"audio/mp3", "audio/mpeg", "audio/wav", "audio/ogg", "audio/webm"}
	videoMIMETypes = []any{"video/mp4", "video/webm", "video/quicktime"}
)

// Input carries every field a tool may read. Each tool validates only the
// subset it uses.
type Input struct {
	Query       string     `json:"query"`
	Competitor  string     `json:"competitor"`
	Domains     []string   `json:"domains"`
	Keywords    []string   `json:"keywords"`
	Languages   []string   `json:"languages"`
	Text        string     `json:"text"`
	Instruction string     `json:"instruction"`
	Platform    string     `json:"platform"`
	Type        string     `json:"type"`
	Voice       string     `json:"voice"`
	AspectRatio string     `json:"aspect_ratio"`
	Media       *Media     `json:"media"`
	History     []ChatTurn `json:"history"`

	// Locale is set by the server from the request, never by the client.
	Locale string `json:"-"`
}

// Media is an inline base64 upload.
type Media struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// ChatTurn is one prior message of a chat conversation.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

func (in Input) normalized() Input {
	in.Query = strings.TrimSpace(in.Query)
	in.Competitor = strings.TrimSpace(in.Competitor)
	in.Instruction = strings.TrimSpace(in.Instruction)
	in.Platform = strings.TrimSpace(in.Platform)
	in.Type = strings.TrimSpace(in.Type)
	in.Voice = strings.TrimSpace(in.Voice)
	in.AspectRatio = strings.TrimSpace(in.AspectRatio)
	in.Domains = trimAll(in.Domains)
	in.Keywords = trimAll(in.Keywords)
	in.Languages = trimAll(in.Languages)
	if in.Media != nil {
		media := *in.Media
		media.MIMEType = strings.ToLower(strings.TrimSpace(media.MIMEType))
		media.Data = stripDataURI(strings.TrimSpace(media.Data))
		in.Media = &media
	}
	return in
}

func trimAll(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// stripDataURI accepts "data:<mime>;base64,<payload>" as well as bare base64.
func stripDataURI(data string) string {
	if strings.HasPrefix(data, "data:") {
		if idx := strings.Index(data, ","); idx >= 0 {
			return data[idx+1:]
		}
	}
	return data
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
}

// notBlank rejects strings that hold nothing but whitespace. Text fields keep
// their original spacing for the prompt, so Required alone would accept them.
var notBlank = validation.By(func(value any) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// minTrimmedLength counts characters after trimming surrounding whitespace.
func minTrimmedLength(min int) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if utf8.RuneCountInString(strings.TrimSpace(s)) < min {
			return fmt.Errorf("must be at least %d characters", min)
		}
		return nil
	})
}

var (
	queryRules = []validation.Rule{validation.Required, validation.Length(1, maxQueryLength)}
	textRules  = []validation.Rule{validation.Required, notBlank}
)

func base64Rule(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if len(s) > maxMediaBase64 {
		return errors.New("media is too large")
	}
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return errors.New("must be base64 encoded")
	}
	return nil
}

func mediaRules(allowed []any) validation.Rule {
	return validation.By(func(value any) error {
		m, _ := value.(*Media)
		if m == nil {
			return errors.New("is required")
		}
		return validation.ValidateStruct(m,
			validation.Field(&m.MIMEType, validation.Required, validation.In(allowed...)),
			validation.Field(&m.Data, validation.Required, validation.By(base64Rule)),
		)
	})
}

var chatTurnRule = validation.By(func(value any) error {
	turn, _ := value.(ChatTurn)
	return validation.ValidateStruct(&turn,
		validation.Field(&turn.Role, validation.Required, validation.In("user", "model")),
		validation.Field(&turn.Text, validation.Required, notBlank),
	)
})

// languageName returns the English display name for a locale, or "" for
// English and unparseable locales.
func languageName(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	if base.String() == "en" {
		return ""
	}
	return display.English.Languages().Name(language.Make(base.String()))
}

func withLocale(prompt, locale string) string {
	if name := languageName(locale); name != "" {
		return prompt + "\nRespond in " + name + "."
	}
	return prompt
}
