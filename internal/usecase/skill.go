// Package usecase implements the skill's request-processing pipeline: intent
// routing, slot parsing, cache-key derivation and the translate-synthesize-
// cache orchestration.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"project-translate/internal/domain"
	"project-translate/internal/language"
)

// Inbound request and intent type strings as delivered by the platform.
const (
	reqLaunch       = "LaunchRequest"
	reqIntent       = "IntentRequest"
	reqTranslate    = "TranslateIntent"
	reqHelp         = "AMAZON.HelpIntent"
	reqCancel       = "AMAZON.CancelIntent"
	reqStop         = "AMAZON.StopIntent"
	reqSessionEnded = "SessionEndedRequest"
)

const (
	cardTitle = "Translation"

	welcomeMessage = "Welcome to Project Translate. What would you like to translate?"

	parseErrMessage = "I'm sorry, Project Translate needs both the language " +
		"and the phrase you want translated. "

	unsupportedMessage = "I'm sorry, I could not identify a language that " +
		"Project Translate supports. I've placed a list of supported languages " +
		"in your Cards."

	engineErrMessage = "I'm sorry, Project Translate could not complete that " +
		"translation. Please try again later."
)

var examples = []string{
	"Try, I love horses in Spanish",
	"Try, I love cats to Japanese",
	"Try, I love dogs in German",
}

var pickExample = func() string {
	return examples[rand.Intn(len(examples))]
}

// Translator invokes the external translation engine.
type Translator interface {
	Translate(ctx context.Context, langCode, text string) (string, error)
}

// Synthesizer invokes the external speech engine.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

// AudioStore is the content-addressed cache of synthesized recordings.
// Exists deliberately returns a plain bool: a failed lookup counts as a miss.
type AudioStore interface {
	Exists(ctx context.Context, key string) bool
	Store(ctx context.Context, key string, audio []byte) error
	PresignedURL(ctx context.Context, key string) (string, error)
}

type handlerFunc func(ctx context.Context, ev domain.Envelope) (domain.Response, error)

// SkillService classifies inbound events and runs the translation pipeline.
// It holds no per-request state; every invocation is independent.
type SkillService struct {
	registry   *language.Registry
	translator Translator
	synth      Synthesizer
	store      AudioStore
	appID      string
	routes     map[string]handlerFunc
}

func NewSkillService(registry *language.Registry, translator Translator, synth Synthesizer, store AudioStore, appID string) (*SkillService, error) {
	if registry == nil {
		return nil, errors.New("usecase: language registry must not be nil")
	}
	if translator == nil {
		return nil, errors.New("usecase: translator must not be nil")
	}
	if synth == nil {
		return nil, errors.New("usecase: synthesizer must not be nil")
	}
	if store == nil {
		return nil, errors.New("usecase: audio store must not be nil")
	}
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return nil, errors.New("usecase: application id must not be empty")
	}

	s := &SkillService{
		registry:   registry,
		translator: translator,
		synth:      synth,
		store:      store,
		appID:      appID,
	}
	s.routes = map[string]handlerFunc{
		reqLaunch:       s.onLaunch,
		reqTranslate:    s.onTranslate,
		reqIntent:       s.onTranslate,
		reqHelp:         s.onHelp,
		reqCancel:       s.onStop,
		reqStop:         s.onStop,
		reqSessionEnded: s.onStop,
	}
	return s, nil
}

// HandleEvent verifies the caller's identity, classifies the event and
// dispatches to the bound handler. Identity is checked before anything else;
// a mismatch aborts the whole event.
func (s *SkillService) HandleEvent(ctx context.Context, ev domain.Envelope) (domain.Response, error) {
	if ev.Session.Application.ApplicationID != s.appID {
		return domain.Response{}, newError(ErrorInvalidApplication, "application_id_mismatch", nil)
	}

	reqType := ev.Request.Type
	if ev.Request.Intent != nil && ev.Request.Intent.Name != "" {
		reqType = ev.Request.Intent.Name
	}

	h, ok := s.routes[reqType]
	if !ok {
		return domain.Response{}, newError(ErrorUnrecognizedRequest, "unknown_request_type", fmt.Errorf("type %q", reqType))
	}
	return h(ctx, ev)
}

func (s *SkillService) onTranslate(ctx context.Context, ev domain.Envelope) (domain.Response, error) {
	var slots map[string]domain.Slot
	if ev.Request.Intent != nil {
		slots = ev.Request.Intent.Slots
	}

	text, lang := ParseSlots(slots, s.registry)
	if lang == "" {
		msg := parseErrMessage + pickExample()
		card := domain.NewCard(cardTitle, msg)
		return domain.NewSpeechResponse(msg, domain.SpeechPlainText, &card, true), nil
	}
	return s.Translate(ctx, text, lang)
}

// Translate runs the pipeline for an already-parsed phrase and target
// language name: resolve the language, check the cache, translate and
// synthesize on a miss, then answer with SSML embedding a presigned URL.
func (s *SkillService) Translate(ctx context.Context, text, lang string) (domain.Response, error) {
	spec, ok := s.registry.Resolve(lang)
	if !ok {
		card := domain.NewCard(cardTitle, "Supported languages: "+strings.Join(s.registry.Names(), ", "))
		return domain.NewSpeechResponse(unsupportedMessage, domain.SpeechPlainText, &card, false), nil
	}

	key := DeriveKey(text, spec.Code)
	slog.InfoContext(ctx, "translating", "text", text, "language", spec.Name, "key", key)

	cardContent := fmt.Sprintf("%q in, %s", text, spec.Name)
	if !s.store.Exists(ctx, key) {
		translation, err := s.translator.Translate(ctx, spec.Code, text)
		if err != nil {
			slog.ErrorContext(ctx, "translation failed", "language", spec.Code, "err", err)
			return engineFailure(), nil
		}

		audio, err := s.synth.Synthesize(ctx, translation, spec.Voice)
		if err != nil {
			slog.ErrorContext(ctx, "synthesis failed", "voice", spec.Voice, "err", err)
			return engineFailure(), nil
		}

		if err := s.store.Store(ctx, key, audio); err != nil {
			slog.ErrorContext(ctx, "storing recording failed", "key", key, "err", err)
			return engineFailure(), nil
		}
		cardContent += "\n\n" + translation
	}

	url, err := s.store.PresignedURL(ctx, key)
	if err != nil {
		slog.ErrorContext(ctx, "presigning recording failed", "key", key, "err", err)
		return engineFailure(), nil
	}

	card := domain.NewCard(cardTitle, cardContent)
	ssml := fmt.Sprintf("<speak><audio src='%s' /></speak>", url)
	return domain.NewSpeechResponse(ssml, domain.SpeechSSML, &card, false), nil
}

func (s *SkillService) onLaunch(_ context.Context, _ domain.Envelope) (domain.Response, error) {
	card := domain.NewCard(cardTitle, welcomeMessage)
	return domain.NewSpeechResponse(welcomeMessage, domain.SpeechPlainText, &card, true), nil
}

func (s *SkillService) onHelp(_ context.Context, _ domain.Envelope) (domain.Response, error) {
	return domain.NewSpeechResponse(pickExample(), domain.SpeechPlainText, nil, true), nil
}

func (s *SkillService) onStop(_ context.Context, _ domain.Envelope) (domain.Response, error) {
	return domain.NewEmptyResponse(), nil
}

// engineFailure is the terminal error response for a translate request.
// Engine and storage failures are not retried.
func engineFailure() domain.Response {
	return domain.NewSpeechResponse(engineErrMessage, domain.SpeechPlainText, nil, false)
}
