// Package router resolves the language pair a lookup is sent with.
package router

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// SourceLang is the only source language the lookup service is queried with.
const SourceLang = "zh-CN"

var (
	ErrUnsupportedTarget = errors.New("unsupported target language")
	ErrSameLanguage      = errors.New("target language is the source language")
)

// Target codes as the translate_a endpoint spells them. Chinese variants use
// region subtags (zh-TW) rather than script subtags.
var supportedTargets = []string{
	// Western European
	"en", "fr", "de", "es", "it", "pt", "nl", "ca",
	// Nordic
	"sv", "da", "no", "fi",
	// Central and Eastern European
	"pl", "cs", "sk", "hu", "ro", "ru", "uk", "bg",
	// Asian
	"ja", "ko", "vi", "th", "id", "ms", "zh-TW",
	// Other
	"ar", "tr", "el",
}

// Router maps caller-supplied language tags to service target codes.
type Router struct {
	matcher language.Matcher
	targets []string
}

// Route is the language pair for a lookup.
type Route struct {
	Source string
	Target string
}

// New creates a Router over the supported target languages.
func New() *Router {
	tags := make([]language.Tag, len(supportedTargets))
	for i, code := range supportedTargets {
		tags[i] = language.MustParse(code)
	}
	return &Router{
		matcher: language.NewMatcher(tags),
		targets: supportedTargets,
	}
}

// GetSupportedTargets returns the service codes of all supported targets.
func GetSupportedTargets() []string {
	out := make([]string, len(supportedTargets))
	copy(out, supportedTargets)
	return out
}

// IsValidTarget checks if target can be translated into from SourceLang.
func (r *Router) IsValidTarget(target string) bool {
	_, err := r.Resolve(target)
	return err == nil
}

// Resolve canonicalizes target (e.g. "fr-FR" → "fr", "zh-Hant" → "zh-TW")
// and returns the route for it.
func (r *Router) Resolve(target string) (Route, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Route{}, fmt.Errorf("%w: empty", ErrUnsupportedTarget)
	}

	tag, err := language.Parse(strings.ReplaceAll(target, "_", "-"))
	if err != nil {
		return Route{}, fmt.Errorf("%w: %q", ErrUnsupportedTarget, target)
	}

	if isSimplifiedChinese(tag) {
		return Route{}, fmt.Errorf("%w: %q", ErrSameLanguage, target)
	}

	_, idx, conf := r.matcher.Match(tag)
	if conf < language.High {
		return Route{}, fmt.Errorf("%w: %q", ErrUnsupportedTarget, target)
	}

	return Route{Source: SourceLang, Target: r.targets[idx]}, nil
}

func isSimplifiedChinese(tag language.Tag) bool {
	base, _ := tag.Base()
	if base.String() != "zh" {
		return false
	}
	script, _ := tag.Script()
	return script.String() == "Hans"
}
