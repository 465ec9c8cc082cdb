package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RatingClass is the sentiment class a raw rating value resolves to.
type RatingClass int

const (
	// RatingNeutral is an explicitly recognized "no opinion" state, such as
	// the number 0 or a null rating.
	RatingNeutral RatingClass = iota
	// RatingPositive covers thumbs-up style ratings.
	RatingPositive
	// RatingNegative covers thumbs-down style ratings.
	RatingNegative
	// RatingUnrecognized means the value matched no known token. Tracked
	// separately from Neutral so data-quality reports can surface it.
	RatingUnrecognized
)

func (c RatingClass) String() string {
	switch c {
	case RatingPositive:
		return "positive"
	case RatingNegative:
		return "negative"
	case RatingNeutral:
		return "neutral"
	default:
		return "unrecognized"
	}
}

// RatingKind tags the dynamic type of a raw rating value.
type RatingKind int

const (
	RatingKindNull RatingKind = iota
	RatingKindInt
	RatingKindFloat
	RatingKindString
	RatingKindOther
)

func (k RatingKind) String() string {
	switch k {
	case RatingKindInt:
		return "int"
	case RatingKindFloat:
		return "float"
	case RatingKindString:
		return "string"
	case RatingKindNull:
		return "null"
	default:
		return "other"
	}
}

// RatingValue is the tagged representation of a raw, loosely-typed rating.
// Exactly one of Int, Float, Str is meaningful depending on Kind; Literal
// holds a printable form of the original value for diagnostics.
type RatingValue struct {
	Kind    RatingKind
	Int     int64
	Float   float64
	Str     string
	Literal string
}

// DecodeRating builds a RatingValue from a JSON-decoded rating field.
// Integral JSON numbers become RatingKindInt even though encoding/json
// hands them over as float64.
func DecodeRating(raw any) RatingValue {
	switch v := raw.(type) {
	case nil:
		return RatingValue{Kind: RatingKindNull, Literal: "null"}
	case float64:
		if v == float64(int64(v)) {
			return RatingValue{Kind: RatingKindInt, Int: int64(v), Literal: fmt.Sprintf("%d", int64(v))}
		}
		return RatingValue{Kind: RatingKindFloat, Float: v, Literal: fmt.Sprintf("%v", v)}
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return RatingValue{Kind: RatingKindInt, Int: i, Literal: v.String()}
		}
		if f, err := v.Float64(); err == nil {
			return RatingValue{Kind: RatingKindFloat, Float: f, Literal: v.String()}
		}
		return RatingValue{Kind: RatingKindOther, Literal: v.String()}
	case string:
		return RatingValue{Kind: RatingKindString, Str: v, Literal: v}
	default:
		return RatingValue{Kind: RatingKindOther, Literal: fmt.Sprintf("%v", v)}
	}
}

// String tokens recognized as ratings, matched after case folding.
var (
	positiveTokens = map[string]bool{
		"1": true, "like": true, "positive": true, "up": true, "good": true, "yes": true,
	}
	negativeTokens = map[string]bool{
		"-1": true, "dislike": true, "negative": true, "down": true, "bad": true, "no": true,
		// Historical quirk, kept as a contractual rule: the STRING "0" is
		// negative, while the NUMBER 0 is neutral. Reports have been diffed
		// against this behavior for a long time; do not "fix" it.
		"0": true,
	}
)

// Classify resolves a RatingValue to its sentiment class.
//
// Numeric values: > 0 positive, < 0 negative, exactly 0 neutral.
// Strings: case-folded exact match against fixed token lists.
// Null is neutral. Everything else is unrecognized and tallied (by type tag
// and literal) in the diagnostics accumulator; the tally never influences
// the classification itself.
func Classify(v RatingValue, diag *Diagnostics) RatingClass {
	switch v.Kind {
	case RatingKindNull:
		return RatingNeutral
	case RatingKindInt:
		switch {
		case v.Int > 0:
			return RatingPositive
		case v.Int < 0:
			return RatingNegative
		default:
			return RatingNeutral
		}
	case RatingKindFloat:
		switch {
		case v.Float > 0:
			return RatingPositive
		case v.Float < 0:
			return RatingNegative
		default:
			return RatingNeutral
		}
	case RatingKindString:
		// Exact match after case folding only: whitespace-padded tokens
		// such as " like " stay unrecognized.
		folded := strings.ToLower(v.Str)
		if positiveTokens[folded] {
			return RatingPositive
		}
		if negativeTokens[folded] {
			return RatingNegative
		}
		diag.RecordUnknownRating(v.Kind.String(), v.Literal)
		return RatingUnrecognized
	default:
		diag.RecordUnknownRating(v.Kind.String(), v.Literal)
		return RatingUnrecognized
	}
}
