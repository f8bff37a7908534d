package postprocess

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// space matches any Unicode whitespace or separator, including the no-break
// space phone keyboards insert, not only ASCII blanks.
const space = `[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]`

var (
	splitCountPattern  = regexp.MustCompile(`(?i)split` + space + `+(?:among|between)?` + space + `*(\p{Nd}+)`)
	peopleCountPattern = regexp.MustCompile(`(?i)(\p{Nd}+)` + space + `*(?:people|persons|friends|pax)`)

	defaultSplitCount = decimal.NewFromInt(2)
	one               = decimal.NewFromInt(1)
)

// divisionPlaces is the precision of the intermediate split quotient before it
// is rounded back to money precision.
const divisionPlaces = 16

// DetectSplitCount looks for bill-splitting language in the raw entry text and
// returns the number of people the amounts should be divided by.
//
// Any occurrence of "split" counts. An explicit "split (among|between) N" wins over
// "N people/persons/friends/pax"; a count of 1 (or 0) means no split. With no
// count at all the bill is assumed to be split two ways.
func DetectSplitCount(rawText string) (decimal.Decimal, bool) {
	// U+0130 lowercases to "i" plus a combining dot, which is not an "i".
	lowered := strings.ToLower(strings.ReplaceAll(rawText, "\u0130", "i\u0307"))
	if !strings.Contains(lowered, "split") {
		return decimal.Zero, false
	}
	for _, pattern := range []*regexp.Regexp{splitCountPattern, peopleCountPattern} {
		match := pattern.FindStringSubmatch(rawText)
		if match == nil {
			continue
		}
		count, err := decimal.NewFromString(asciiDigits(match[1]))
		if err != nil || !count.GreaterThan(one) {
			return decimal.Zero, false
		}
		return count, true
	}
	return defaultSplitCount, true
}

// asciiDigits rewrites decimal digits from any script ("٤", "４") as ASCII.
// Every Nd range in Unicode is a run of complete 0-9 blocks, so a digit's value is
// its offset from the start of its run, modulo ten.
func asciiDigits(digits string) string {
	var b strings.Builder
	b.Grow(len(digits))
	for _, r := range digits {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		offset := 0
		for unicode.Is(unicode.Nd, r-rune(offset)-1) {
			offset++
		}
		b.WriteByte(byte('0' + offset%10))
	}
	return b.String()
}

// applySplit returns the rule that divides the amount by the entry-wide split
// count. It is the last amount mutation in the pipeline.
func applySplit(count decimal.Decimal, ok bool) rule {
	return func(s txState, _ domain.RawTransactionGuess) txState {
		if !ok {
			return s
		}
		s.amount = s.amount.DivRound(count, divisionPlaces).RoundBank(moneyPlaces)
		return s.flag(fmt.Sprintf(assumptionSplitFormat, count.String()))
	}
}
