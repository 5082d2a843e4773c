// Package llm - util.go provides shared utilities for oracle response
// processing.
package llm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// scorePattern matches the first decimal or integer number in a response.
// Comma decimals ("0,8") are accepted because the prompts are French and some
// models localize their output.
var scorePattern = regexp.MustCompile(`\d+[.,]\d+|\d+`)

// ParseScore extracts the first number from an oracle response and clamps it
// to [0,1]. It returns an error when the response contains no number at all.
func ParseScore(text string) (float64, error) {
	match := scorePattern.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no numeric score in response %q", strings.TrimSpace(text))
	}

	score, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable score %q: %w", match, err)
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}
