package imagegen

import (
	"strconv"
	"strings"
	"time"
)

// ContentSeed derives a deterministic seed from the prompt's keywords plus
// style and mood, so repeated requests for the same content reproduce the
// same provider output. The multiply-by-31 rolling hash is a cheap
// reproducibility aid, not a security mechanism; collisions are fine.
func ContentSeed(prompt string, style ImageStyle, mood Mood) string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(prompt)) {
		if len(word) > 3 {
			keywords = append(keywords, word)
		}
	}

	input := strings.Join(keywords, "") + string(style) + string(mood)
	return strconv.FormatUint(rollingHash(input), 36)
}

// AlternateSeed mixes the prompt hash with the current timestamp, giving
// the second remote stage a different seed from the first.
func AlternateSeed(prompt string) string {
	h := rollingHash(prompt) ^ uint64(time.Now().UnixNano())
	return strconv.FormatUint(h, 36)
}

func rollingHash(s string) uint64 {
	var h uint64
	for _, r := range s {
		h = h*31 + uint64(r)
	}
	return h
}
