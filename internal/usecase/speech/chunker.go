package speech

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

const (
	// Sentence-bounded chunks stay near this size
	chunkTargetChars = 220
	// The hosted voice API degrades on long inputs
	neuralPhraseCap = 300
)

// BreakKind distinguishes the boundary a segment ends on, which decides
// the length of the artificial pause before the next segment.
type BreakKind int

const (
	// SentenceBreak follows sentence-ending punctuation
	SentenceBreak BreakKind = iota
	// PhraseBreak follows a comma, semicolon, or dash
	PhraseBreak
)

// Segment is one phrase of AI-response text awaiting synthesis and
// playback, with derived prosody parameters and a natural pause duration.
// Transient: created when a response arrives, consumed in order,
// discarded after playback or on cancellation.
type Segment struct {
	Text  string
	Break BreakKind

	// Derived prosody for browser-voice playback
	Rate  float64
	Pitch float64
}

var (
	markdownEmphasis = regexp.MustCompile("(\\*\\*|__|\\*|_|`+)")
	markdownBullet   = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	markdownLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	sentenceEnd      = regexp.MustCompile(`([.!?]+)\s+`)
	phraseBoundary   = regexp.MustCompile(`\s*[,;]\s+|\s+[-–—]\s+`)
)

// PrepareSegments strips markdown, collapses whitespace, and splits the
// text into sentence-bounded chunks and comma/semicolon/dash-bounded
// sub-phrases to create natural pause points.
func PrepareSegments(text string) []Segment {
	clean := CleanForSpeech(text)
	if clean == "" {
		return nil
	}

	segments := make([]Segment, 0, 8)
	for _, chunk := range splitSentenceChunks(clean) {
		phrases := phraseBoundary.Split(chunk, -1)
		for i, phrase := range phrases {
			phrase = strings.TrimSpace(phrase)
			if phrase == "" {
				continue
			}
			kind := PhraseBreak
			if i == len(phrases)-1 {
				kind = SentenceBreak
			}
			segments = append(segments, Segment{
				Text:  phrase,
				Break: kind,
				Rate:  0.97 + rand.Float64()*0.06,
				Pitch: 1.0 + (rand.Float64()-0.5)*0.08,
			})
		}
	}
	return segments
}

// CleanForSpeech removes markdown markers that would be read aloud
func CleanForSpeech(text string) string {
	text = markdownLink.ReplaceAllString(text, "$1")
	text = markdownEmphasis.ReplaceAllString(text, "")
	text = markdownBullet.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// splitSentenceChunks groups sentences into chunks of roughly
// chunkTargetChars, never splitting inside a sentence.
func splitSentenceChunks(text string) []string {
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	sentences := strings.Split(marked, "\x00")

	chunks := make([]string, 0, 4)
	var current strings.Builder
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(sentence)+1 > chunkTargetChars {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// capForNeural splits segments longer than the hosted voice API tolerates.
// Split pieces keep PhraseBreak boundaries except the last, which keeps
// the original break kind.
func capForNeural(segments []Segment) []Segment {
	capped := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if len(seg.Text) <= neuralPhraseCap {
			capped = append(capped, seg)
			continue
		}
		rest := seg.Text
		for len(rest) > neuralPhraseCap {
			cut := strings.LastIndex(rest[:neuralPhraseCap], " ")
			if cut <= 0 {
				cut = neuralPhraseCap
			}
			piece := seg
			piece.Text = strings.TrimSpace(rest[:cut])
			piece.Break = PhraseBreak
			capped = append(capped, piece)
			rest = strings.TrimSpace(rest[cut:])
		}
		if rest != "" {
			piece := seg
			piece.Text = rest
			capped = append(capped, piece)
		}
	}
	return capped
}

// pauseAfter returns the artificial pause inserted before the next
// segment: longer after sentence enders, shorter after phrase breaks.
func pauseAfter(seg Segment) time.Duration {
	if seg.Break == SentenceBreak {
		return time.Duration(160+rand.Intn(81)) * time.Millisecond
	}
	return time.Duration(80+rand.Intn(51)) * time.Millisecond
}
