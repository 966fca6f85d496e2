package speech

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanForSpeech_StripsMarkdown(t *testing.T) {
	in := "**Bold** and _italic_ with `code` and [a link](https://example.com).\n- bullet one\n2. numbered"
	got := CleanForSpeech(in)

	assert.NotContains(t, got, "*")
	assert.NotContains(t, got, "`")
	assert.NotContains(t, got, "https://example.com")
	assert.Contains(t, got, "a link")
	assert.NotContains(t, got, "- bullet")
	assert.NotContains(t, got, "2.")
	assert.NotContains(t, got, "\n")
}

func TestPrepareSegments_Empty(t *testing.T) {
	assert.Nil(t, PrepareSegments("   **  ** "))
	assert.Nil(t, PrepareSegments(""))
}

func TestPrepareSegments_PhraseAndSentenceBreaks(t *testing.T) {
	segments := PrepareSegments("First we plan, then we build; finally we ship.")
	require.Len(t, segments, 3)

	assert.Equal(t, "First we plan", segments[0].Text)
	assert.Equal(t, PhraseBreak, segments[0].Break)
	assert.Equal(t, "then we build", segments[1].Text)
	assert.Equal(t, PhraseBreak, segments[1].Break)
	assert.Equal(t, "finally we ship.", segments[2].Text)
	assert.Equal(t, SentenceBreak, segments[2].Break)
}

func TestPrepareSegments_ProsodyWithinBounds(t *testing.T) {
	for _, seg := range PrepareSegments("One. Two. Three. Four. Five.") {
		assert.GreaterOrEqual(t, seg.Rate, 0.97)
		assert.LessOrEqual(t, seg.Rate, 1.03)
		assert.GreaterOrEqual(t, seg.Pitch, 0.96)
		assert.LessOrEqual(t, seg.Pitch, 1.04)
	}
}

func TestSplitSentenceChunks_NeverSplitsInsideSentence(t *testing.T) {
	sentence := "This sentence runs about sixty characters before it ends here."
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString(sentence)
		sb.WriteString(" ")
	}

	chunks := splitSentenceChunks(strings.TrimSpace(sb.String()))
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.True(t, strings.HasSuffix(chunk, "here."), "chunk must end on a sentence boundary: %q", chunk)
		assert.LessOrEqual(t, len(chunk), chunkTargetChars+len(sentence))
	}
}

func TestSplitSentenceChunks_SingleLongSentenceKeptWhole(t *testing.T) {
	long := strings.Repeat("word ", 100) + "end."
	chunks := splitSentenceChunks(long)
	require.Len(t, chunks, 1)
}

func TestCapForNeural_SplitsLongSegments(t *testing.T) {
	long := strings.Repeat("somewhat lengthy words here ", 20) // ~560 chars, no punctuation
	segments := capForNeural([]Segment{{Text: strings.TrimSpace(long), Break: SentenceBreak, Rate: 1, Pitch: 1}})

	require.Greater(t, len(segments), 1)
	for i, seg := range segments {
		assert.LessOrEqual(t, len(seg.Text), neuralPhraseCap)
		assert.NotEmpty(t, seg.Text)
		if i < len(segments)-1 {
			assert.Equal(t, PhraseBreak, seg.Break)
		} else {
			assert.Equal(t, SentenceBreak, seg.Break, "last piece keeps the original break")
		}
	}

	// No words lost or mangled at split points
	rejoined := ""
	for _, seg := range segments {
		if rejoined != "" {
			rejoined += " "
		}
		rejoined += seg.Text
	}
	assert.Equal(t, strings.TrimSpace(long), rejoined)
}

func TestCapForNeural_ShortSegmentsUntouched(t *testing.T) {
	in := []Segment{{Text: "short", Break: SentenceBreak}}
	out := capForNeural(in)
	require.Len(t, out, 1)
	assert.Equal(t, "short", out[0].Text)
	assert.Equal(t, SentenceBreak, out[0].Break)
}

func TestPauseAfter_Ranges(t *testing.T) {
	for i := 0; i < 50; i++ {
		p := pauseAfter(Segment{Break: SentenceBreak})
		assert.GreaterOrEqual(t, p, 160*time.Millisecond)
		assert.LessOrEqual(t, p, 240*time.Millisecond)

		p = pauseAfter(Segment{Break: PhraseBreak})
		assert.GreaterOrEqual(t, p, 80*time.Millisecond)
		assert.LessOrEqual(t, p, 130*time.Millisecond)
	}
}
