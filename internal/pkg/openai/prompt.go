package openai

import (
	"fmt"
	"strings"

	"github.com/ideaspark/ideaspark/internal/pkg/youtube"
)

// commentSummaryLimit caps how much raw comment text feeds the prompt.
const commentSummaryLimit = 500

// BuildPrompt assembles the generation prompt from the source video and its
// top comments. Premium requests ask for a longer script, more hashtags,
// more production tips and a bonus block of series ideas.
func BuildPrompt(details *youtube.VideoDetails, comments []youtube.Comment, premium bool) string {
	summary := SummarizeComments(comments)

	scriptWords := "150-200"
	hashtagCount := "5"
	tipCount := "2-3"
	if premium {
		scriptWords = "200-250"
		hashtagCount = "7"
		tipCount = "4-5"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate an innovative, viral idea for a short video under one minute, inspired by this YouTube video:\n\n")
	fmt.Fprintf(&b, "Original title: %q\n", orUnavailable(details.Title))
	fmt.Fprintf(&b, "Description: %q\n", orUnavailable(truncate(details.Description, 200)))
	fmt.Fprintf(&b, "Channel: %q\n\n", orUnavailable(details.Channel))
	fmt.Fprintf(&b, "Summary of relevant comments: %q\n\n", summary)

	b.WriteString("The idea MUST include:\n")
	b.WriteString("1. A catchy, descriptive title (60 characters max) that captures the essence of the topic with a unique twist.\n")
	fmt.Fprintf(&b, "2. A detailed narrated script (%s words) structured as:\n", scriptWords)
	b.WriteString("   - A striking opening hook (5-10 seconds) that grabs the viewer immediately\n")
	b.WriteString("   - The main content (40-45 seconds), concise, engaging and original\n")
	b.WriteString("   - A strong close or call to action (5-10 seconds)\n")
	b.WriteString("   - Include [delivery notes], [pauses] and [suggested visual or sound effects] in brackets\n")
	fmt.Fprintf(&b, "3. %s relevant, popular hashtags.\n", hashtagCount)
	fmt.Fprintf(&b, "4. %s specific production suggestions that make the video stand out.\n", tipCount)
	if premium {
		b.WriteString("5. 2-3 ideas for related follow-up content that could form a series or campaign on the topic.\n")
	}

	b.WriteString("\nThe idea must be unique and creative with high viral potential; do not copy the source video directly.\n")
	if premium {
		b.WriteString("\nAs a premium request, provide more detailed, higher-quality ideas with a strategic focus on engagement and virality.\n")
	}

	b.WriteString("\nRequired format:\n")
	b.WriteString("Title: [idea title]\n")
	b.WriteString("Narrated Script:\n[detailed script with delivery notes, pauses and effects]\n")
	b.WriteString("Hashtags: [hashtags]\n")
	b.WriteString("Production Suggestions:\n- [specific, detailed suggestions]\n")
	if premium {
		b.WriteString("Bonus Content Ideas:\n- [strategic ideas for a series or campaign]\n")
	}

	return b.String()
}

// SummarizeComments joins comment texts into a single capped summary string.
func SummarizeComments(comments []youtube.Comment) string {
	texts := make([]string, 0, len(comments))
	for _, c := range comments {
		texts = append(texts, c.Text)
	}
	return truncate(strings.Join(texts, " "), commentSummaryLimit)
}

func orUnavailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not available"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
