package openai

import (
	"regexp"
	"strings"
)

var (
	titleRe    = regexp.MustCompile(`(?m)^Title:\s*(.+)$`)
	scriptRe   = regexp.MustCompile(`(?s)Narrated Script:\s*(.+?)\s*(?:\n)Hashtags:`)
	hashtagsRe = regexp.MustCompile(`(?m)^Hashtags:\s*(.+)$`)
	tipsRe     = regexp.MustCompile(`(?s)Production Suggestions:\s*(.+?)\s*(?:\nBonus Content Ideas:|$)`)
	bonusRe    = regexp.MustCompile(`(?s)Bonus Content Ideas:\s*(.+)$`)
)

// ParseIdeaResponse extracts the structured fields from the model's reply.
// Missing sections degrade to placeholders rather than failing: the model
// occasionally drops a header and the user still gets the rest.
func ParseIdeaResponse(raw string, premium bool) *Idea {
	idea := &Idea{
		Title:  "Untitled idea",
		Script: "Script not available",
	}

	if m := titleRe.FindStringSubmatch(raw); m != nil {
		idea.Title = strings.TrimSpace(m[1])
	}
	if m := scriptRe.FindStringSubmatch(raw); m != nil {
		idea.Script = strings.TrimSpace(m[1])
	}
	if m := hashtagsRe.FindStringSubmatch(raw); m != nil {
		idea.Hashtags = strings.Fields(m[1])
	}
	if m := tipsRe.FindStringSubmatch(raw); m != nil {
		idea.ProductionTips = parseBulletList(m[1])
	}
	if premium {
		if m := bonusRe.FindStringSubmatch(raw); m != nil {
			idea.BonusIdeas = parseBulletList(m[1])
		}
	}

	return idea
}

func parseBulletList(block string) []string {
	lines := strings.Split(block, "\n")
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		item := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
