package generation

import (
	"fmt"
	"strings"
)

const promptHeader = "You are an AI assistant specialized in generating creative and practical ideas. " +
	"Your role is to help users brainstorm innovative solutions, concepts, and approaches based on their input.\n\n" +
	"Guidelines:\n" +
	"- Generate %d distinct and actionable ideas\n" +
	"- Ensure ideas are practical and implementable\n" +
	"- Provide brief explanations for each idea\n" +
	"- Consider different perspectives and approaches\n" +
	"- Focus on value and feasibility"

var creativityGuidance = map[string]string{
	CreativityConservative: "\n- Prioritize proven, low-risk approaches" +
		"\n- Focus on incremental improvements" +
		"\n- Emphasize practical implementation",
	CreativityBalanced: "\n- Balance innovation with practicality" +
		"\n- Mix proven approaches with creative solutions" +
		"\n- Consider both short-term and long-term possibilities",
	CreativityCreative: "\n- Think outside the box and explore unconventional approaches" +
		"\n- Consider emerging trends and technologies" +
		"\n- Embrace innovative and disruptive concepts",
}

var formatInstructions = map[string]string{
	FormatBullet:     "\n\nFormat your response as a numbered list with brief descriptions.",
	FormatParagraph:  "\n\nFormat your response as flowing paragraphs with detailed explanations.",
	FormatStructured: "\n\nFormat your response as a structured list with titles and descriptions for each idea.",
}

// BuildPrompt assembles the provider prompt for req. It is pure: the same
// request always yields the same text.
//
// Unknown creativity levels fall back to balanced and unknown formats to
// structured. Category lines are numbered by their position in the full
// category list, so categories without context leave gaps in the numbering.
func BuildPrompt(req Request) string {
	opts := req.Options.WithDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, promptHeader, opts.MaxIdeas)

	guidance, ok := creativityGuidance[opts.CreativityLevel]
	if !ok {
		guidance = creativityGuidance[CreativityBalanced]
	}
	b.WriteString(guidance)

	format, ok := formatInstructions[opts.Format]
	if !ok {
		format = formatInstructions[FormatStructured]
	}
	b.WriteString(format)

	if *opts.IncludeCategories && len(req.Categories) > 0 {
		b.WriteString("\n\nRelevant Category Contexts:\n")
		for i, c := range req.Categories {
			if c.Context == "" {
				continue
			}
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, c.Name, c.Context)
		}
		b.WriteString("\nConsider these contexts when generating ideas, but don't limit yourself to them.")
	}

	fmt.Fprintf(&b, "\n\nUser Request: %s\n\nPlease generate %d ideas based on this request:",
		req.Prompt, opts.MaxIdeas)

	return b.String()
}
