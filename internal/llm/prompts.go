package llm

import (
	"fmt"
	"math"
	"strings"

	"github.com/agorasim/agora/internal/domain"
)

const (
	promptCitationLimit = 3
	promptNoveltyLimit  = 3

	citationExcerptLen = 150
	noveltyExcerptLen  = 200
	targetExcerptLen   = 300
)

var essayPersonaPrompts = map[string]string{
	"Kantian":        "You are a philosopher in the tradition of Immanuel Kant. You believe in the categorical imperative, moral duty, and transcendental idealism.",
	"Humean":         "You are a philosopher in the tradition of David Hume. You are skeptical about causation, emphasize empirical experience, and question metaphysical claims.",
	"Aristotelian":   "You are a philosopher in the tradition of Aristotle. You focus on virtue ethics, teleology, and the golden mean.",
	"Nietzschean":    "You are a philosopher in the tradition of Friedrich Nietzsche. You question traditional values, emphasize will to power, and critique moral systems.",
	"Cartesian":      "You are a philosopher in the tradition of René Descartes. You employ methodical doubt, emphasize rational thought, and seek clear and distinct ideas.",
	"Utilitarian":    "You are a philosopher in the utilitarian tradition. You focus on maximizing happiness and well-being for the greatest number.",
	"Existentialist": "You are an existentialist philosopher. You emphasize individual existence, freedom, choice, and authentic living.",
	"Stoic":          "You are a philosopher in the Stoic tradition. You emphasize virtue, wisdom, and acceptance of what cannot be changed.",
}

const essayDefaultPersona = "You are a thoughtful philosopher seeking truth through reason and inquiry."

var critiquePersonaPrompts = map[string]string{
	"Kantian":        "You are a Kantian philosopher who evaluates arguments through the lens of duty, universalizability, and moral law.",
	"Humean":         "You are a Humean philosopher who applies empirical skepticism and questions unfounded metaphysical claims.",
	"Aristotelian":   "You are an Aristotelian philosopher who emphasizes virtue, practical wisdom, and teleological thinking.",
	"Nietzschean":    "You are a Nietzschean philosopher who challenges conventional morality and seeks to unmask hidden motivations.",
	"Cartesian":      "You are a Cartesian philosopher who demands clear reasoning and methodical analysis.",
	"Utilitarian":    "You are a utilitarian philosopher who evaluates arguments based on their consequences for human welfare.",
	"Existentialist": "You are an existentialist philosopher who emphasizes authenticity, freedom, and individual responsibility.",
	"Stoic":          "You are a Stoic philosopher who values wisdom, virtue, and rational acceptance of natural order.",
}

const critiqueDefaultPersona = "You are a thoughtful philosophical critic."

const (
	supportiveStanceInstruction = "Your overall stance is SUPPORTIVE. You generally agree with the essay's main arguments " +
		"but may offer refinements, extensions, or additional supporting evidence. Look for strengths to highlight " +
		"while providing constructive suggestions."

	criticalStanceInstruction = "Your overall stance is CRITICAL. You disagree with key aspects of the essay's arguments. " +
		"Identify logical problems, questionable assumptions, or alternative perspectives that challenge the main " +
		"thesis. Be respectful but intellectually rigorous in your disagreement."
)

func essayPrompt(persona string, topic domain.Topic, beliefs domain.BeliefVector, citationTexts []string) string {
	personaPrompt, ok := essayPersonaPrompts[domain.BasePersona(persona)]
	if !ok {
		personaPrompt = essayDefaultPersona
	}

	var b strings.Builder
	b.WriteString(personaPrompt)
	fmt.Fprintf(&b, "\n\nWrite a philosophical essay on the topic of %s. Your essay should be approximately 300-500 words.\n\n", topic)
	b.WriteString("Key philosophical leanings to incorporate:\n")
	b.WriteString(interpretBeliefs(beliefs))

	if len(citationTexts) > 0 {
		b.WriteString("\n\nBuild upon these previous works:\n")
		for _, text := range citationTexts[:min(len(citationTexts), promptCitationLimit)] {
			fmt.Fprintf(&b, "- %s...\n", excerpt(text, citationExcerptLen))
		}
	}

	b.WriteString("\n\nStructure your essay with:\n")
	b.WriteString("1. A clear thesis statement\n")
	b.WriteString("2. Well-reasoned arguments\n")
	b.WriteString("3. Engagement with the philosophical tradition\n")
	b.WriteString("4. A thoughtful conclusion\n\n")
	b.WriteString("Write in an academic but accessible style, as if for publication in a philosophical journal.")
	return b.String()
}

func critiquePrompt(persona, targetText string, stance domain.Stance, beliefs domain.BeliefVector) string {
	personaPrompt, ok := critiquePersonaPrompts[domain.BasePersona(persona)]
	if !ok {
		personaPrompt = critiqueDefaultPersona
	}
	instruction := supportiveStanceInstruction
	if stance < 0 {
		instruction = criticalStanceInstruction
	}

	var b strings.Builder
	b.WriteString(personaPrompt)
	fmt.Fprintf(&b, "\n\nYou are writing a philosophical critique of the following essay:\n\n%q\n\n", targetText)
	b.WriteString(instruction)
	b.WriteString("\n\nFocus your critique on:\n")
	b.WriteString(critiqueFocus(beliefs))
	b.WriteString("\n\nWrite a 200-300 word critique that:\n")
	b.WriteString("1. Identifies the main argument of the target essay\n")
	b.WriteString("2. Provides your philosophical response\n")
	b.WriteString("3. Offers specific points of agreement or disagreement\n")
	b.WriteString("4. Maintains scholarly tone and rigor\n\n")
	b.WriteString("Be constructive and intellectually honest in your critique.")
	return b.String()
}

func qualityPrompt(text string, topic domain.Topic, citationCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please evaluate the quality of this philosophical essay on %s.\n\n", topic)
	fmt.Fprintf(&b, "Essay: %s\n\n", text)
	fmt.Fprintf(&b, "Number of citations: %d\n\n", citationCount)
	b.WriteString("Rate the quality from 0.0 to 1.0 based on:\n")
	b.WriteString("- Clarity of argument\n")
	b.WriteString("- Depth of analysis\n")
	b.WriteString("- Use of citations\n")
	b.WriteString("- Originality of thought\n\n")
	b.WriteString("Respond with only a decimal number between 0.0 and 1.0.")
	return b.String()
}

func noveltyPrompt(text string, topic domain.Topic, existingTexts []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please evaluate the novelty of this philosophical essay on %s.\n\n", topic)
	fmt.Fprintf(&b, "New essay: %s\n\n", text)
	b.WriteString("Compared to these existing essays:\n")
	for i, existing := range existingTexts[:min(len(existingTexts), promptNoveltyLimit)] {
		fmt.Fprintf(&b, "%d. %s...\n", i+1, excerpt(existing, noveltyExcerptLen))
	}
	b.WriteString("\nRate the novelty from 0.0 to 1.0 based on how original and innovative the ideas are.\n\n")
	b.WriteString("Respond with only a decimal number between 0.0 and 1.0.")
	return b.String()
}

func persuasivenessPrompt(text, targetText string) string {
	var b strings.Builder
	b.WriteString("Please evaluate how persuasive this philosophical critique is.\n\n")
	fmt.Fprintf(&b, "Target essay: %s...\n\n", excerpt(targetText, targetExcerptLen))
	fmt.Fprintf(&b, "Critique: %s\n\n", text)
	b.WriteString("Rate the persuasiveness from 0.0 to 1.0 based on:\n")
	b.WriteString("- Strength of reasoning\n")
	b.WriteString("- Relevance to the target\n")
	b.WriteString("- Clarity of argument\n")
	b.WriteString("- Potential to change minds\n\n")
	b.WriteString("Respond with only a decimal number between 0.0 and 1.0.")
	return b.String()
}

// interpretBeliefs turns the leading belief components into prompt
// guidance: strong topic leanings first, then the broader disposition
// bands of the remaining dimensions.
func interpretBeliefs(beliefs domain.BeliefVector) string {
	topics := domain.Topics()
	var lines []string

	for i, topic := range topics {
		if i >= len(beliefs) {
			break
		}
		w := beliefs[i]
		if math.Abs(w) > 0.5 {
			stance := "strongly emphasize"
			if w < 0 {
				stance = "critically question"
			}
			lines = append(lines, fmt.Sprintf("- %s %s", stance, topic))
		}
	}

	if len(beliefs) > len(topics) {
		extra := beliefs[len(topics):]
		if bandMean(extra, 0, 5) > 0.3 {
			lines = append(lines, "- Favor systematic and analytical approaches")
		}
		if bandMean(extra, 5, 10) > 0.3 {
			lines = append(lines, "- Emphasize experiential and phenomenological insights")
		}
		if bandMean(extra, 10, 15) > 0.3 {
			lines = append(lines, "- Value practical and applied philosophical perspectives")
		}
	}

	if len(lines) == 0 {
		return "- Maintain a balanced philosophical approach"
	}
	return strings.Join(lines, "\n")
}

func critiqueFocus(beliefs domain.BeliefVector) string {
	var lines []string
	if len(beliefs) > 0 && math.Abs(beliefs[0]) > 0.7 {
		lines = append(lines, "- The moral and ethical implications of the arguments")
	}
	if len(beliefs) > 1 && math.Abs(beliefs[1]) > 0.7 {
		lines = append(lines, "- The epistemological foundations and claims about knowledge")
	}
	if len(beliefs) > 2 && math.Abs(beliefs[2]) > 0.7 {
		lines = append(lines, "- The metaphysical assumptions and ontological commitments")
	}
	lines = append(lines,
		"- The logical structure and validity of the reasoning",
		"- The use and interpretation of sources and citations",
		"- The clarity and precision of central concepts",
	)
	return strings.Join(lines, "\n")
}

func bandMean(v []float64, lo, hi int) float64 {
	if lo >= len(v) {
		return 0
	}
	if hi > len(v) {
		hi = len(v)
	}
	var sum float64
	for _, x := range v[lo:hi] {
		sum += x
	}
	return sum / float64(hi-lo)
}

func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
