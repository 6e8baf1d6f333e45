package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"postmate/internal/domain"
	apperrors "postmate/pkg/errors"

	"golang.org/x/sync/errgroup"
)

// MaxPromptChars bounds the extracted text embedded in each prompt.
const MaxPromptChars = 2000

type tierSpec struct {
	tier           domain.InsightTier
	words          int
	minSuggestions int
	maxSuggestions int
}

var tierSpecs = []tierSpec{
	{tier: domain.TierShort, words: 150, minSuggestions: 3, maxSuggestions: 5},
	{tier: domain.TierMedium, words: 250, minSuggestions: 5, maxSuggestions: 7},
	{tier: domain.TierLong, words: 350, minSuggestions: 7, maxSuggestions: 9},
}

// tierOutcome is the result of one remote call. Exactly one of text and err is set.
type tierOutcome struct {
	tier    domain.InsightTier
	text    string
	err     error
	elapsed time.Duration
}

// InsightGeneratorService fans one prompt per tier out to a TextGenerator and
// joins the results with an all-or-nothing policy.
type InsightGeneratorService struct {
	generator domain.TextGenerator
	logger    domain.Logger
}

// NewInsightGenerator creates a generator over a shared, concurrency-safe backend.
func NewInsightGenerator(generator domain.TextGenerator, logger domain.Logger) *InsightGeneratorService {
	return &InsightGeneratorService{
		generator: generator,
		logger:    logger,
	}
}

// Generate returns all three tiers, or a single error message if any tier
// failed. All calls run to completion; a failing tier does not cancel the
// others. Cancelling ctx aborts every in-flight call.
func (s *InsightGeneratorService) Generate(ctx context.Context, text string) domain.InsightSet {
	if s.generator == nil {
		return domain.NewFailedInsightSet(insightErrorMessage(domain.ErrGeneratorUnavailable))
	}

	input := truncateRunes(text, MaxPromptChars)
	outcomes := make([]tierOutcome, len(tierSpecs))

	// Plain Group: no derived context, so siblings keep running on failure.
	var g errgroup.Group
	for i, spec := range tierSpecs {
		g.Go(func() error {
			outcomes[i] = s.generateTier(ctx, spec, input)
			return nil
		})
	}
	_ = g.Wait()

	return s.join(outcomes)
}

func (s *InsightGeneratorService) generateTier(ctx context.Context, spec tierSpec, input string) (out tierOutcome) {
	out.tier = spec.tier
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out.text = ""
			out.err = fmt.Errorf("panic in %s tier: %v", spec.tier, r)
		}
		out.elapsed = time.Since(start)
	}()

	text, err := s.generator.Generate(ctx, buildTierPrompt(spec, input))
	if err != nil {
		out.err = err
		return out
	}
	if strings.TrimSpace(text) == "" {
		out.err = errors.New("empty response from model")
		return out
	}
	out.text = strings.TrimSpace(text)
	return out
}

func (s *InsightGeneratorService) join(outcomes []tierOutcome) domain.InsightSet {
	var firstErr error
	set := domain.InsightSet{}
	for _, o := range outcomes {
		if o.err != nil {
			s.logger.Error("Insight tier failed", o.err, "tier", o.tier, "duration_ms", o.elapsed.Milliseconds())
			if firstErr == nil {
				firstErr = fmt.Errorf("%w (%s tier): %w", domain.ErrInsightGeneration, o.tier, o.err)
			}
			continue
		}
		s.logger.Debug("Insight tier generated", "tier", o.tier, "chars", len(o.text), "duration_ms", o.elapsed.Milliseconds())
		switch o.tier {
		case domain.TierShort:
			set.Short = o.text
		case domain.TierMedium:
			set.Medium = o.text
		case domain.TierLong:
			set.Long = o.text
		}
	}
	if firstErr != nil {
		return domain.NewFailedInsightSet(insightErrorMessage(firstErr))
	}
	return set
}

// insightErrorMessage is the client-facing text for a failed set.
func insightErrorMessage(err error) string {
	return fmt.Sprintf(
		"Insight generation failed (%s). This may be due to reaching the daily quota or limits of the language model provider. Please try again later.",
		apperrors.SanitizeProviderError(err),
	)
}

func buildTierPrompt(spec tierSpec, text string) string {
	var b strings.Builder
	b.WriteString("You are a social media content strategist reviewing a post before it is published.\n\n")
	fmt.Fprintf(&b, "First, write a %s analysis of about %d words describing the tone of the post and how well it is likely to engage its audience.\n", spec.tier, spec.words)
	b.WriteString("Then write a line containing only ---\n")
	fmt.Fprintf(&b, "After that line, give %d to %d numbered suggestions to improve engagement. ", spec.minSuggestions, spec.maxSuggestions)
	b.WriteString("Start each suggestion with a short bold heading such as **Heading**: followed by one or two sentences of explanation.\n")
	b.WriteString("Do not add any introduction, title or closing remarks.\n\n")
	b.WriteString("Post text:\n\"\"\"\n")
	b.WriteString(text)
	b.WriteString("\n\"\"\"\n")
	return b.String()
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// DisabledInsightGenerator always reports insights as unavailable. It backs
// runs that only need extraction and metrics.
type DisabledInsightGenerator struct {
	Reason string
}

func (d DisabledInsightGenerator) Generate(ctx context.Context, text string) domain.InsightSet {
	reason := d.Reason
	if reason == "" {
		reason = "Insights disabled."
	}
	return domain.NewFailedInsightSet(reason)
}
