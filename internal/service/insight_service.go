package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/pkg/gemini"
)

type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CallSite names a generation use case and its fallback texts.
type CallSite struct {
	Name    string
	NoKey   string
	Empty   string
	Failure string
}

var (
	SummaryCallSite = CallSite{
		Name:    "announcement_summary",
		NoKey:   "API Key missing. Cannot generate summary.",
		Empty:   "No summary available.",
		Failure: "Failed to generate summary. Please try again later.",
	}
	StudyTipCallSite = CallSite{
		Name:    "study_tip",
		NoKey:   "Stay organized and keep studying!",
		Empty:   "Keep pushing forward!",
		Failure: "Focus on your next major deadline.",
	}
	LessonCallSite = CallSite{
		Name:    "lesson_adjustments",
		NoKey:   "AI insights are unavailable. Review the feedback manually.",
		Empty:   "No adjustments suggested.",
		Failure: "Unable to analyze feedback right now. Please try again later.",
	}
	StudentAnalysisCallSite = CallSite{
		Name:    "student_analysis",
		NoKey:   "AI analysis unavailable. Review attendance and grade trends manually.",
		Empty:   "No analysis available.",
		Failure: "Unable to generate an intervention strategy right now.",
	}
)

// InsightService turns portal data into prompts and never fails: every error maps to the call site's fallback.
type InsightService struct {
	client  textGenerator
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration
	group   singleflight.Group
}

// NewInsightService constructs the service. A nil cache disables caching.
func NewInsightService(client textGenerator, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *InsightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightService{client: client, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

// SummarizeAnnouncement condenses an announcement into one sentence.
func (s *InsightService) SummarizeAnnouncement(ctx context.Context, id, content string) dto.GeneratedText {
	prompt := "Summarise the following school announcement into a single, concise sentence for a student dashboard. " +
		"Focus on actionable details like time, venue, or deadline changes.\n\nAnnouncement:\n" + content
	return s.generate(ctx, SummaryCallSite, "ai:summary:"+id, prompt)
}

// StudyTip produces a motivational tip for the given upcoming event titles.
func (s *InsightService) StudyTip(ctx context.Context, titles []string) dto.GeneratedText {
	joined := strings.Join(titles, ", ")
	prompt := fmt.Sprintf("Here are the student's upcoming events: %s. Give a one-sentence motivational study tip or time management advice specific to this schedule.", joined)
	return s.generate(ctx, StudyTipCallSite, "ai:tip:"+fingerprint(joined), prompt)
}

// LessonAdjustments suggests teaching changes from a course's feedback.
func (s *InsightService) LessonAdjustments(ctx context.Context, courseCode string, feedback []string) dto.GeneratedText {
	var b strings.Builder
	fmt.Fprintf(&b, "Course %s received the following anonymous student feedback:\n", courseCode)
	for _, item := range feedback {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	b.WriteString("As a pedagogy advisor, suggest up to three concrete lesson adjustments the lecturer can make next week. Keep it under 80 words.")
	key := fmt.Sprintf("ai:insights:%s:%s", courseCode, fingerprint(strings.Join(feedback, "\n")))
	return s.generate(ctx, LessonCallSite, key, b.String())
}

// StudentAnalysis proposes an intervention strategy for one student.
func (s *InsightService) StudentAnalysis(ctx context.Context, student models.StudentProfile) dto.GeneratedText {
	trend := make([]string, 0, len(student.Grades))
	for _, g := range student.Grades {
		trend = append(trend, fmt.Sprintf("%s %.0f", g.Month, g.Score))
	}
	summary := fmt.Sprintf("Student %s has %.0f%% attendance, an average grade of %.0f%% and is flagged %s risk. Recent grade trend: %s.",
		student.Name, student.Attendance, student.AverageGrade, student.RiskLevel, strings.Join(trend, ", "))
	prompt := summary + " Suggest a short, specific intervention strategy their lecturer could apply, in at most two sentences."
	return s.generate(ctx, StudentAnalysisCallSite, fmt.Sprintf("ai:analysis:%s:%s", student.ID, fingerprint(summary)), prompt)
}

// ForgetStudent drops cached analyses for a student whose record changed.
func (s *InsightService) ForgetStudent(ctx context.Context, studentID string) {
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("ai:analysis:%s:*", studentID))
}

func (s *InsightService) generate(ctx context.Context, site CallSite, cacheKey, prompt string) dto.GeneratedText {
	var cached string
	if s.cache.Get(ctx, cacheKey, &cached) {
		s.metrics.ObserveGeneration(site.Name, GenerationCacheHit, 0)
		return dto.GeneratedText{Text: cached, Cached: true}
	}

	// Shared work must outlive any single caller giving up.
	ch := s.group.DoChan(cacheKey, func() (interface{}, error) {
		return s.call(context.WithoutCancel(ctx), site, cacheKey, prompt), nil
	})

	select {
	case res := <-ch:
		return res.Val.(dto.GeneratedText)
	case <-ctx.Done():
		s.logger.Info("generation abandoned by caller", zap.String("call_site", site.Name), zap.Error(ctx.Err()))
		return dto.GeneratedText{Text: site.Failure, Fallback: true}
	}
}

func (s *InsightService) call(ctx context.Context, site CallSite, cacheKey, prompt string) dto.GeneratedText {
	if s.client == nil {
		s.metrics.ObserveGeneration(site.Name, GenerationNoKey, 0)
		return dto.GeneratedText{Text: site.NoKey, Fallback: true}
	}

	start := time.Now()
	text, err := s.client.Generate(ctx, prompt)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, gemini.ErrMissingAPIKey):
		s.metrics.ObserveGeneration(site.Name, GenerationNoKey, elapsed)
		return dto.GeneratedText{Text: site.NoKey, Fallback: true}
	case err != nil:
		s.metrics.ObserveGeneration(site.Name, GenerationFailed, elapsed)
		s.logger.Error("text generation failed", zap.String("call_site", site.Name), zap.Duration("latency", elapsed), zap.Error(err))
		return dto.GeneratedText{Text: site.Failure, Fallback: true}
	case strings.TrimSpace(text) == "":
		s.metrics.ObserveGeneration(site.Name, GenerationEmpty, elapsed)
		return dto.GeneratedText{Text: site.Empty, Fallback: true}
	}

	text = strings.TrimSpace(text)
	s.metrics.ObserveGeneration(site.Name, GenerationOK, elapsed)
	s.cache.Set(ctx, cacheKey, text, s.ttl)
	return dto.GeneratedText{Text: text}
}

// fingerprint gives a stable short key for variable-length prompt input.
func fingerprint(input string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(input)).String()
}
