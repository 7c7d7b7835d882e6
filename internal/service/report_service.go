package service

import (
	"bytes"
	"context"
	"io"
	"org_diagnostics/internal/model"
	"org_diagnostics/internal/util"
	"org_diagnostics/pkg/chart"
	"org_diagnostics/pkg/logger"
	"org_diagnostics/pkg/monitoring"
	"org_diagnostics/pkg/spreadsheet"
	"org_diagnostics/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ReportService 串联 收集 -> 汇总 -> 雷达投影 -> 导出
type ReportService struct {
	Collector *Collector
	Sessions  *SessionService
	Storage   *StorageService
}

func NewReportService(collector *Collector, sessions *SessionService, storage *StorageService) *ReportService {
	return &ReportService{Collector: collector, Sessions: sessions, Storage: storage}
}

// BuildReport 对一个目录快照执行完整流水线，不依赖会话
func BuildReport(ctx context.Context, collector *Collector, cat *model.Catalog, src RatingSource) (report *model.Report, values map[string]int, err error) {
	_, span := tracing.StartSpan(ctx, "report.build", "")
	defer func() { tracing.EndSpan(span, err) }()

	records, values, err := collector.Collect(cat, src)
	if err != nil {
		return nil, nil, err
	}

	agg, err := Aggregate(records)
	if err != nil {
		return nil, nil, err
	}

	radar, err := Project(agg.Summaries)
	if err != nil {
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("records", len(agg.Records)),
		attribute.Int("categories", len(agg.Summaries)),
		attribute.String("peak", agg.Peak.Category),
	)

	return &model.Report{
		Aggregation: *agg,
		Radar:       *radar,
		GeneratedAt: time.Now(),
	}, values, nil
}

// Submit 提交表单：Collecting -> Reported
func (s *ReportService) Submit(ctx context.Context, sessionID string, src RatingSource) (*model.Report, error) {
	var report *model.Report
	err := s.Sessions.With(sessionID, func(sess *model.Session) error {
		if sess.State != model.StateCollecting {
			return util.ErrAlreadyReported
		}

		r, values, err := BuildReport(ctx, s.Collector, sess.Catalog, src)
		if err != nil {
			return err
		}
		r.SessionID = sess.ID
		if err := sess.Submit(values, r); err != nil {
			return err
		}
		report = r
		return nil
	})
	if err != nil {
		logger.Log.Warn("Submission rejected", zap.String("session", sessionID), zap.Error(err))
		return nil, err
	}

	monitoring.ReportsGenerated.Inc()
	monitoring.PeakCategory.WithLabelValues(report.Peak.Category).Inc()
	logger.Log.Info("Report generated",
		zap.String("session", sessionID),
		zap.Int("records", len(report.Records)),
		zap.String("peak", report.Peak.Category),
		zap.Int("peakDeviation", report.Peak.DeviationSum),
	)
	return report, nil
}

// Reset Reported -> Collecting，允许不重新加载页面而重新评估
func (s *ReportService) Reset(sessionID string) error {
	return s.Sessions.With(sessionID, func(sess *model.Session) error {
		sess.Reset()
		return nil
	})
}

func (s *ReportService) Report(sessionID string) (*model.Report, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != model.StateReported || sess.Report == nil {
		return nil, util.ErrNotReported
	}
	return sess.Report, nil
}

// Export 生成 xlsx；启用归档时另存一份，归档失败只记录日志
func (s *ReportService) Export(ctx context.Context, sessionID string) (data []byte, err error) {
	report, err := s.Report(sessionID)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "report.export", sessionID)
	defer func() { tracing.EndSpan(span, err) }()

	data, err = WriteWorkbook(report)
	if err != nil {
		return nil, err
	}
	monitoring.ExportsServed.WithLabelValues("xlsx").Inc()

	if s.Storage.Enabled() {
		url, archiveErr := s.Storage.ArchiveExport(ctx, sessionID, data)
		if archiveErr != nil {
			span.RecordError(archiveErr)
			logger.Log.Error("Failed to archive export", zap.String("session", sessionID), zap.Error(archiveErr))
		} else {
			logger.Log.Info("Export archived", zap.String("session", sessionID), zap.String("url", url))
		}
	}
	return data, nil
}

// Chart 输出 SVG 雷达图
func (s *ReportService) Chart(ctx context.Context, sessionID string, w io.Writer) (err error) {
	report, err := s.Report(sessionID)
	if err != nil {
		return err
	}

	_, span := tracing.StartSpan(ctx, "report.chart", sessionID)
	defer func() { tracing.EndSpan(span, err) }()

	var buf bytes.Buffer
	if err = RenderChart(&buf, report); err != nil {
		return err
	}
	monitoring.ExportsServed.WithLabelValues("svg").Inc()
	_, err = buf.WriteTo(w)
	return err
}

func WriteWorkbook(report *model.Report) ([]byte, error) {
	return spreadsheet.Write(BuildExport(report.Records, report.Summaries))
}

func RenderChart(w io.Writer, report *model.Report) error {
	r := report.Radar
	return chart.RenderRadar(w, r.Categories, r.Angles, r.Target, r.Actual, chart.DefaultOptions())
}
