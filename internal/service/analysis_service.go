package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/analysis"
	"github.com/fwpboutique/crystalshop/internal/domain"
	"github.com/fwpboutique/crystalshop/internal/metrics"
	"github.com/fwpboutique/crystalshop/internal/repository"
)

// AnalysisService runs the external analysis and stores the result as a new record
type AnalysisService struct {
	repos    *repository.Repositories
	analyzer analysis.Analyzer
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(repos *repository.Repositories, analyzer analysis.Analyzer, m *metrics.Metrics, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		repos:    repos,
		analyzer: analyzer,
		metrics:  m,
		logger:   logger,
	}
}

// Analyze calls the analysis service and persists the record the custom checkout attaches to
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*domain.CustomerRecord, error) {
	profile := req.Profile()

	doc, err := s.analyzer.Analyze(ctx, profile)
	if err != nil {
		s.metrics.Analysis(metrics.ResultFailed)
		return nil, err
	}
	s.metrics.Analysis(metrics.ResultOK)

	record := &domain.CustomerRecord{
		Name:         profile.Name,
		BirthDate:    profile.BirthDate,
		BirthTime:    profile.BirthTime,
		IsTimeUnsure: profile.IsTimeUnsure,
		Gender:       profile.Gender,
		Wishes:       profile.Wishes,
		Analysis:     doc,
	}
	if err := s.repos.Records.Add(ctx, record); err != nil {
		s.logger.Error("Failed to store analysis record", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Analysis stored",
		zap.String("record_id", record.ID.String()),
		zap.String("lucky_element", doc.LuckyElement),
	)
	return record, nil
}
